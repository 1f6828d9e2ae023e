// Package novacloud reads and writes 3D point clouds stored as PLY or
// delimited text files. Points are held in a columnar Table.
package novacloud

import (
	"github.com/tuannm99/novacloud/internal/ply"
	"github.com/tuannm99/novacloud/internal/scalar"
	"github.com/tuannm99/novacloud/internal/table"
	"github.com/tuannm99/novacloud/internal/textcloud"
)

type (
	Table        = table.Table
	Column       = table.Column
	Type         = scalar.Type
	Encoding     = scalar.Encoding
	Cloud        = ply.Cloud
	Header       = ply.Header
	Selection    = ply.Selection
	WriteOptions = ply.WriteOptions
	TextOptions  = textcloud.Options
)

const (
	Int8    = scalar.Int8
	UInt8   = scalar.UInt8
	Bool8   = scalar.Bool8
	Int16   = scalar.Int16
	UInt16  = scalar.UInt16
	Int32   = scalar.Int32
	UInt32  = scalar.UInt32
	Float32 = scalar.Float32
	Float64 = scalar.Float64

	ASCII              = scalar.ASCII
	BinaryLittleEndian = scalar.BinaryLittleEndian
	BinaryBigEndian    = scalar.BinaryBigEndian
)

var (
	ErrUnknownType        = ply.ErrUnknownType
	ErrMalformedHeader    = ply.ErrMalformedHeader
	ErrMissingField       = ply.ErrMissingField
	ErrUnknownField       = ply.ErrUnknownField
	ErrTruncatedData      = ply.ErrTruncatedData
	ErrMissingCoordinates = textcloud.ErrMissingCoordinates
)

// NewTable returns an empty table.
func NewTable() *Table { return table.New() }
