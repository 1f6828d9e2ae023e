package scalar

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Type is the canonical fixed-width type of a PLY property or table column.
type Type uint8

const (
	Invalid Type = iota
	Int8
	UInt8
	Bool8
	Int16
	UInt16
	Int32
	UInt32
	Float32
	Float64
)

var ErrUnknownType = errors.New("scalar: unknown type")

// Size returns the width in bytes, 0 for Invalid.
func (t Type) Size() int {
	switch t {
	case Int8, UInt8, Bool8:
		return 1
	case Int16, UInt16:
		return 2
	case Int32, UInt32, Float32:
		return 4
	case Float64:
		return 8
	}
	return 0
}

func (t Type) Valid() bool { return t.Size() > 0 }

func (t Type) IsFloat() bool { return t == Float32 || t == Float64 }

func (t Type) IsSigned() bool {
	switch t {
	case Int8, Int16, Int32, Float32, Float64:
		return true
	}
	return false
}

func (t Type) String() string {
	switch t {
	case Int8:
		return "int8"
	case UInt8:
		return "uint8"
	case Bool8:
		return "bool8"
	case Int16:
		return "int16"
	case UInt16:
		return "uint16"
	case Int32:
		return "int32"
	case UInt32:
		return "uint32"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}
	return fmt.Sprintf("scalar.Type(%d)", uint8(t))
}

// Encoding is the payload layout of a PLY file.
type Encoding uint8

const (
	ASCII Encoding = iota + 1
	BinaryLittleEndian
	BinaryBigEndian
)

var ErrUnknownEncoding = errors.New("scalar: unknown encoding")

// String returns the keyword used on the PLY "format" line.
func (e Encoding) String() string {
	switch e {
	case ASCII:
		return "ascii"
	case BinaryLittleEndian:
		return "binary_little_endian"
	case BinaryBigEndian:
		return "binary_big_endian"
	}
	return fmt.Sprintf("scalar.Encoding(%d)", uint8(e))
}

func (e Encoding) Binary() bool {
	return e == BinaryLittleEndian || e == BinaryBigEndian
}

// ByteOrder is nil for ASCII.
func (e Encoding) ByteOrder() binary.ByteOrder {
	switch e {
	case BinaryLittleEndian:
		return binary.LittleEndian
	case BinaryBigEndian:
		return binary.BigEndian
	}
	return nil
}

func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "ascii":
		return ASCII, nil
	case "binary_little_endian":
		return BinaryLittleEndian, nil
	case "binary_big_endian":
		return BinaryBigEndian, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEncoding, s)
}
