package ply

import (
	"errors"

	"github.com/tuannm99/novacloud/internal/scalar"
)

var (
	ErrUnknownType      = scalar.ErrUnknownType
	ErrMalformedHeader  = errors.New("ply: malformed header")
	ErrMissingField     = errors.New("ply: missing field")
	ErrUnknownField     = errors.New("ply: unknown field")
	ErrTruncatedData    = errors.New("ply: truncated data")
	ErrUnknownByteOrder = errors.New("ply: unknown byte order")
)
