package scalar

import "fmt"

// canonical maps every accepted external type name to its Type.
// "uchar" is always UInt8; boolean columns travel under "bool".
var canonical = map[string]Type{
	"int8":    Int8,
	"char":    Int8,
	"uint8":   UInt8,
	"uchar":   UInt8,
	"bool":    Bool8,
	"int16":   Int16,
	"short":   Int16,
	"uint16":  UInt16,
	"ushort":  UInt16,
	"int32":   Int32,
	"int":     Int32,
	"uint32":  UInt32,
	"uint":    UInt32,
	"float32": Float32,
	"float":   Float32,
	"float64": Float64,
	"double":  Float64,
}

// external is the name written for each Type. ASCII and binary files
// currently share the same vocabulary.
var external = map[Type]string{
	Int8:    "char",
	UInt8:   "uchar",
	Bool8:   "bool",
	Int16:   "short",
	UInt16:  "ushort",
	Int32:   "int",
	UInt32:  "uint",
	Float32: "float",
	Float64: "double",
}

// CanonicalOf resolves a header type name. Names are case-sensitive.
func CanonicalOf(name string) (Type, error) {
	t, ok := canonical[name]
	if !ok {
		return Invalid, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return t, nil
}

// ExternalNameOf returns the header type name written for t in enc.
func ExternalNameOf(t Type, enc Encoding) (string, error) {
	switch enc {
	case ASCII, BinaryLittleEndian, BinaryBigEndian:
	default:
		return "", fmt.Errorf("%w: %v", ErrUnknownEncoding, enc)
	}
	name, ok := external[t]
	if !ok {
		return "", fmt.Errorf("%w: %v", ErrUnknownType, t)
	}
	return name, nil
}

// TypeOfSlice reports the Type of a typed slice such as []float32.
func TypeOfSlice(v any) (Type, bool) {
	switch v.(type) {
	case []int8:
		return Int8, true
	case []uint8:
		return UInt8, true
	case []bool:
		return Bool8, true
	case []int16:
		return Int16, true
	case []uint16:
		return UInt16, true
	case []int32:
		return Int32, true
	case []uint32:
		return UInt32, true
	case []float32:
		return Float32, true
	case []float64:
		return Float64, true
	}
	return Invalid, false
}

// MakeSlice allocates a zeroed slice of n values of type t.
func MakeSlice(t Type, n int) (any, error) {
	switch t {
	case Int8:
		return make([]int8, n), nil
	case UInt8:
		return make([]uint8, n), nil
	case Bool8:
		return make([]bool, n), nil
	case Int16:
		return make([]int16, n), nil
	case UInt16:
		return make([]uint16, n), nil
	case Int32:
		return make([]int32, n), nil
	case UInt32:
		return make([]uint32, n), nil
	case Float32:
		return make([]float32, n), nil
	case Float64:
		return make([]float64, n), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownType, t)
}
