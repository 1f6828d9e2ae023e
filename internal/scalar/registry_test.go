package scalar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var all = []Type{Int8, UInt8, Bool8, Int16, UInt16, Int32, UInt32, Float32, Float64}

func TestCanonicalOf_Aliases(t *testing.T) {
	cases := map[string]Type{
		"int8": Int8, "char": Int8,
		"uint8": UInt8, "uchar": UInt8,
		"int16": Int16, "short": Int16,
		"uint16": UInt16, "ushort": UInt16,
		"int32": Int32, "int": Int32,
		"uint32": UInt32, "uint": UInt32,
		"float32": Float32, "float": Float32,
		"float64": Float64, "double": Float64,
		"bool": Bool8,
	}
	for name, want := range cases {
		got, err := CanonicalOf(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}
}

func TestCanonicalOf_Unknown(t *testing.T) {
	for _, name := range []string{"", "Float", "int64", "list", "uchar "} {
		_, err := CanonicalOf(name)
		require.ErrorIs(t, err, ErrUnknownType, name)
	}
}

func TestExternalNameOf_RoundTrip(t *testing.T) {
	for _, enc := range []Encoding{ASCII, BinaryLittleEndian, BinaryBigEndian} {
		for _, typ := range all {
			name, err := ExternalNameOf(typ, enc)
			require.NoError(t, err)

			back, err := CanonicalOf(name)
			require.NoError(t, err)
			require.Equal(t, typ, back, "%v via %q in %v", typ, name, enc)
		}
	}
}

func TestExternalNameOf_PrefersShortNames(t *testing.T) {
	name, err := ExternalNameOf(Int32, BinaryLittleEndian)
	require.NoError(t, err)
	require.Equal(t, "int", name)

	name, err = ExternalNameOf(Float32, ASCII)
	require.NoError(t, err)
	require.Equal(t, "float", name)
}

func TestExternalNameOf_Invalid(t *testing.T) {
	_, err := ExternalNameOf(Invalid, ASCII)
	require.ErrorIs(t, err, ErrUnknownType)

	_, err = ExternalNameOf(Float32, Encoding(0))
	require.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestSizes(t *testing.T) {
	require.Equal(t, 1, Bool8.Size())
	require.Equal(t, 2, UInt16.Size())
	require.Equal(t, 4, Float32.Size())
	require.Equal(t, 8, Float64.Size())
	require.Equal(t, 0, Invalid.Size())
	require.False(t, Invalid.Valid())
}

func TestTypeOfSliceMakeSlice(t *testing.T) {
	for _, typ := range all {
		s, err := MakeSlice(typ, 3)
		require.NoError(t, err)
		got, ok := TypeOfSlice(s)
		require.True(t, ok)
		require.Equal(t, typ, got)
	}

	_, ok := TypeOfSlice([]int64{1})
	require.False(t, ok)
}

func TestParseEncoding(t *testing.T) {
	for _, enc := range []Encoding{ASCII, BinaryLittleEndian, BinaryBigEndian} {
		got, err := ParseEncoding(enc.String())
		require.NoError(t, err)
		require.Equal(t, enc, got)
	}
	require.Nil(t, ASCII.ByteOrder())
	require.True(t, BinaryBigEndian.Binary())

	_, err := ParseEncoding("binary")
	require.ErrorIs(t, err, ErrUnknownEncoding)
}
