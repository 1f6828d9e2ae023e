package ply

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/novacloud/internal/scalar"
)

const cubeHeader = "ply\n" +
	"format ascii 1.0\n" +
	"comment made by hand\n" +
	"comment   indented text kept\n" +
	"obj_info random information\n" +
	"element vertex 8\n" +
	"property float x\n" +
	"property float32 y\n" +
	"property double z\n" +
	"property uchar red\n" +
	"element face 6\n" +
	"property list uchar int vertex_indices\n" +
	"end_header\n"

func parse(t *testing.T, s string) (*Header, error) {
	t.Helper()
	return ParseHeader(bufio.NewReader(strings.NewReader(s)))
}

func TestParseHeader_Full(t *testing.T) {
	h, err := parse(t, cubeHeader+"0 0 0 1\n")
	require.NoError(t, err)

	require.Equal(t, scalar.ASCII, h.Encoding)
	require.Equal(t, "1.0", h.Version)
	require.Equal(t, []string{"made by hand", "  indented text kept"}, h.Comments)
	require.Equal(t, []string{"random information"}, h.ObjInfo)
	require.Equal(t, int64(len(cubeHeader)), h.PayloadOffset)
	require.Len(t, h.Elements, 2)

	v, at, ok := h.Element(VertexName)
	require.True(t, ok)
	require.Equal(t, 0, at)
	require.Equal(t, 8, v.Count)
	require.Equal(t, []string{"x", "y", "z", "red"}, v.Names())
	require.Equal(t, scalar.Float32, v.Properties[1].Type)
	require.Equal(t, scalar.Float64, v.Properties[2].Type)
	require.Equal(t, scalar.UInt8, v.Properties[3].Type)

	stride, ok := v.Stride()
	require.True(t, ok)
	require.Equal(t, 4+4+8+1, stride)

	f, _, ok := h.Element("face")
	require.True(t, ok)
	require.Equal(t, Property{Name: "vertex_indices", Type: scalar.Int32, List: true, CountType: scalar.UInt8}, f.Properties[0])
	_, ok = f.Stride()
	require.False(t, ok)
}

func TestParseHeader_LeavesReaderAtPayload(t *testing.T) {
	br := bufio.NewReader(strings.NewReader(cubeHeader + "PAYLOAD"))
	_, err := ParseHeader(br)
	require.NoError(t, err)

	rest := make([]byte, 7)
	_, err = br.Read(rest)
	require.NoError(t, err)
	require.Equal(t, "PAYLOAD", string(rest))
}

func TestParseHeader_CRLF(t *testing.T) {
	s := strings.ReplaceAll("ply\nformat binary_big_endian 1.0\nelement vertex 0\nproperty int i\nend_header\n", "\n", "\r\n")
	h, err := parse(t, s)
	require.NoError(t, err)
	require.Equal(t, scalar.BinaryBigEndian, h.Encoding)
	require.Equal(t, "i", h.Elements[0].Properties[0].Name)
}

func TestParseHeader_Errors(t *testing.T) {
	cases := map[string]string{
		"bad magic":        "plyx\nformat ascii 1.0\nend_header\n",
		"no format":        "ply\nelement vertex 1\nproperty float x\nend_header\n",
		"unknown encoding": "ply\nformat binary 1.0\nend_header\n",
		"bad version":      "ply\nformat ascii 2.0\nend_header\n",
		"bad count":        "ply\nformat ascii 1.0\nelement vertex -1\nend_header\n",
		"orphan property":  "ply\nformat ascii 1.0\nproperty float x\nend_header\n",
		"unknown keyword":  "ply\nformat ascii 1.0\nvertex 3\nend_header\n",
		"truncated":        "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\n",
		"truncated no nl":  "ply\nformat ascii 1.0\nelement vertex 1",
		"empty":            "",
		"float list count": "ply\nformat ascii 1.0\nelement face 1\nproperty list float int idx\nend_header\n",
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := parse(t, s)
			require.ErrorIs(t, err, ErrMalformedHeader)
		})
	}
}

func TestParseHeader_UnknownType(t *testing.T) {
	_, err := parse(t, "ply\nformat ascii 1.0\nelement vertex 1\nproperty int64 x\nend_header\n")
	require.ErrorIs(t, err, ErrMalformedHeader)
	require.ErrorIs(t, err, ErrUnknownType)
	require.Contains(t, err.Error(), "int64")
}

func TestParseHeader_DuplicateProperty(t *testing.T) {
	h, err := parse(t, "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty double x\nend_header\n")
	require.NoError(t, err)

	el := h.Elements[0]
	require.Len(t, el.Properties, 2)
	p, ok := el.Lookup("x")
	require.True(t, ok)
	require.Equal(t, scalar.Float64, p.Type)
}

func TestWriteHeader_RoundTrip(t *testing.T) {
	h, err := parse(t, cubeHeader)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, h))

	back, err := parse(t, buf.String())
	require.NoError(t, err)

	h.PayloadOffset, back.PayloadOffset = 0, 0
	require.Equal(t, h, back)
	require.Contains(t, buf.String(), "property list uchar int vertex_indices\n")
	// float32 is written back under its short name.
	require.Contains(t, buf.String(), "property float y\n")
}

func TestWriteHeader_MultilineComment(t *testing.T) {
	h := &Header{Encoding: scalar.ASCII, Comments: []string{"one\ntwo"}}
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, h))
	require.Equal(t, "ply\nformat ascii 1.0\ncomment one\ncomment two\nend_header\n", buf.String())
}

func TestWriteHeader_RegroupsInterleavedMetadata(t *testing.T) {
	src := "ply\nformat ascii 1.0\n" +
		"obj_info first\ncomment a\nobj_info second\ncomment b\n" +
		"element vertex 0\nproperty float x\nend_header\n"
	h, err := parse(t, src)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, h.Comments)
	require.Equal(t, []string{"first", "second"}, h.ObjInfo)

	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, h))
	require.Contains(t, buf.String(), "comment a\ncomment b\nobj_info first\nobj_info second\n")
}
