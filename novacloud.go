package novacloud

import (
	"github.com/tuannm99/novacloud/internal/ply"
	"github.com/tuannm99/novacloud/internal/textcloud"
)

// ReadPLY loads the vertex element of a PLY file. A nil fields loads every
// property. With ignoreMissing, requested names absent from the file are
// dropped instead of failing with ErrMissingField.
func ReadPLY(path string, fields []string, ignoreMissing bool) (*Table, error) {
	cloud, err := ply.ReadFile(path, Selection{Fields: fields, IgnoreMissing: ignoreMissing})
	if err != nil {
		return nil, err
	}
	return cloud.Points, nil
}

// WritePLY writes t as binary ("<" little, ">" big endian) or ASCII PLY
// and returns the path written, which always ends in .ply.
func WritePLY(path string, t *Table, fields []string, ascii bool, byteOrder string) (string, error) {
	enc, err := ply.EncodingFor(ascii, byteOrder)
	if err != nil {
		return "", err
	}
	return ply.WriteFile(path, t, WriteOptions{Fields: fields, Encoding: enc})
}

// ReadText loads a delimited file; names must include x, y and z.
func ReadText(path string, names []string, opts TextOptions) (*Table, error) {
	return textcloud.ReadText(path, names, opts)
}

// WriteText writes points and, if mesh is non-nil, a companion
// "mesh_<name>" file next to it.
func WriteText(path string, points, mesh *Table, opts TextOptions) ([]string, error) {
	return textcloud.WriteText(path, points, mesh, opts)
}
