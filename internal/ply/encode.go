package ply

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/tuannm99/novacloud/internal/alias/bx"
	"github.com/tuannm99/novacloud/internal/scalar"
	"github.com/tuannm99/novacloud/internal/table"
)

// WriteOptions controls Encode. A nil Fields writes every column in table
// order; a zero Encoding means binary little endian.
type WriteOptions struct {
	Fields   []string
	Encoding scalar.Encoding
	Comments []string
	ObjInfo  []string
}

// EncodingFor maps the ascii flag and a numpy-style byte order ("<", ">",
// "=", or "|" and "" which mean little endian) to an Encoding. The byte
// order is ignored for ASCII.
func EncodingFor(ascii bool, byteOrder string) (scalar.Encoding, error) {
	if ascii {
		return scalar.ASCII, nil
	}
	switch byteOrder {
	case "<", "|", "":
		return scalar.BinaryLittleEndian, nil
	case ">":
		return scalar.BinaryBigEndian, nil
	case "=":
		if nativeLittle() {
			return scalar.BinaryLittleEndian, nil
		}
		return scalar.BinaryBigEndian, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownByteOrder, byteOrder)
}

func nativeLittle() bool {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 1)
	return b[0] == 1
}

// HeaderFor describes the file Encode would write for t.
func HeaderFor(t *table.Table, opts WriteOptions) (*Header, []*table.Column, error) {
	cols, err := outputColumns(t, opts.Fields)
	if err != nil {
		return nil, nil, err
	}
	enc := opts.Encoding
	if enc == 0 {
		enc = scalar.BinaryLittleEndian
	}

	el := Element{Name: VertexName, Count: t.Len(), Properties: make([]Property, len(cols))}
	for i, c := range cols {
		el.Properties[i] = Property{Name: c.Name, Type: c.Type}
	}
	h := &Header{
		Encoding: enc,
		Version:  version,
		Comments: opts.Comments,
		ObjInfo:  opts.ObjInfo,
		Elements: []Element{el},
	}
	return h, cols, nil
}

func outputColumns(t *table.Table, fields []string) ([]*table.Column, error) {
	if fields == nil {
		return t.Columns(), nil
	}
	cols := make([]*table.Column, 0, len(fields))
	var missing []string
	for _, f := range fields {
		c, ok := t.Column(f)
		if !ok {
			missing = append(missing, f)
			continue
		}
		cols = append(cols, c)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %q not in table (has %q)", ErrUnknownField, missing, t.Names())
	}
	return cols, nil
}

// Encode writes t as a single-element PLY file. The header is written
// first, then every record in the selected column order.
func Encode(w io.Writer, t *table.Table, opts WriteOptions) error {
	h, cols, err := HeaderFor(t, opts)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if err := WriteHeader(bw, h); err != nil {
		return err
	}
	if h.Encoding == scalar.ASCII {
		err = encodeASCII(bw, t.Len(), cols)
	} else {
		err = encodeBinary(bw, h.Encoding.ByteOrder(), t.Len(), cols)
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}

func encodeASCII(w *bufio.Writer, rows int, cols []*table.Column) error {
	for row := 0; row < rows; row++ {
		for i, c := range cols {
			if i > 0 {
				if err := w.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := w.WriteString(c.Format(row)); err != nil {
				return err
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}

func encodeBinary(w *bufio.Writer, order bx.Order, rows int, cols []*table.Column) error {
	stride := 0
	for _, c := range cols {
		stride += c.Type.Size()
	}
	rec := make([]byte, stride)
	for row := 0; row < rows; row++ {
		off := 0
		for _, c := range cols {
			size := c.Type.Size()
			bx.PutWord(order, rec[off:], size, getBits(c, row))
			off += size
		}
		if _, err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
