package ply

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/tuannm99/novacloud/internal/alias/bx"
	"github.com/tuannm99/novacloud/internal/scalar"
	"github.com/tuannm99/novacloud/internal/table"
)

// binaryBatch is the number of records read per io.ReadFull call and the
// column growth step for ASCII records.
const binaryBatch = 4096

// Selection picks the vertex properties to materialize. A nil Fields
// selects every property.
type Selection struct {
	Fields        []string
	IgnoreMissing bool
}

// All selects every property.
func All() Selection { return Selection{IgnoreMissing: true} }

// Fields selects the named properties and tolerates absent ones.
func Fields(names ...string) Selection {
	if names == nil {
		names = []string{}
	}
	return Selection{Fields: names, IgnoreMissing: true}
}

// Strict returns s with missing-field tolerance disabled.
func (s Selection) Strict() Selection {
	s.IgnoreMissing = false
	return s
}

// resolve returns the indexes of the selected properties in schema order.
func (s Selection) resolve(el *Element) ([]int, error) {
	if s.Fields == nil {
		idx := make([]int, len(el.Properties))
		for i := range idx {
			idx[i] = i
		}
		return idx, nil
	}

	want := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		want[f] = true
	}
	var idx []int
	have := make(map[string]bool, len(el.Properties))
	for i, p := range el.Properties {
		have[p.Name] = true
		if want[p.Name] {
			idx = append(idx, i)
		}
	}

	var missing []string
	for _, f := range s.Fields {
		if !have[f] && !slices.Contains(missing, f) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 && !s.IgnoreMissing {
		return nil, fmt.Errorf("%w: %q not in element %q (has %q)", ErrMissingField, missing, el.Name, el.Names())
	}
	return idx, nil
}

// Decode reads the vertex element from r, which must be positioned right
// after the header. Elements declared before vertex are skipped; those
// after it are not read.
func Decode(r *bufio.Reader, h *Header, sel Selection) (*table.Table, error) {
	el, at, ok := h.Element(VertexName)
	if !ok {
		return nil, fmt.Errorf("%w: no %q element", ErrMalformedHeader, VertexName)
	}
	for _, p := range el.Properties {
		if p.List {
			return nil, fmt.Errorf("%w: list property %q in %q cannot be loaded as a column", ErrMalformedHeader, p.Name, VertexName)
		}
	}

	idx, err := sel.resolve(el)
	if err != nil {
		return nil, err
	}

	for i := 0; i < at; i++ {
		if err := skipElement(r, h.Encoding, &h.Elements[i]); err != nil {
			return nil, err
		}
	}

	// Columns grow as records arrive; el.Count never sizes an allocation.
	cols := make([]*table.Column, len(el.Properties))
	for _, i := range idx {
		p := el.Properties[i]
		c, err := table.MakeColumn(p.Name, p.Type, 0)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}

	if h.Encoding == scalar.ASCII {
		err = decodeASCII(r, el, cols)
	} else {
		err = decodeBinary(r, h.Encoding.ByteOrder(), el, cols)
	}
	if err != nil {
		return nil, err
	}

	selected := make([]*table.Column, len(idx))
	for k, i := range idx {
		selected[k] = cols[i]
	}
	return table.FromColumns(selected...)
}

// growColumns appends n zero rows to every selected column.
func growColumns(cols []*table.Column, n int) {
	for _, c := range cols {
		if c != nil {
			c.Grow(n)
		}
	}
}

// decodeBinary reads el.Count fixed-stride records. cols is indexed like
// el.Properties; nil entries are skipped but still advance the offset.
func decodeBinary(r io.Reader, order bx.Order, el *Element, cols []*table.Column) error {
	stride, _ := el.Stride()
	offsets := make([]int, len(el.Properties))
	off := 0
	for i, p := range el.Properties {
		offsets[i] = off
		off += p.Type.Size()
	}
	if stride == 0 || el.Count == 0 {
		return nil
	}

	batch := min(el.Count, binaryBatch)
	buf := make([]byte, batch*stride)
	for row := 0; row < el.Count; {
		n := min(batch, el.Count-row)
		chunk := buf[:n*stride]
		got, err := io.ReadFull(r, chunk)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return fmt.Errorf("%w: element %q declares %d records of %d bytes, payload ends after %d",
					ErrTruncatedData, el.Name, el.Count, stride, row+got/stride)
			}
			return err
		}
		growColumns(cols, n)
		for k := 0; k < n; k++ {
			rec := chunk[k*stride:]
			for i, c := range cols {
				if c == nil {
					continue
				}
				size := el.Properties[i].Type.Size()
				setBits(c, row+k, bx.Word(order, rec[offsets[i]:], size))
			}
		}
		row += n
	}
	return nil
}

func decodeASCII(r *bufio.Reader, el *Element, cols []*table.Column) error {
	rows := 0
	for row := 0; row < el.Count; row++ {
		if row == rows {
			n := min(binaryBatch, el.Count-row)
			growColumns(cols, n)
			rows += n
		}
		tokens, err := readRecordLine(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: element %q declares %d records, found %d", ErrTruncatedData, el.Name, el.Count, row)
			}
			return err
		}
		if len(tokens) != len(el.Properties) {
			return fmt.Errorf("%w: element %q record %d has %d values, want %d",
				ErrTruncatedData, el.Name, row, len(tokens), len(el.Properties))
		}
		for i, c := range cols {
			if c == nil {
				continue
			}
			if err := c.Parse(row, tokens[i]); err != nil {
				return fmt.Errorf("ply: element %q: %w", el.Name, err)
			}
		}
	}
	return nil
}

// readRecordLine returns the tokens of the next non-empty line, or io.EOF.
func readRecordLine(r *bufio.Reader) ([]string, error) {
	for {
		line, err := r.ReadString('\n')
		tokens := strings.Fields(line)
		if len(tokens) > 0 {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// skipElement consumes every record of el without materializing it.
func skipElement(r *bufio.Reader, enc scalar.Encoding, el *Element) error {
	if enc == scalar.ASCII {
		for row := 0; row < el.Count; row++ {
			if _, err := readRecordLine(r); err != nil {
				if errors.Is(err, io.EOF) {
					return fmt.Errorf("%w: element %q declares %d records, found %d", ErrTruncatedData, el.Name, el.Count, row)
				}
				return err
			}
		}
		return nil
	}

	truncated := func(row int) error {
		return fmt.Errorf("%w: element %q declares %d records, payload ends in record %d", ErrTruncatedData, el.Name, el.Count, row)
	}

	if stride, ok := el.Stride(); ok {
		want := int64(el.Count) * int64(stride)
		if stride > 0 && want/int64(stride) != int64(el.Count) {
			want = math.MaxInt64
		}
		n, err := io.CopyN(io.Discard, r, want)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return truncated(int(n / int64(max(stride, 1))))
			}
			return err
		}
		return nil
	}

	order := enc.ByteOrder()
	var word [8]byte
	for row := 0; row < el.Count; row++ {
		for _, p := range el.Properties {
			if !p.List {
				if _, err := r.Discard(p.Type.Size()); err != nil {
					return truncated(row)
				}
				continue
			}
			size := p.CountType.Size()
			if _, err := io.ReadFull(r, word[:size]); err != nil {
				return truncated(row)
			}
			n := bx.Word(order, word[:], size)
			if p.CountType.IsSigned() {
				n = uint64(signExtend(n, size))
				if int64(n) < 0 {
					return fmt.Errorf("%w: element %q record %d: negative list length", ErrTruncatedData, el.Name, row)
				}
			}
			if _, err := io.CopyN(io.Discard, r, int64(n)*int64(p.Type.Size())); err != nil {
				return truncated(row)
			}
		}
	}
	return nil
}

func signExtend(w uint64, size int) int64 {
	shift := uint(64 - 8*size)
	return int64(w<<shift) >> shift
}

