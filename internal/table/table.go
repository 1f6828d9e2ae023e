package table

import (
	"errors"
	"fmt"

	"github.com/tuannm99/novacloud/internal/scalar"
)

var (
	ErrLengthMismatch  = errors.New("table: column length mismatch")
	ErrUnknownColumn   = errors.New("table: unknown column")
	ErrUnsupportedType = errors.New("table: unsupported column type")
	ErrBadValue        = errors.New("table: cannot parse value")
)

// Value is the set of Go types a column can hold, one per scalar.Type.
type Value interface {
	int8 | uint8 | bool | int16 | uint16 | int32 | uint32 | float32 | float64
}

// Column is a named, homogeneous sequence. data is always a typed slice
// matching Type.
type Column struct {
	Name string
	Type scalar.Type
	data any
}

// NewColumn wraps values (e.g. []float32) without copying.
func NewColumn(name string, values any) (*Column, error) {
	typ, ok := scalar.TypeOfSlice(values)
	if !ok {
		return nil, fmt.Errorf("%w: column %q has %T", ErrUnsupportedType, name, values)
	}
	return &Column{Name: name, Type: typ, data: values}, nil
}

// MakeColumn allocates a zeroed column of n values.
func MakeColumn(name string, typ scalar.Type, n int) (*Column, error) {
	data, err := scalar.MakeSlice(typ, n)
	if err != nil {
		return nil, fmt.Errorf("%w: column %q: %w", ErrUnsupportedType, name, err)
	}
	return &Column{Name: name, Type: typ, data: data}, nil
}

// Data returns the backing slice. Callers must treat it as read-only
// unless they own the table.
func (c *Column) Data() any { return c.data }

func (c *Column) Len() int {
	switch v := c.data.(type) {
	case []int8:
		return len(v)
	case []uint8:
		return len(v)
	case []bool:
		return len(v)
	case []int16:
		return len(v)
	case []uint16:
		return len(v)
	case []int32:
		return len(v)
	case []uint32:
		return len(v)
	case []float32:
		return len(v)
	case []float64:
		return len(v)
	}
	return 0
}

// Grow appends n zero values to c.
func (c *Column) Grow(n int) {
	switch v := c.data.(type) {
	case []int8:
		c.data = append(v, make([]int8, n)...)
	case []uint8:
		c.data = append(v, make([]uint8, n)...)
	case []bool:
		c.data = append(v, make([]bool, n)...)
	case []int16:
		c.data = append(v, make([]int16, n)...)
	case []uint16:
		c.data = append(v, make([]uint16, n)...)
	case []int32:
		c.data = append(v, make([]int32, n)...)
	case []uint32:
		c.data = append(v, make([]uint32, n)...)
	case []float32:
		c.data = append(v, make([]float32, n)...)
	case []float64:
		c.data = append(v, make([]float64, n)...)
	}
}

// ColumnValues returns the typed slice behind c when T matches its type.
func ColumnValues[T Value](c *Column) ([]T, bool) {
	v, ok := c.data.([]T)
	return v, ok
}

// Table is an ordered set of equal-length columns. Lookup by name returns
// the most recently added column with that name; earlier columns with the
// same name stay in Columns() but are shadowed.
type Table struct {
	cols  []*Column
	index map[string]int
	n     int
}

func New() *Table {
	return &Table{index: make(map[string]int)}
}

// FromColumns builds a table from already constructed columns.
func FromColumns(cols ...*Column) (*Table, error) {
	t := New()
	for _, c := range cols {
		if err := t.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add appends a column built from a typed slice. The table takes ownership
// of values.
func (t *Table) Add(name string, values any) error {
	c, err := NewColumn(name, values)
	if err != nil {
		return err
	}
	return t.AddColumn(c)
}

func (t *Table) AddColumn(c *Column) error {
	if c == nil || !c.Type.Valid() {
		return ErrUnsupportedType
	}
	l := c.Len()
	if len(t.cols) == 0 {
		t.n = l
	} else if l != t.n {
		return fmt.Errorf("%w: column %q has %d values, table has %d", ErrLengthMismatch, c.Name, l, t.n)
	}
	t.index[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// Len is the number of rows.
func (t *Table) Len() int { return t.n }

func (t *Table) NumCols() int { return len(t.cols) }

// Columns returns the columns in insertion order.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.cols))
	copy(out, t.cols)
	return out
}

func (t *Table) Names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name
	}
	return out
}

func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Select returns a table with the named columns in the given order. The
// result shares column buffers with t.
func (t *Table) Select(names ...string) (*Table, error) {
	var missing []string
	out := New()
	out.n = t.n
	for _, name := range names {
		c, ok := t.Column(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		out.index[name] = len(out.cols)
		out.cols = append(out.cols, c)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, missing)
	}
	return out, nil
}

// Values returns the typed values of the named column.
func Values[T Value](t *Table, name string) ([]T, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	v, ok := ColumnValues[T](c)
	if !ok {
		var zero T
		return nil, fmt.Errorf("%w: column %q is %v, not %T", ErrUnsupportedType, name, c.Type, zero)
	}
	return v, nil
}
