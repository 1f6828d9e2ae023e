package table

import (
	"fmt"
	"strconv"
)

// Format renders value i as text: integers without a decimal point, bools
// as 0/1, floats with the shortest representation that parses back to the
// same value at the column's width.
func (c *Column) Format(i int) string {
	switch v := c.data.(type) {
	case []int8:
		return strconv.FormatInt(int64(v[i]), 10)
	case []uint8:
		return strconv.FormatUint(uint64(v[i]), 10)
	case []bool:
		if v[i] {
			return "1"
		}
		return "0"
	case []int16:
		return strconv.FormatInt(int64(v[i]), 10)
	case []uint16:
		return strconv.FormatUint(uint64(v[i]), 10)
	case []int32:
		return strconv.FormatInt(int64(v[i]), 10)
	case []uint32:
		return strconv.FormatUint(uint64(v[i]), 10)
	case []float32:
		return strconv.FormatFloat(float64(v[i]), 'g', -1, 32)
	case []float64:
		return strconv.FormatFloat(v[i], 'g', -1, 64)
	}
	return ""
}

// Parse stores the text token s as value i.
func (c *Column) Parse(i int, s string) error {
	var err error
	switch v := c.data.(type) {
	case []int8:
		var x int64
		x, err = strconv.ParseInt(s, 10, 8)
		v[i] = int8(x)
	case []uint8:
		var x uint64
		x, err = strconv.ParseUint(s, 10, 8)
		v[i] = uint8(x)
	case []bool:
		switch s {
		case "0":
			v[i] = false
		case "1":
			v[i] = true
		default:
			err = strconv.ErrSyntax
		}
	case []int16:
		var x int64
		x, err = strconv.ParseInt(s, 10, 16)
		v[i] = int16(x)
	case []uint16:
		var x uint64
		x, err = strconv.ParseUint(s, 10, 16)
		v[i] = uint16(x)
	case []int32:
		var x int64
		x, err = strconv.ParseInt(s, 10, 32)
		v[i] = int32(x)
	case []uint32:
		var x uint64
		x, err = strconv.ParseUint(s, 10, 32)
		v[i] = uint32(x)
	case []float32:
		var x float64
		x, err = strconv.ParseFloat(s, 32)
		v[i] = float32(x)
	case []float64:
		v[i], err = strconv.ParseFloat(s, 64)
	default:
		return fmt.Errorf("%w: column %q", ErrUnsupportedType, c.Name)
	}
	if err != nil {
		return fmt.Errorf("%w: column %q (%v) row %d: %q", ErrBadValue, c.Name, c.Type, i, s)
	}
	return nil
}
