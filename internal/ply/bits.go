package ply

import (
	"math"

	"github.com/tuannm99/novacloud/internal/table"
)

// getBits returns value i of c as its raw fixed-width bit pattern.
func getBits(c *table.Column, i int) uint64 {
	switch v := c.Data().(type) {
	case []int8:
		return uint64(uint8(v[i]))
	case []uint8:
		return uint64(v[i])
	case []bool:
		if v[i] {
			return 1
		}
		return 0
	case []int16:
		return uint64(uint16(v[i]))
	case []uint16:
		return uint64(v[i])
	case []int32:
		return uint64(uint32(v[i]))
	case []uint32:
		return uint64(v[i])
	case []float32:
		return uint64(math.Float32bits(v[i]))
	case []float64:
		return math.Float64bits(v[i])
	}
	return 0
}

// setBits stores the raw bit pattern w as value i of c.
func setBits(c *table.Column, i int, w uint64) {
	switch v := c.Data().(type) {
	case []int8:
		v[i] = int8(uint8(w))
	case []uint8:
		v[i] = uint8(w)
	case []bool:
		v[i] = w != 0
	case []int16:
		v[i] = int16(uint16(w))
	case []uint16:
		v[i] = uint16(w)
	case []int32:
		v[i] = int32(uint32(w))
	case []uint32:
		v[i] = uint32(w)
	case []float32:
		v[i] = math.Float32frombits(uint32(w))
	case []float64:
		v[i] = math.Float64frombits(w)
	}
}
