// stand for bytes helper
package bx

import "encoding/binary"

var (
	LE = binary.LittleEndian
	BE = binary.BigEndian
)

// Order is the byte order every multi-byte read/write goes through.
type Order = binary.ByteOrder

// --- fixed width read ---
func U16(o Order, b []byte) uint16 { return o.Uint16(b) }
func U32(o Order, b []byte) uint32 { return o.Uint32(b) }
func U64(o Order, b []byte) uint64 { return o.Uint64(b) }

// --- fixed width write ---
func PutU16(o Order, b []byte, v uint16) { o.PutUint16(b, v) }
func PutU32(o Order, b []byte, v uint32) { o.PutUint32(b, v) }
func PutU64(o Order, b []byte, v uint64) { o.PutUint64(b, v) }

// Word reads an unsigned word of size 1, 2, 4 or 8 bytes from b.
// Any other size returns 0.
func Word(o Order, b []byte, size int) uint64 {
	switch size {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(U16(o, b))
	case 4:
		return uint64(U32(o, b))
	case 8:
		return U64(o, b)
	}
	return 0
}

// PutWord writes the low size bytes of v into b.
func PutWord(o Order, b []byte, size int, v uint64) {
	switch size {
	case 1:
		b[0] = byte(v)
	case 2:
		PutU16(o, b, uint16(v))
	case 4:
		PutU32(o, b, uint32(v))
	case 8:
		PutU64(o, b, v)
	}
}
