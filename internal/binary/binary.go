// Package binary provides generic unsigned integer encoding in both byte orders. It is used
// for fields that start on a byte boundary and are exactly as wide as a Go integer.
package binary

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/constraints"
)

// Little is the little-endian encoder.
var Little = binary.LittleEndian

// Big is the big-endian encoder.
var Big = binary.BigEndian

// Get gets any Uint size from a little-endian []byte slice.
func Get[T constraints.Unsigned](b []byte) T {
	_ = b[len(b)-1] // bounds check hint to compiler; see golang.org/issue/14808

	var r T // This is only used for type detction.
	switch any(r).(type) {
	case uint8:
		return T(b[0])
	case uint16:
		return T(Little.Uint16(b))
	case uint32:
		return T(Little.Uint32(b))
	case uint64:
		return T(Little.Uint64(b))
	}
	panic(fmt.Sprintf("unsupported type that passed the type constraint %T", r))
}

// Put puts any Uint size into a little-endian []byte slice.
func Put[T constraints.Unsigned](b []byte, v T) {
	switch any(v).(type) {
	case uint8:
		b[0] = byte(v)
		return
	case uint16:
		Little.PutUint16(b, uint16(v))
		return
	case uint32:
		Little.PutUint32(b, uint32(v))
		return
	case uint64:
		Little.PutUint64(b, uint64(v))
		return
	}
	panic(fmt.Sprintf("unsupported type that passed the type constraint %T", v))
}

// GetBig gets any Uint size from a big-endian []byte slice.
func GetBig[T constraints.Unsigned](b []byte) T {
	_ = b[len(b)-1] // bounds check hint to compiler; see golang.org/issue/14808

	var r T
	switch any(r).(type) {
	case uint8:
		return T(b[0])
	case uint16:
		return T(Big.Uint16(b))
	case uint32:
		return T(Big.Uint32(b))
	case uint64:
		return T(Big.Uint64(b))
	}
	panic(fmt.Sprintf("unsupported type that passed the type constraint %T", r))
}

// PutBig puts any Uint size into a big-endian []byte slice.
func PutBig[T constraints.Unsigned](b []byte, v T) {
	switch any(v).(type) {
	case uint8:
		b[0] = byte(v)
		return
	case uint16:
		Big.PutUint16(b, uint16(v))
		return
	case uint32:
		Big.PutUint32(b, uint32(v))
		return
	case uint64:
		Big.PutUint64(b, uint64(v))
		return
	}
	panic(fmt.Sprintf("unsupported type that passed the type constraint %T", v))
}

// GetN reads a "bits" wide integer (8, 16, 32 or 64) from b. big selects the byte order.
func GetN(b []byte, bits uint8, big bool) uint64 {
	switch bits {
	case 8:
		return uint64(b[0])
	case 16:
		if big {
			return uint64(GetBig[uint16](b[:2]))
		}
		return uint64(Get[uint16](b[:2]))
	case 32:
		if big {
			return uint64(GetBig[uint32](b[:4]))
		}
		return uint64(Get[uint32](b[:4]))
	case 64:
		if big {
			return GetBig[uint64](b[:8])
		}
		return Get[uint64](b[:8])
	}
	panic(fmt.Sprintf("GetN() cannot read a %d bit integer", bits))
}

// PutN writes v as a "bits" wide integer (8, 16, 32 or 64) into b. big selects the byte order.
func PutN(b []byte, bits uint8, big bool, v uint64) {
	switch bits {
	case 8:
		b[0] = byte(v)
	case 16:
		if big {
			PutBig(b[:2], uint16(v))
			return
		}
		Put(b[:2], uint16(v))
	case 32:
		if big {
			PutBig(b[:4], uint32(v))
			return
		}
		Put(b[:4], uint32(v))
	case 64:
		if big {
			PutBig(b[:8], v)
			return
		}
		Put(b[:8], v)
	default:
		panic(fmt.Sprintf("PutN() cannot write a %d bit integer", bits))
	}
}

// Whole reports if a field of "bits" width can be handled by GetN and PutN.
func Whole(bits uint8) bool {
	switch bits {
	case 8, 16, 32, 64:
		return true
	}
	return false
}
