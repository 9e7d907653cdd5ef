// Package engine reads and writes packed fields inside a byte buffer.
//
// A field is handled one byte at a time. The field's lowest byte holds the bits from the
// field's offset to the end of the byte, its highest byte holds what is left and any byte
// between them is full. The ByteOrder decides which byte is visited first, which comes next,
// where the field's bits sit inside each byte and whether the first byte visited holds the
// high or the low bits of the value. Exactly the bytes in the field's span are visited.
//
// Nothing in here checks bounds beyond what Go does for slices; callers validate the
// field, the buffer length and that the ByteOrder stays inside the span once before calling.
package engine

import (
	"github.com/bearlytools/ptl/internal/binary"
	"github.com/bearlytools/ptl/internal/bits"
	"github.com/bearlytools/ptl/languages/go/order"
)

// Span is the part of a buffer a field occupies.
type Span struct {
	// ByteIndex is the byte holding the field's first bit.
	ByteIndex int
	// BitInByte is the offset of the first bit inside ByteIndex, in the order's bit numbering.
	BitInByte uint8
	// Bits is the width of the field, 1 to 64.
	Bits uint8
}

// Last is the index of the byte holding the field's last bit.
func (s Span) Last() int {
	return s.ByteIndex + (int(s.BitInByte)+int(s.Bits)-1)/bits.BitsPerByte
}

// chunk returns the offset of the field's bits inside byte "i" and how many of them it holds.
func (s Span) chunk(i int) (off, n uint8) {
	start := int(s.BitInByte)
	end := start + int(s.Bits)
	lo := (i - s.ByteIndex) * bits.BitsPerByte
	from, to := max(lo, start), min(lo+bits.BitsPerByte, end)
	return uint8(from - lo), uint8(to - from)
}

// aligned reports if s can be read as a plain integer. big is the byte order to read it in.
func aligned(s Span, o order.ByteOrder) (big, ok bool) {
	if s.BitInByte != 0 || !binary.Whole(s.Bits) {
		return false, false
	}
	switch o.(type) {
	case order.MSB:
		return true, true
	case order.LSB:
		return false, true
	}
	return false, false
}

// Get returns the value of the field at "s" in "buf".
func Get(buf []byte, s Span, o order.ByteOrder) uint64 {
	if big, ok := aligned(s, o); ok {
		return binary.GetN(buf[s.ByteIndex:], s.Bits, big)
	}
	return get(buf, s, o)
}

// get is the byte walking form of Get. It handles every span.
func get(buf []byte, s Span, o order.ByteOrder) uint64 {
	highFirst := o.HighFirst()

	var (
		v    uint64
		done uint8
	)
	first, last := s.ByteIndex, s.Last()
	i := o.Start(first, last)
	for k := first; k <= last; k++ {
		off, n := s.chunk(i)
		mask, shift := o.Place(off, n)
		chunk := uint64((buf[i] & mask) >> shift)

		if highFirst {
			v = v<<n | chunk
		} else {
			v |= chunk << done
		}

		done += n
		i = o.Next(i)
	}
	return v
}

// Set stores the low s.Bits bits of "v" in the field at "s". Bits of v above s.Bits are discarded.
// No bit outside of the field is changed.
func Set(buf []byte, s Span, o order.ByteOrder, v uint64) {
	v = bits.Low(v, s.Bits)
	if big, ok := aligned(s, o); ok {
		binary.PutN(buf[s.ByteIndex:], s.Bits, big, v)
		return
	}
	set(buf, s, o, v)
}

// set is the byte walking form of Set. v must already be trimmed to s.Bits.
func set(buf []byte, s Span, o order.ByteOrder, v uint64) {
	highFirst := o.HighFirst()

	var done uint8
	rem := s.Bits
	first, last := s.ByteIndex, s.Last()
	i := o.Start(first, last)
	for k := first; k <= last; k++ {
		off, n := s.chunk(i)
		mask, shift := o.Place(off, n)

		var chunk uint64
		if highFirst {
			// The top n of the remaining bits.
			chunk = v >> (rem - n)
		} else {
			chunk = v >> done
		}
		chunk = bits.Low(chunk, n)

		buf[i] = buf[i]&^mask | (uint8(chunk)<<shift)&mask

		done += n
		rem -= n
		i = o.Next(i)
	}
}
