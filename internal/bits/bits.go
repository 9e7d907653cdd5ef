// Package bits provides bit manipulation utilities. This is not a replacement for math/bits.
package bits

import (
	"fmt"
	"math/bits"
	"strings"

	"golang.org/x/exp/constraints"
)

// BitsPerByte is the number of bits in a byte.
const BitsPerByte = 8

// Digits returns the number of bits in the unsigned type U.
func Digits[U constraints.Unsigned]() uint8 {
	var n U
	switch any(n).(type) {
	case uint8:
		return 8
	case uint16:
		return 16
	case uint32:
		return 32
	case uint64:
		return 64
	case uint:
		return bits.UintSize
	case uintptr:
		return bits.UintSize
	}
	panic(fmt.Sprintf("unsupported type that passed the type constraint %T", n))
}

// MSBMask returns a mask of "n" contiguous set bits, the first of which sits "start" bits
// below the most significant bit of U. So MSBMask[uint8](3, 2) is 0b00111000.
// MSBMask(n, Digits[U]()-n) selects the low "n" bits of a value.
// If n+start exceeds the width of U, this panics.
func MSBMask[U constraints.Unsigned](n, start uint8) U {
	size := Digits[U]()
	if uint16(n)+uint16(start) > uint16(size) {
		panic(fmt.Sprintf("MSBMask(%d, %d) exceeds width %d", n, start, size))
	}
	if n == 0 {
		return 0
	}
	return U(setBits(uint64(0), uint64(size-start-n), uint64(size-start)))
}

// LSBMask returns a mask of "n" contiguous set bits, the first of which sits "start" bits
// above the least significant bit of U. So LSBMask[uint8](3, 2) is 0b00011100.
// If n+start exceeds the width of U, this panics.
func LSBMask[U constraints.Unsigned](n, start uint8) U {
	size := Digits[U]()
	if uint16(n)+uint16(start) > uint16(size) {
		panic(fmt.Sprintf("LSBMask(%d, %d) exceeds width %d", n, start, size))
	}
	if n == 0 {
		return 0
	}
	return U(setBits(uint64(0), uint64(start), uint64(start+n)))
}

// Low returns the low "n" bits of v. n may be the full width of uint64.
func Low(v uint64, n uint8) uint64 {
	if n >= 64 {
		return v
	}
	return v & (uint64(1)<<n - 1)
}

// Fits reports if v can be represented in "n" bits.
func Fits(v uint64, n uint8) bool {
	return Low(v, n) == v
}

// GetBit gets a single bit value from "store" in position "pos". true if set, false if not.
func GetBit[U constraints.Unsigned](store U, pos uint8) bool {
	if pos >= Digits[U]() {
		panic(fmt.Sprintf("can't GetBit() a %T position %d", store, pos))
	}
	return store&(1<<pos) != 0
}

// SetBit sets a single bit in "store" at position "pos" to value "val". If val is true,
// the bit is set to 1, if false, it is set to 0.
func SetBit[U constraints.Unsigned](store U, pos uint8, val bool) U {
	if pos >= Digits[U]() {
		panic(fmt.Sprintf("can't SetBit() a %T position %d", store, pos))
	}
	if val {
		return store | (1 << pos)
	}

	return store & ^(1 << pos)
}

// setBits sets all bits to 1 from start (inclusive) to end(exclusive).
// If start >= end or end > 64, this will panic.
func setBits(n uint64, start, end uint64) uint64 {
	if start >= end {
		panic("start cannot be >= end")
	}
	if end > 64 {
		panic(fmt.Sprintf("end %d exceeds width 64", end))
	}

	width := end - start

	var mask uint64
	if width == 64 {
		// Special case: shifting by 64 is illegal
		mask = ^uint64(0)
	} else {
		mask = (uint64(1)<<width - 1) << start
	}

	return n | mask
}

// BytesInBinary renders bs as space separated groups of 8 binary digits.
func BytesInBinary(bs []byte) string {
	buff := strings.Builder{}
	for i, n := range bs {
		if i > 0 {
			buff.WriteByte(' ')
		}
		buff.WriteString(fmt.Sprintf("%08b", n))
	}
	return buff.String()
}
