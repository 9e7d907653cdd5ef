// Package order holds the byte and bit orderings a packed field can be stored in.
//
// A ByteOrder decides three things for a field that spans bytes: which of its bytes is visited
// first, which byte comes next and where inside each byte the field's bits sit. MSBFirst is network order: bit 0 of a buffer
// is the most significant bit of byte 0 and a field's most significant bits come first.
// That is the layout of wire headers such as the MPEG-2 transport stream header.
// LSBFirst mirrors it: bit 0 of a buffer is the least significant bit of byte 0 and a
// field's least significant bits come first.
//
// ByteOrder implementations must be comparable, as protocols compare a field's order to
// their own to find fields with mixed ordering.
package order

import (
	"fmt"

	"github.com/gostdlib/base/context"

	"github.com/bearlytools/ptl/internal/bits"
	"github.com/bearlytools/ptl/languages/go/errors"
)

// ByteOrder is the strategy used to walk the bytes of a packed field.
type ByteOrder interface {
	fmt.Stringer
	// Start returns the byte visited first for a field whose bits sit in bytes "first"
	// through "last". Starting there and calling Next must visit each of those bytes once.
	Start(first, last int) int
	// Next returns the index of the byte that follows byte i inside a field.
	Next(i int) int
	// Place returns the mask selecting "n" field bits that begin "off" bits into a byte
	// (counted in this order's bit numbering) and the right shift that moves the selected
	// bits to the bottom of the byte. off+n is never more than 8.
	Place(off, n uint8) (mask, shift uint8)
	// HighFirst reports if the first byte of a field holds its most significant bits.
	HighFirst() bool
}

var (
	// MSBFirst is big-endian, most significant bit first. It is the default order.
	MSBFirst ByteOrder = MSB{}
	// LSBFirst is little-endian, least significant bit first.
	LSBFirst ByteOrder = LSB{}
)

type placement struct {
	mask, shift uint8
}

// Tables of every (n, off) placement with n+off <= 8. Indexed [n][off].
var (
	msbTable [9][9]placement
	lsbTable [9][9]placement
)

func init() {
	for n := uint8(1); n <= 8; n++ {
		for off := uint8(0); off+n <= 8; off++ {
			msbTable[n][off] = placement{mask: bits.MSBMask[uint8](n, off), shift: 8 - off - n}
			lsbTable[n][off] = placement{mask: bits.LSBMask[uint8](n, off), shift: off}
		}
	}
}

// MSB is the big-endian, most significant bit first ordering.
type MSB struct{}

func (MSB) String() string {
	return "MSBFirst"
}

// Start implements ByteOrder.Start.
func (MSB) Start(first, last int) int {
	return first
}

// Next implements ByteOrder.Next.
func (MSB) Next(i int) int {
	return i + 1
}

// Place implements ByteOrder.Place.
func (MSB) Place(off, n uint8) (mask, shift uint8) {
	p := msbTable[n][off]
	return p.mask, p.shift
}

// HighFirst implements ByteOrder.HighFirst.
func (MSB) HighFirst() bool {
	return true
}

// LSB is the little-endian, least significant bit first ordering.
type LSB struct{}

func (LSB) String() string {
	return "LSBFirst"
}

// Start implements ByteOrder.Start.
func (LSB) Start(first, last int) int {
	return first
}

// Next implements ByteOrder.Next.
func (LSB) Next(i int) int {
	return i + 1
}

// Place implements ByteOrder.Place.
func (LSB) Place(off, n uint8) (mask, shift uint8) {
	p := lsbTable[n][off]
	return p.mask, p.shift
}

// HighFirst implements ByteOrder.HighFirst.
func (LSB) HighFirst() bool {
	return false
}

// Parse returns the ByteOrder named by s. It accepts the String() names plus the
// "big"/"little" aliases.
func Parse(s string) (ByteOrder, error) {
	switch s {
	case "MSBFirst", "msb", "big", "bigendian", "big-endian":
		return MSBFirst, nil
	case "LSBFirst", "lsb", "little", "littleendian", "little-endian":
		return LSBFirst, nil
	}
	return nil, errors.E(context.Background(), errors.CatUser, errors.TypeParameter, fmt.Errorf("unknown byte order %q", s))
}
