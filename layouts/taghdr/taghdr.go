// Package taghdr describes the 8 byte header written before each entry of a tagged
// record. The header is a little-endian uint64 holding, from the low bits up, a 16 bit
// field number, an 8 bit field.Type and a 40 bit size or item count.
package taghdr

import (
	"github.com/bearlytools/ptl/languages/go/field"
	"github.com/bearlytools/ptl/languages/go/order"
	"github.com/bearlytools/ptl/languages/go/protocol"
	"github.com/bearlytools/ptl/languages/go/schema"
)

const (
	// Size is the size of a header in bytes.
	Size = 8
	// MaxFinal40 is the largest value Final40 can hold.
	MaxFinal40 = 1<<40 - 1
)

// Indexes of the header fields in Protocol.
const (
	FFieldNum  = 0
	FFieldType = 1
	FFinal40   = 2
)

// Protocol is the header layout.
var Protocol = protocol.MustNew(
	order.LSBFirst,
	schema.Field{Name: "field_num", Bits: 16, Type: field.FTUint16},
	schema.Field{Name: "field_type", Bits: 8, Type: field.FTUint8},
	schema.Field{Name: "final40", Bits: 40, Type: field.FTUint64},
)

var (
	hFieldNum  = protocol.MustHandle[uint16](Protocol, FFieldNum)
	hFieldType = protocol.MustHandle[uint8](Protocol, FFieldType)
	hFinal40   = protocol.MustHandle[uint64](Protocol, FFinal40)
)

// Generic is the header of an entry.
type Generic []byte

func New() Generic {
	return Generic(make([]byte, Size))
}

// FieldNum returns the field number that the entry the header represents is set to.
func (g Generic) FieldNum() uint16 {
	return hFieldNum.Get(g)
}

// SetFieldNum sets the field number in the header.
func (g Generic) SetFieldNum(u uint16) {
	_ = hFieldNum.Set(g, u)
}

// FieldType returns the type of field the header is for.
func (g Generic) FieldType() field.Type {
	return field.Type(hFieldType.Get(g))
}

// SetFieldType sets the field type the header is for.
func (g Generic) SetFieldType(t field.Type) {
	_ = hFieldType.Set(g, uint8(t))
}

// Final40 returns the value of the final 40 bits. This is usually the size of an entry or
// the number of items in it.
func (g Generic) Final40() uint64 {
	return hFinal40.Get(g)
}

// SetFinal40 sets the final 40 bits in the header. Values above MaxFinal40 return an error
// wrapping protocol.ErrValueRange and leave the header unchanged.
func (g Generic) SetFinal40(u uint64) error {
	return hFinal40.Set(g, u)
}
