// Package ptl reads and writes fixed layout, bit packed binary protocols.
//
// A protocol is an ordered list of unsigned fields, each a fixed number of bits wide,
// packed with no padding. Field i starts at the bit right after field i-1 ends.
// This package re-exports the common types so most users only need one import:
//
//	var hdr = ptl.MustNew(
//		ptl.MSBFirst,
//		ptl.Named("version", 4),
//		ptl.Named("flags", 3),
//		ptl.Named("length", 17),
//	)
//
//	buf := make([]byte, hdr.ByteLength())
//	if err := hdr.Set(buf, 2, 70000); err != nil {
//		// handle the error
//	}
//
// See languages/go/protocol for the full API.
package ptl

import (
	"github.com/bearlytools/ptl/languages/go/field"
	"github.com/bearlytools/ptl/languages/go/order"
	"github.com/bearlytools/ptl/languages/go/protocol"
	"github.com/bearlytools/ptl/languages/go/schema"
)

// FieldType is the Go representation of a field's value.
type FieldType = field.Type

const (
	FTUnknown = field.FTUnknown
	FTBool    = field.FTBool
	FTUint8   = field.FTUint8
	FTUint16  = field.FTUint16
	FTUint32  = field.FTUint32
	FTUint64  = field.FTUint64
)

type (
	// Protocol reads and writes the fields of a packed buffer.
	Protocol = protocol.Protocol
	// Field describes one field of a Protocol.
	Field = schema.Field
	// Layout is where a field sits in a buffer.
	Layout = schema.Layout
	// ByteOrder decides how a field's bits map to buffer bytes.
	ByteOrder = order.ByteOrder
)

var (
	// MSBFirst numbers bits from the most significant bit of byte 0. It is the default.
	MSBFirst = order.MSBFirst
	// LSBFirst numbers bits from the least significant bit of byte 0.
	LSBFirst = order.LSBFirst
)

var (
	ErrSchema      = protocol.ErrSchema
	ErrBounds      = protocol.ErrBounds
	ErrShortBuffer = protocol.ErrShortBuffer
	ErrValueRange  = protocol.ErrValueRange
)

// New creates a Protocol from "fields". A nil "o" is MSBFirst.
func New(o ByteOrder, fields ...Field) (*Protocol, error) {
	return protocol.New(o, fields...)
}

// MustNew is New, but panics on an error.
func MustNew(o ByteOrder, fields ...Field) *Protocol {
	return protocol.MustNew(o, fields...)
}

// F is an unnamed field "bits" wide.
func F(bits uint8) Field {
	return schema.F(bits)
}

// Named is a field called "name" that is "bits" wide.
func Named(name string, bits uint8) Field {
	return schema.Named(name, bits)
}
