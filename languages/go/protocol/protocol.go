// Package protocol provides Protocol, the accessor for buffers laid out by a schema.
//
// A Protocol is built once from an ordered list of fields and a ByteOrder:
//
//	var tsHeader = protocol.MustNew(
//		order.MSBFirst,
//		schema.Named("sync", 8),
//		schema.Named("tei", 1),
//		schema.Named("pusi", 1),
//		schema.Named("priority", 1),
//		schema.Named("pid", 13),
//	)
//
// It can then read and write fields in any number of caller owned buffers:
//
//	buf := make([]byte, tsHeader.ByteLength())
//	if err := tsHeader.Set(buf, 4, 0x100); err != nil {
//		// handle the error
//	}
//	pid, err := tsHeader.Get(buf, 4)
//
// A Protocol never allocates or keeps a buffer. It is immutable and safe for concurrent use.
// Concurrent writes to overlapping bytes of the same buffer must be synchronized by the caller.
package protocol

import (
	"fmt"
	"strings"

	"github.com/gostdlib/base/context"

	"github.com/bearlytools/ptl/internal/bits"
	"github.com/bearlytools/ptl/internal/engine"
	"github.com/bearlytools/ptl/languages/go/errors"
	"github.com/bearlytools/ptl/languages/go/order"
	"github.com/bearlytools/ptl/languages/go/schema"
)

var (
	// ErrSchema is wrapped by errors from invalid field declarations.
	ErrSchema = schema.ErrSchema
	// ErrBounds is wrapped by errors from a field index that is not in the protocol.
	ErrBounds = errors.New("field index out of range")
	// ErrShortBuffer is wrapped by errors from a buffer shorter than ByteLength().
	ErrShortBuffer = errors.New("buffer too short")
	// ErrValueRange is wrapped by errors from a value that does not fit in its field.
	ErrValueRange = errors.New("value out of range")
	// ErrHandleType is wrapped by errors from a Handle whose type cannot hold its field.
	ErrHandleType = errors.New("handle type too narrow")
)

// entry is everything needed to access one field, computed once in New().
type entry struct {
	layout schema.Layout
	span   engine.Span
	order  order.ByteOrder
}

// Protocol reads and writes the fields of a packed protocol buffer.
type Protocol struct {
	schema  *schema.Schema
	order   order.ByteOrder
	entries []entry
}

// New creates a Protocol from "fields", stored in order "o". A nil "o" is order.MSBFirst.
func New(o order.ByteOrder, fields ...schema.Field) (*Protocol, error) {
	s, err := schema.New(fields...)
	if err != nil {
		return nil, err
	}
	return FromSchema(o, s)
}

// MustNew is New, but panics on an error. It is intended for package level declarations.
func MustNew(o order.ByteOrder, fields ...schema.Field) *Protocol {
	p, err := New(o, fields...)
	if err != nil {
		panic(err)
	}
	return p
}

// FromSchema creates a Protocol from an existing Schema. A nil "o" is order.MSBFirst.
// A field may have its own ByteOrder only if it starts on a byte boundary and is a whole
// number of bytes wide, as two bit numberings cannot share a byte. Every ByteOrder must walk
// each field's bytes exactly once without leaving them, or a schema error is returned.
func FromSchema(o order.ByteOrder, s *schema.Schema) (*Protocol, error) {
	ctx := context.Background()

	if s == nil {
		return nil, errors.E(ctx, errors.CatUser, errors.TypeParameter, errors.New("schema cannot be nil"))
	}
	if o == nil {
		o = order.MSBFirst
	}

	p := &Protocol{
		schema:  s,
		order:   o,
		entries: make([]entry, s.Len()),
	}
	for i, l := range s.Layouts() {
		fo := o
		if l.Order != nil && l.Order != o {
			if l.BitInByte != 0 || l.Bits%schema.BitsPerByte != 0 {
				return nil, errors.E(
					ctx,
					errors.CatUser,
					errors.TypeSchema,
					fmt.Errorf(
						"%w: field %d uses %s inside a %s protocol, so it must be byte aligned and a multiple of 8 bits, but starts at bit %d and is %d bits",
						ErrSchema, i, l.Order, o, l.BitOffset, l.Bits,
					),
				)
			}
			fo = l.Order
		}
		if err := checkWalk(fo, l); err != nil {
			return nil, errors.E(ctx, errors.CatUser, errors.TypeSchema, err)
		}
		p.entries[i] = entry{
			layout: l,
			span:   engine.Span{ByteIndex: l.ByteIndex, BitInByte: l.BitInByte, Bits: l.Bits},
			order:  fo,
		}
	}
	return p, nil
}

// checkWalk verifies that "o" visits every byte of the field at "l" exactly once and no
// byte outside of it.
func checkWalk(o order.ByteOrder, l schema.Layout) error {
	first, last := l.ByteIndex, l.LastByte()

	var seen uint16 // A field touches at most 9 bytes.
	i := o.Start(first, last)
	for k := first; k <= last; k++ {
		if i < first || i > last || seen&(1<<(i-first)) != 0 {
			return fmt.Errorf(
				"%w: field %d is in bytes %d to %d, but %s visits byte %d",
				ErrSchema, l.Index, first, last, o, i,
			)
		}
		seen |= 1 << (i - first)
		i = o.Next(i)
	}
	return nil
}

// entry returns the entry for field "i" after checking "i" and the length of "buf".
func (p *Protocol) entry(buf []byte, i int) (entry, error) {
	if i < 0 || i >= len(p.entries) {
		return entry{}, errors.E(
			context.Background(),
			errors.CatUser,
			errors.TypeBounds,
			fmt.Errorf("%w: field %d, protocol has %d fields", ErrBounds, i, len(p.entries)),
			errors.WithCallNum(3),
		)
	}
	if len(buf) < p.schema.ByteLength() {
		return entry{}, errors.E(
			context.Background(),
			errors.CatUser,
			errors.TypeBounds,
			fmt.Errorf("%w: buffer is %d bytes, protocol needs %d", ErrShortBuffer, len(buf), p.schema.ByteLength()),
			errors.WithCallNum(3),
		)
	}
	return p.entries[i], nil
}

// Get returns the value of field "i" in "buf".
func (p *Protocol) Get(buf []byte, i int) (uint64, error) {
	e, err := p.entry(buf, i)
	if err != nil {
		return 0, err
	}
	return engine.Get(buf, e.span, e.order), nil
}

// Set stores "v" in field "i" of "buf". If "v" does not fit in the field's bits, an error
// wrapping ErrValueRange is returned and "buf" is not changed. Use SetTrunc to discard
// the excess bits instead. Bits that belong to other fields are never changed.
func (p *Protocol) Set(buf []byte, i int, v uint64) error {
	e, err := p.entry(buf, i)
	if err != nil {
		return err
	}
	if !bits.Fits(v, e.layout.Bits) {
		return errors.E(
			context.Background(),
			errors.CatUser,
			errors.TypeValueRange,
			fmt.Errorf("%w: %d does not fit in field %d (%d bits, max %d)", ErrValueRange, v, i, e.layout.Bits, e.layout.Mask()),
		)
	}
	engine.Set(buf, e.span, e.order, v)
	return nil
}

// SetTrunc stores the low bits of "v" in field "i" of "buf", silently discarding any bits
// of "v" that do not fit in the field.
func (p *Protocol) SetTrunc(buf []byte, i int, v uint64) error {
	e, err := p.entry(buf, i)
	if err != nil {
		return err
	}
	engine.Set(buf, e.span, e.order, v)
	return nil
}

// GetBool returns true if field "i" is not zero.
func (p *Protocol) GetBool(buf []byte, i int) (bool, error) {
	v, err := p.Get(buf, i)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// SetBool sets field "i" to 1 if "b" is true, 0 if it is false.
func (p *Protocol) SetBool(buf []byte, i int, b bool) error {
	var v uint64
	if b {
		v = 1
	}
	return p.Set(buf, i, v)
}

// Values returns the value of every field in "buf", in schema order.
func (p *Protocol) Values(buf []byte) ([]uint64, error) {
	if _, err := p.entry(buf, 0); err != nil {
		return nil, err
	}
	out := make([]uint64, len(p.entries))
	for i, e := range p.entries {
		out[i] = engine.Get(buf, e.span, e.order)
	}
	return out, nil
}

// Schema returns the Schema the Protocol was built from.
func (p *Protocol) Schema() *schema.Schema {
	return p.schema
}

// Order returns the Protocol's ByteOrder. Fields may override it.
func (p *Protocol) Order() order.ByteOrder {
	return p.order
}

// FieldOrder returns the ByteOrder field "i" is stored in.
func (p *Protocol) FieldOrder(i int) (order.ByteOrder, error) {
	l, err := p.Layout(i)
	if err != nil {
		return nil, err
	}
	return p.entries[l.Index].order, nil
}

// FieldCount is the number of fields in the protocol.
func (p *Protocol) FieldCount() int {
	return len(p.entries)
}

// BitLength is the number of bits in the protocol.
func (p *Protocol) BitLength() int {
	return p.schema.BitLength()
}

// ByteLength is the number of bytes a buffer must have to hold the protocol.
func (p *Protocol) ByteLength() int {
	return p.schema.ByteLength()
}

// Index returns the index of the field called "name".
func (p *Protocol) Index(name string) (int, bool) {
	return p.schema.Index(name)
}

// Layout returns the layout of field "i".
func (p *Protocol) Layout(i int) (schema.Layout, error) {
	l, ok := p.schema.Layout(i)
	if !ok {
		return schema.Layout{}, errors.E(
			context.Background(),
			errors.CatUser,
			errors.TypeBounds,
			fmt.Errorf("%w: field %d, protocol has %d fields", ErrBounds, i, len(p.entries)),
		)
	}
	return l, nil
}

// BitOffset returns the number of bits that come before field "i".
func (p *Protocol) BitOffset(i int) (int, error) {
	l, err := p.Layout(i)
	return l.BitOffset, err
}

// ByteIndex returns the index of the byte holding the first bit of field "i".
func (p *Protocol) ByteIndex(i int) (int, error) {
	l, err := p.Layout(i)
	return l.ByteIndex, err
}

// SpansBytes reports if field "i" crosses a byte boundary.
func (p *Protocol) SpansBytes(i int) (bool, error) {
	l, err := p.Layout(i)
	return l.SpansBytes, err
}

// Format renders "buf" in binary followed by one line per field. It is meant for debugging.
func (p *Protocol) Format(buf []byte) (string, error) {
	values, err := p.Values(buf)
	if err != nil {
		return "", err
	}

	b := strings.Builder{}
	b.WriteString(bits.BytesInBinary(buf[:p.ByteLength()]))
	b.WriteByte('\n')
	for i, e := range p.entries {
		name := e.layout.Name
		if name == "" {
			name = fmt.Sprintf("field%d", i)
		}
		fmt.Fprintf(
			&b, "%2d %-16s bits %-2d @%-4d %-8s %#x\n",
			i, name, e.layout.Bits, e.layout.BitOffset, e.layout.Type, values[i],
		)
	}
	return b.String(), nil
}
