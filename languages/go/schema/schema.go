// Package schema describes the layout of a packed binary protocol: an ordered list of fixed
// width fields laid out back-to-back, most significant field first.
//
// A Schema is built once with New(). Every field is validated and the position of every field
// is computed at that time, so a Schema is read-only metadata that can be shared by any number
// of buffers and goroutines.
package schema

import (
	"fmt"

	"github.com/gostdlib/base/context"

	"github.com/bearlytools/ptl/internal/bits"
	"github.com/bearlytools/ptl/languages/go/errors"
	"github.com/bearlytools/ptl/languages/go/field"
	"github.com/bearlytools/ptl/languages/go/order"
)

// BitsPerByte is the number of bits in a byte.
const BitsPerByte = 8

// MaxBits is the widest field that can be declared.
const MaxBits = 64

// ErrSchema is wrapped by every error that comes from an invalid field declaration.
var ErrSchema = errors.New("invalid schema")

// Field describes a single field in a protocol.
type Field struct {
	// Name is an optional name for the field. Names must be unique within a Schema.
	Name string
	// Bits is the number of bits the field occupies. It must be in [1, 64].
	Bits uint8
	// Type is the Go type used to hold the field's value. It must be an unsigned kind
	// that has at least Bits digits. FTUnknown selects the narrowest kind that fits.
	Type field.Type
	// Order overrides the protocol's ByteOrder for this field. nil uses the protocol's order.
	Order order.ByteOrder
}

// F is a shorthand for declaring an unnamed field of the narrowest type that holds "bits".
func F(bits uint8) Field {
	return Field{Bits: bits, Type: field.ForBits(bits)}
}

// Named is a shorthand for declaring a named field of the narrowest type that holds "bits".
func Named(name string, bits uint8) Field {
	return Field{Name: name, Bits: bits, Type: field.ForBits(bits)}
}

// Validate checks that the field can be laid out.
func (f Field) Validate() error {
	switch {
	case f.Bits == 0:
		return fmt.Errorf("%w: field%s has 0 bits, must be greater than 0", ErrSchema, f.label())
	case f.Bits > MaxBits:
		return fmt.Errorf("%w: field%s has %d bits, cannot be more than %d", ErrSchema, f.label(), f.Bits, MaxBits)
	case field.IsSigned(f.Type):
		return fmt.Errorf("%w: field%s has type %v, a field's type must be unsigned", ErrSchema, f.label(), f.Type)
	case !field.IsUnsigned(f.Type):
		return fmt.Errorf("%w: field%s has type %v, which is not an integer kind", ErrSchema, f.label(), f.Type)
	case field.Digits(f.Type) < f.Bits:
		return fmt.Errorf(
			"%w: field%s has %d bits, which does not fit in its type %v (%d digits)",
			ErrSchema, f.label(), f.Bits, f.Type, field.Digits(f.Type),
		)
	}
	return nil
}

func (f Field) label() string {
	if f.Name == "" {
		return ""
	}
	return fmt.Sprintf(" %q", f.Name)
}

// Layout is the position of a field inside a protocol buffer.
type Layout struct {
	// Index is the field's position in the Schema.
	Index int
	// Name is the field's name, if it has one.
	Name string
	// Type is the Go type that holds the field's value.
	Type field.Type
	// Bits is the width of the field.
	Bits uint8
	// BitOffset is the sum of the widths of all preceding fields.
	BitOffset int
	// ByteIndex is the byte that holds the field's first bit.
	ByteIndex int
	// BitInByte is the offset of the field's first bit inside ByteIndex.
	BitInByte uint8
	// SpansBytes is set if the field's bits begin in one byte and end in a later one.
	SpansBytes bool
	// ByteCount is the number of bytes the field touches.
	ByteCount int
	// Order is the field's own order, nil if it uses the protocol's.
	Order order.ByteOrder
}

// LastByte is the index of the byte that holds the field's last bit.
func (l Layout) LastByte() int {
	return (l.BitOffset + int(l.Bits) - 1) / BitsPerByte
}

// ValueBytes is the number of bytes needed to hold the field's value on its own.
func (l Layout) ValueBytes() int {
	return RequiredBytes(int(l.Bits))
}

// Mask returns the largest value the field can hold.
func (l Layout) Mask() uint64 {
	return bits.Low(^uint64(0), l.Bits)
}

// Schema is an immutable, ordered list of fields and their layouts.
type Schema struct {
	layouts []Layout
	names   map[string]int
	bits    int
}

// New validates "fields" and lays them out in order. The schema is unusable if any field is invalid.
func New(fields ...Field) (*Schema, error) {
	ctx := context.Background()

	if len(fields) == 0 {
		return nil, errors.E(ctx, errors.CatUser, errors.TypeSchema, fmt.Errorf("%w: a schema must have at least one field", ErrSchema))
	}

	s := &Schema{
		layouts: make([]Layout, len(fields)),
		names:   make(map[string]int, len(fields)),
	}

	offset := 0
	for i, f := range fields {
		if f.Type == field.FTUnknown {
			f.Type = field.ForBits(f.Bits)
		}
		if err := f.Validate(); err != nil {
			return nil, errors.E(ctx, errors.CatUser, errors.TypeSchema, fmt.Errorf("field %d: %w", i, err))
		}
		if f.Name != "" {
			if prev, ok := s.names[f.Name]; ok {
				return nil, errors.E(
					ctx,
					errors.CatUser,
					errors.TypeSchema,
					fmt.Errorf("%w: field %d: name %q is already used by field %d", ErrSchema, i, f.Name, prev),
				)
			}
			s.names[f.Name] = i
		}

		s.layouts[i] = layout(i, f, offset)
		offset += int(f.Bits)
	}
	s.bits = offset

	return s, nil
}

// MustNew is New, but panics on an error. Use it for package level protocol declarations.
func MustNew(fields ...Field) *Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// layout computes the derived facts of a field that starts "offset" bits into the buffer.
func layout(i int, f Field, offset int) Layout {
	inByte := uint8(offset % BitsPerByte)
	return Layout{
		Index:      i,
		Name:       f.Name,
		Type:       f.Type,
		Bits:       f.Bits,
		BitOffset:  offset,
		ByteIndex:  offset / BitsPerByte,
		BitInByte:  inByte,
		SpansBytes: int(inByte)+int(f.Bits) > BitsPerByte,
		ByteCount:  RequiredBytes(int(inByte) + int(f.Bits)),
		Order:      f.Order,
	}
}

// RequiredBytes returns the number of bytes needed to store "bits" bits.
func RequiredBytes(bits int) int {
	return bits/BitsPerByte + boolInt(bits%BitsPerByte != 0)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Len is the number of fields in the schema.
func (s *Schema) Len() int {
	return len(s.layouts)
}

// BitLength is the sum of the widths of all fields.
func (s *Schema) BitLength() int {
	return s.bits
}

// ByteLength is the number of bytes a buffer needs to hold every field.
func (s *Schema) ByteLength() int {
	return RequiredBytes(s.bits)
}

// Layout returns the layout of field "i". ok is false if i is not a field in the schema.
func (s *Schema) Layout(i int) (l Layout, ok bool) {
	if i < 0 || i >= len(s.layouts) {
		return Layout{}, false
	}
	return s.layouts[i], true
}

// Layouts returns a copy of every field's layout, in order.
func (s *Schema) Layouts() []Layout {
	out := make([]Layout, len(s.layouts))
	copy(out, s.layouts)
	return out
}

// Index returns the index of the field called "name".
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.names[name]
	return i, ok
}
