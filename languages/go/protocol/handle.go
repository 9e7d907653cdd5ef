package protocol

import (
	"fmt"

	"github.com/gostdlib/base/context"
	"golang.org/x/exp/constraints"

	"github.com/bearlytools/ptl/internal/bits"
	"github.com/bearlytools/ptl/internal/engine"
	"github.com/bearlytools/ptl/languages/go/errors"
	"github.com/bearlytools/ptl/languages/go/schema"
)

// Handle is an accessor bound to a single field and a Go type. The field index and the
// type are checked once when the Handle is made, so Get and Set only touch the buffer.
// A Handle is a small value and is safe for concurrent use. Only Handles returned by
// NewHandle or MustHandle are usable; Get or Set on the zero value panics.
type Handle[T constraints.Unsigned] struct {
	e   entry
	min int
}

// NewHandle returns a Handle for field "i" of "p". T must have at least as many bits as the field.
func NewHandle[T constraints.Unsigned](p *Protocol, i int) (Handle[T], error) {
	l, err := p.Layout(i)
	if err != nil {
		return Handle[T]{}, err
	}
	if d := bits.Digits[T](); d < l.Bits {
		var t T
		return Handle[T]{}, errors.E(
			context.Background(),
			errors.CatUser,
			errors.TypeParameter,
			fmt.Errorf("%w: field %d is %d bits, %T only has %d", ErrHandleType, i, l.Bits, t, d),
		)
	}
	return Handle[T]{e: p.entries[i], min: p.ByteLength()}, nil
}

// MustHandle is NewHandle, but panics on an error.
func MustHandle[T constraints.Unsigned](p *Protocol, i int) Handle[T] {
	h, err := NewHandle[T](p, i)
	if err != nil {
		panic(err)
	}
	return h
}

// Get returns the field's value in "buf". "buf" must be at least as long as the protocol
// or this panics.
func (h Handle[T]) Get(buf []byte) T {
	_ = buf[h.min-1] // bounds check hint to compiler; see golang.org/issue/14808
	return T(engine.Get(buf, h.e.span, h.e.order))
}

// Set stores "v" in the field. If "v" has more bits than the field an error wrapping
// ErrValueRange is returned and "buf" is not changed. "buf" must be at least as long as
// the protocol or this panics.
func (h Handle[T]) Set(buf []byte, v T) error {
	_ = buf[h.min-1]
	if !bits.Fits(uint64(v), h.e.layout.Bits) {
		return errors.E(
			context.Background(),
			errors.CatUser,
			errors.TypeValueRange,
			fmt.Errorf("%w: %d does not fit in field %d (%d bits)", ErrValueRange, v, h.e.layout.Index, h.e.layout.Bits),
		)
	}
	engine.Set(buf, h.e.span, h.e.order, uint64(v))
	return nil
}

// Layout returns the layout of the Handle's field.
func (h Handle[T]) Layout() schema.Layout {
	return h.e.layout
}
