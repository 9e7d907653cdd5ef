package errors

import (
	"github.com/gostdlib/base/errors"
)

// The functions below forward to github.com/gostdlib/base/errors, which mirrors the
// stdlib errors package, so packages in this module only import one errors package.

// New returns an error whose message is "text". Packages use it for sentinel errors
// such as protocol.ErrBounds, which errors from E() then wrap.
func New(text string) error {
	return errors.New(text)
}

// Unwrap returns the error "err" wraps, or nil.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Is reports if "target" is in the chain of "err". Errors from E() are checked against
// the sentinels they wrap, so Is(err, protocol.ErrValueRange) works on them.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in the chain of "err" that can be assigned to "target" and
// sets "target" to it.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error wrapping every non-nil error in "errs", or nil if there are none.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
