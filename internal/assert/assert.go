// Package assert reports broken internal invariants.
//
// A failed assertion panics with an *Error. Public entry points convert that
// panic back into an error with Recover so callers never see a partial
// result; any other panic is re-raised untouched.
package assert

import (
	"errors"
	"fmt"
)

// ErrInvariant is wrapped by every assertion failure.
var ErrInvariant = errors.New("internal invariant violated")

// Error is the panic value of a failed assertion.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvariant.Error(), e.Message)
}

// Unwrap returns ErrInvariant.
func (e *Error) Unwrap() error {
	return ErrInvariant
}

// That panics with an *Error when cond is false.
func That(cond bool, format string, args ...any) {
	if !cond {
		panic(&Error{Message: fmt.Sprintf(format, args...)})
	}
}

// Fail panics with an *Error unconditionally.
func Fail(format string, args ...any) {
	panic(&Error{Message: fmt.Sprintf(format, args...)})
}

// Recover turns an assertion panic into *errp. It must be deferred directly.
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}

	var assertion *Error
	if err, ok := r.(error); ok && errors.As(err, &assertion) {
		*errp = assertion
		return
	}

	panic(r)
}
