package docblock

import (
	"errors"
	"fmt"

	"github.com/yaklabco/docblock/internal/assert"
	"github.com/yaklabco/docblock/pkg/dast"
	"github.com/yaklabco/docblock/pkg/lexer"
)

// Sentinel errors returned by Parse.
var (
	// ErrUnterminatedComment means the input ended inside a docblock.
	ErrUnterminatedComment = errors.New("unterminated comment")

	// ErrUnexpectedToken means tokens appeared in an order the grammar does
	// not allow.
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrInvariant means the parser itself is broken. It is never caused by
	// input alone.
	ErrInvariant = assert.ErrInvariant

	// ErrTransform wraps an error returned by a caller transform.
	ErrTransform = errors.New("transform failed")
)

// SyntaxError describes malformed docblock input.
type SyntaxError struct {
	// Err is ErrUnterminatedComment or ErrUnexpectedToken.
	Err error

	// Point is where the problem was detected.
	Point dast.Point

	// Found is the offending token kind.
	Found lexer.Kind

	// Expected lists what the grammar allowed instead.
	Expected []lexer.Kind
}

func (e *SyntaxError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("%s: %s at %s", e.Point, e.Err, e.Found)
	}

	return fmt.Sprintf("%s: %s: found %s, expected %s", e.Point, e.Err, e.Found, kindList(e.Expected))
}

// Unwrap returns the sentinel error.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func kindList(kinds []lexer.Kind) string {
	out := ""
	for i, kind := range kinds {
		switch {
		case i == 0:
		case i == len(kinds)-1:
			out += " or "
		default:
			out += ", "
		}
		out += kind.String()
	}
	return out
}
