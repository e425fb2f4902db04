package mapper

import (
	"fmt"

	"github.com/friendsofgo/errors"
)

// ErrCoercion is matched by every FieldError.
var ErrCoercion = errors.New("field coercion failed")

// FieldError reports a value that could not be converted to its declared
// field type.
type FieldError struct {
	// Path is the field path in key-path form, e.g. address[zipCode].
	Path string

	// Value is the raw value as received.
	Value string

	// Expected names the declared type or shape.
	Expected string

	Err error
}

func (e *FieldError) Error() string {
	msg := fmt.Sprintf("field %s: cannot use %q as %s", e.Path, e.Value, e.Expected)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FieldError) Unwrap() error { return e.Err }

func (e *FieldError) Is(target error) bool {
	return target == ErrCoercion
}
