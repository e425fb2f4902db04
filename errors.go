package criteria

import (
	"fmt"

	"github.com/friendsofgo/errors"
)

var (
	// ErrMalformedInput is matched by every error caused by an encoded string
	// or path sequence that violates the wire grammar. Never retried.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnsupportedEncoding is matched when the decode target is not a
	// recognized filter type, regardless of the input's shape.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
)

// MalformedInputError describes why an input could not be decoded.
type MalformedInputError struct {
	Input  string
	Reason string
	Err    error
}

// Malformed builds a MalformedInputError for input with a formatted reason.
func Malformed(input string, format string, args ...any) *MalformedInputError {
	return &MalformedInputError{
		Input:  input,
		Reason: fmt.Sprintf(format, args...),
	}
}

// Wrap attaches the underlying parse error and returns e.
func (e *MalformedInputError) Wrap(err error) *MalformedInputError {
	e.Err = err
	return e
}

func (e *MalformedInputError) Error() string {
	msg := "malformed input: " + e.Reason
	if e.Input != "" {
		msg += fmt.Sprintf(" (in %q)", e.Input)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// UnsupportedEncodingError is returned when a codec is asked to decode into a
// type that does not expose a field schema.
type UnsupportedEncodingError struct {
	Target string
	Codec  string
}

// Unsupported builds an UnsupportedEncodingError for the given target.
// target may be any value; its dynamic type names the error.
func Unsupported(codec string, target any) *UnsupportedEncodingError {
	name := "<nil>"
	if target != nil {
		name = fmt.Sprintf("%T", target)
	}
	return &UnsupportedEncodingError{Target: name, Codec: codec}
}

func (e *UnsupportedEncodingError) Error() string {
	if e.Codec == "" {
		return fmt.Sprintf("unsupported encoding: %s is not a recognized filter type", e.Target)
	}
	return fmt.Sprintf("unsupported encoding: %s codec cannot decode into %s (not a recognized filter type)",
		e.Codec, e.Target)
}

func (e *UnsupportedEncodingError) Is(target error) bool {
	return target == ErrUnsupportedEncoding
}
