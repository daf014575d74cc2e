package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompleteInput means the engine was called before every wizard step was submitted.
	// It signals a caller ordering bug rather than bad user input.
	ErrIncompleteInput = errors.New("incomplete form data")

	// ErrMalformedField is matched by every *FieldError.
	ErrMalformedField = errors.New("malformed field")
)

// FieldError reports a form field whose value the engine cannot price.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: cannot use %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap lets errors.Is match both ErrMalformedField and the underlying parse error.
func (e *FieldError) Unwrap() []error {
	return []error{ErrMalformedField, e.Err}
}

func fieldError(field, value string, err error) *FieldError {
	return &FieldError{Field: field, Value: value, Err: err}
}
