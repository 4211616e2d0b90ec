package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation addresses an id that does not
// exist. The HTTP boundary maps it to 404.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a field that is present but unusable: wrong type,
// disallowed value, or a reference that restrict-mode deletion protects.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// MissingFieldError reports a required payload field that was not supplied.
// Updates are full-replace, so every mutable field must be present.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}
