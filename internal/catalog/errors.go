// Package catalog holds the console's business rules: form validation,
// uniqueness checks and the limits each collection enforces.
package catalog

import (
	"errors"
	"fmt"
)

// ValidationError is a user-facing rejection of submitted data.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ConflictError rejects a write that clashes with what is already stored.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}
