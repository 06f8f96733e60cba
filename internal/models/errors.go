package models

import (
	"errors"
	"fmt"
	"strconv"
)

// Validation failures. Setters wrap them in a *ValidationError.
var (
	ErrEmptyField       = errors.New("must not be empty")
	ErrInvalidEmail     = errors.New("is not a valid email address")
	ErrMissingBirthDate = errors.New("must be set")
	ErrFutureDate       = errors.New("must not be in the future")
	ErrTooOld           = errors.New("is too far in the past (maximum age is 135)")
	ErrInvalidDate      = errors.New("is not a date in YYYY-MM-DD form")
)

// Field lookup failures.
var (
	ErrUnknownField  = errors.New("unknown field")
	ErrReadOnlyField = errors.New("field is derived and cannot be set")
)

// ValidationError reports a rejected value for one field.
type ValidationError struct {
	Field Field
	Value string
	Err   error
}

// Error returns a message suitable for showing next to the offending field.
func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s %v", e.Field.Label(), e.Err)
	}
	return fmt.Sprintf("%s %s %v", e.Field.Label(), strconv.Quote(e.Value), e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *ValidationError) Unwrap() error { return e.Err }
