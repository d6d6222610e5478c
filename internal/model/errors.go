package model

import (
	"errors"
	"fmt"
)

// Error kinds signaled to the immediate caller. Checksum mismatches are not
// errors; they are reported through PartialResult or a false IsValid.
var (
	// ErrInvalidArgument is returned when a mandatory value is missing or empty.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidLength is returned when the cleaned input does not have the
	// length required by the operation or layout.
	ErrInvalidLength = errors.New("invalid length")

	// ErrInvalidInput is returned when the input carries a character that is
	// neither a digit nor an accepted separator.
	ErrInvalidInput = errors.New("invalid input")
)

// FieldError wraps one of the error kinds with the offending field and value
type FieldError struct {
	Field   string
	Value   string
	Message string
	Cause   error
}

func (e *FieldError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s (value=%q): %v", e.Field, e.Message, e.Value, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %v", e.Field, e.Message, e.Cause)
}

func (e *FieldError) Unwrap() error {
	return e.Cause
}

// NewFieldError creates a new field error
func NewFieldError(cause error, field, value, message string) *FieldError {
	return &FieldError{
		Field:   field,
		Value:   value,
		Message: message,
		Cause:   cause,
	}
}

// LengthError reports a cleaned value whose length differs from the expected one
func LengthError(field, value string, want int, more ...int) *FieldError {
	msg := fmt.Sprintf("expected %d digits, got %d", want, len(value))
	if len(more) > 0 {
		msg = fmt.Sprintf("expected %v digits, got %d", append([]int{want}, more...), len(value))
	}
	return NewFieldError(ErrInvalidLength, field, value, msg)
}

// IsUsageError reports whether err is one of the caller-misuse kinds
func IsUsageError(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrInvalidLength) ||
		errors.Is(err, ErrInvalidInput)
}
