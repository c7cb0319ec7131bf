package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the repositories and services. Handlers map
// them onto HTTP status codes; everything else is treated as a store failure
// and reported generically.
var (
	// ErrNotFound means the addressed record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyTransfer means a conversion targeted a transaction that
	// already carries a transferType.
	ErrAlreadyTransfer = errors.New("transaction is already part of a transfer")
)

// ValidationError reports a request rejected before any write happened.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
