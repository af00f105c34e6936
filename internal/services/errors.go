package services

import (
	"errors"
	"fmt"
)

// Mood operation failures. Handlers map these to HTTP statuses with errors.Is.
var (
	ErrValidation       = errors.New("validation error")
	ErrInvalidID        = errors.New("invalid identifier")
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError carries the user-facing reason a request was rejected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// storeError keeps ErrNotFound as is and marks everything else as a store failure.
func storeError(op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
