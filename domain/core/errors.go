package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound          = errors.New("resource not found")
	ErrBaseRunNotFound   = fmt.Errorf("%w: base run", ErrNotFound)
	ErrBenchmarkNotFound = fmt.Errorf("%w: benchmark", ErrNotFound)

	// Validation errors
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrEmptySample      = errors.New("empty sample")

	// Comparison errors
	ErrBaseUnreadable = errors.New("base sample unreadable")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
