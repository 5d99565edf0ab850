// Package shared holds the error taxonomy common to all entity services.
package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the operation target id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation indicates malformed or conflicting input.
	ErrValidation = errors.New("validation failed")
	// ErrProtected indicates an attempted mutation of a default role.
	ErrProtected = errors.New("protected resource")
	// ErrStorage indicates an underlying persistence failure.
	ErrStorage = errors.New("storage failure")
)

// ValidationError carries the reason a draft or patch was rejected.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Validationf builds a ValidationError with a formatted reason.
func Validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// StorageError wraps a persistence fault with the failing operation and
// collection so callers keep the distinguishing context.
type StorageError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error {
	return ErrStorage
}

// Cause returns the underlying fault.
func (e *StorageError) Cause() error {
	return e.Err
}
