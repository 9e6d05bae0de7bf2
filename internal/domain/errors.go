package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed search input. It is raised before any
// store access happens, so the caller can map it to a 4xx without retrying.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a ValidationError for a field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// DataAccessError wraps an underlying store failure. It is surfaced verbatim
// as a retriable condition, distinct from an empty result set.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	return fmt.Sprintf("data access failed during %s: %v", e.Op, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// NewDataAccessError wraps a store error with the failing operation.
func NewDataAccessError(op string, err error) *DataAccessError {
	return &DataAccessError{Op: op, Err: err}
}

// IsDataAccess reports whether err is a DataAccessError.
func IsDataAccess(err error) bool {
	var de *DataAccessError
	return errors.As(err, &de)
}
