package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidManager is returned when a user references a manager that
	// does not exist or is inactive.
	ErrInvalidManager = errors.New("invalid or inactive manager")
	// ErrMissingIdentifier is returned when a delete names neither user_id
	// nor mob_num.
	ErrMissingIdentifier = errors.New("provide user_id or mob_num")
)

// ValidationError reports a malformed or missing input field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// StoreError wraps a failure of the underlying storage.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
