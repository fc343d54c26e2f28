package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced session id does not exist.
var ErrNotFound = errors.New("session not found")

// StorageError wraps an I/O or corruption failure at the persistence layer.
// Corrupted records are reported through it, never auto-repaired.
type StorageError struct {
	Op  string
	ID  string
	Err error
}

func (e *StorageError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.ID, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ValidationError reports a malformed session or interaction record
// rejected at the store boundary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
