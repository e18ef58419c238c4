package service

import (
	"errors"
	"fmt"
)

// Common service errors
var (
	// ErrNotFound means the operation referenced a VR number with no
	// existing record where one was required
	ErrNotFound = errors.New("record not found")
	// ErrInvalidInput means a malformed input, such as a non-positive
	// weight or an empty VR number
	ErrInvalidInput = errors.New("invalid input")
)

// StorageError wraps a failed object-storage or database call
type StorageError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *StorageError) Unwrap() error {
	return e.Err
}

// PartialError reports a composite operation where the first step succeeded
// and the second failed. URL identifies the stored object so the caller can
// retry only the remaining step or warn that a file may be orphaned.
type PartialError struct {
	Stage string
	URL   string
	Err   error
}

// Error implements the error interface
func (e *PartialError) Error() string {
	return fmt.Sprintf("partial failure at %s for %s: %v", e.Stage, e.URL, e.Err)
}

// Unwrap returns the underlying error
func (e *PartialError) Unwrap() error {
	return e.Err
}
