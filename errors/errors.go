// Package errors provides error types and utilities for the queuekit library.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrUnknownJobType = errors.New("unknown job type")
	ErrJobNotFound    = errors.New("job not found")
	ErrDuplicateJob   = errors.New("duplicate job id")
	ErrEmptyJobType   = errors.New("job type cannot be empty")
	ErrNilHandler     = errors.New("handler function cannot be nil")
	ErrNotStarted     = errors.New("queue not started")
	ErrShutdown       = errors.New("shutting down")
)

// HandlerError represents a failure inside a job handler, including
// recovered panics.
type HandlerError struct {
	Type  string // job type
	JobID string // job id
	Err   error  // underlying error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler %s for job %s: %v", e.Type, e.JobID, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// UnknownTypeError reports a submission for a type with no registered
// handler.
type UnknownTypeError struct {
	Type string // job type
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown job type %q", e.Type)
}

func (e *UnknownTypeError) Unwrap() error {
	return ErrUnknownJobType
}

// Helper functions for creating errors

// NewHandlerError creates a new handler error
func NewHandlerError(jobType, jobID string, err error) error {
	return &HandlerError{Type: jobType, JobID: jobID, Err: err}
}

// NewUnknownTypeError creates a new unknown job type error
func NewUnknownTypeError(jobType string) error {
	return &UnknownTypeError{Type: jobType}
}

// IsNotFound checks if an error means a missing job
func IsNotFound(err error) bool {
	return errors.Is(err, ErrJobNotFound)
}

// IsUnknownType checks if an error means an unregistered job type
func IsUnknownType(err error) bool {
	return errors.Is(err, ErrUnknownJobType)
}
