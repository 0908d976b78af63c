package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingVersion is returned when a library's own entry is absent from its version store.
	ErrMissingVersion = errors.New("missing version")

	// ErrVersionStoreNotFound is returned when the file backing a version store cannot be located.
	// It is a configuration problem and is never retried.
	ErrVersionStoreNotFound = errors.New("version store not found")

	// ErrNotFound marks a remote 404. Callers treat it as an answer, not a fault.
	ErrNotFound = errors.New("not found")
)

// CyclicDependencyError is returned when no valid build order exists.
type CyclicDependencyError struct {
	// Libraries lists the names that could never become eligible.
	Libraries []string
}

func (e *CyclicDependencyError) Error() string {
	return "cyclic dependency between libraries: " + strings.Join(e.Libraries, ", ")
}

// OperationError is the single failure shape of a release pipeline run.
type OperationError struct {
	Operation   string
	Description string
	Cause       error
}

func (e *OperationError) Error() string {
	if e.Cause == nil {
		return e.Description
	}
	return fmt.Sprintf("%s: %v", e.Description, e.Cause)
}

func (e *OperationError) Unwrap() error { return e.Cause }

// UnexpectedFaultError carries a panic recovered at the pipeline boundary.
type UnexpectedFaultError struct {
	Value any
	Stack string
}

func (e *UnexpectedFaultError) Error() string {
	return fmt.Sprintf("unexpected fault: %v", e.Value)
}

// Unwrap exposes the panic value when it was itself an error.
func (e *UnexpectedFaultError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// AuthExhaustedError is returned when the remote keeps rejecting credentials
// after the retry budget has been spent.
type AuthExhaustedError struct {
	Attempts int
}

func (e *AuthExhaustedError) Error() string {
	return fmt.Sprintf("authentication rejected after %d token refreshes", e.Attempts)
}

// RemoteFailureError is any remote response outside the 2xx/401/404 cases.
type RemoteFailureError struct {
	StatusCode int
	Err        error
}

func (e *RemoteFailureError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("remote call failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("remote call failed with status %d: %v", e.StatusCode, e.Err)
}

func (e *RemoteFailureError) Unwrap() error { return e.Err }
