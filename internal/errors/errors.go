// Package errors provides the structured error types used across scene.
//
// This package defines base error types for common error conditions, wrapped error
// types that add contextual information, and helper functions for error wrapping
// and type checking.
//
// # Error Types
//
// Base errors (sentinel errors):
//   - ErrNotFound - workflow or action not found
//   - ErrDuplicateName - another workflow already uses the name
//   - ErrAlreadyExists - a workflow with the same id is already stored
//   - ErrInvalid - validation failed
//   - ErrIO - reading or writing the backing store failed
//   - ErrLaunch - opening a path with the OS default handler failed
//   - ErrCanceled - user canceled operation
//
// Wrapped error types (add context):
//   - WorkflowError{Op, Err, ID} - workflow operation errors
//   - PersistenceError{Op, Path, Err} - backing store load/save errors
//   - LaunchError{Index, Path, Err} - a failed action during a run
//   - ConfigError{Path, Err} - configuration errors
//
// # Usage
//
//	// Use sentinel errors directly
//	return errors.ErrNotFound
//
//	// Use structured error types
//	return &errors.WorkflowError{Op: "add", Err: errors.ErrDuplicateName, ID: wf.ID}
//
//	// Check error types
//	if errors.IsDuplicateName(err) {
//	    // ask for another name
//	}
package errors

import (
	"errors"
	"fmt"
)

// Base error types (sentinel errors).
var (
	// ErrNotFound indicates a resource was not found.
	ErrNotFound = baseError("not found")

	// ErrDuplicateName indicates the workflow name is already taken.
	ErrDuplicateName = baseError("duplicate name")

	// ErrAlreadyExists indicates a duplicate resource.
	ErrAlreadyExists = baseError("already exists")

	// ErrInvalid indicates validation failed.
	ErrInvalid = baseError("invalid")

	// ErrIO indicates a file I/O error.
	ErrIO = baseError("I/O error")

	// ErrLaunch indicates the OS could not open a path.
	ErrLaunch = baseError("launch failed")

	// ErrCanceled indicates the user canceled an operation.
	ErrCanceled = baseError("canceled")
)

// baseError is a string that implements error.
type baseError string

func (e baseError) Error() string { return string(e) }

// WorkflowError represents an error that occurred during a workflow operation.
type WorkflowError struct {
	// Op is the operation being performed (e.g., "add", "update", "copy").
	Op string
	// Err is the underlying error.
	Err error
	// ID is the workflow identifier or name (optional).
	ID string
}

func (e *WorkflowError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("workflow %s %q: %s", e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("workflow %s: %s", e.Op, e.Err)
}

func (e *WorkflowError) Unwrap() error { return e.Err }

// PersistenceError represents a failure to load or save the backing store.
// It always matches ErrIO under errors.Is, whatever the underlying cause.
type PersistenceError struct {
	// Op is "load" or "save".
	Op string
	// Path is the backing store path.
	Path string
	// Err is the underlying error.
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Is reports ErrIO as a match so callers can test the category.
func (e *PersistenceError) Is(target error) bool { return target == ErrIO }

// LaunchError represents a failed action during a workflow run.
type LaunchError struct {
	// Index is the zero-based action index.
	Index int
	// Path is the path that could not be opened.
	Path string
	// Err is the underlying error.
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("action %d: open %s: %s", e.Index+1, e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// Is reports ErrLaunch as a match so callers can test the category.
func (e *LaunchError) Is(target error) bool { return target == ErrLaunch }

// ConfigError represents an error related to configuration.
type ConfigError struct {
	// Path is the configuration file path (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %s", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Wrap adds context to an error by wrapping it with an operation name.
// The returned error implements Unwrap() allowing errors.Is and errors.As
// to work with the wrapped error.
func Wrap(err error, op string) error {
	return &wrappedError{op: op, err: err}
}

// wrappedError is an error with an operation context.
type wrappedError struct {
	op  string
	err error
}

func (e *wrappedError) Error() string { return fmt.Sprintf("%s: %s", e.op, e.err) }
func (e *wrappedError) Unwrap() error { return e.err }

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateName reports whether err is or wraps ErrDuplicateName.
func IsDuplicateName(err error) bool {
	return errors.Is(err, ErrDuplicateName)
}

// IsAlreadyExists reports whether err is or wraps ErrAlreadyExists.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsInvalid reports whether err is or wraps ErrInvalid.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}

// IsIO reports whether err is or wraps ErrIO.
func IsIO(err error) bool {
	return errors.Is(err, ErrIO)
}

// IsLaunch reports whether err is or wraps ErrLaunch.
func IsLaunch(err error) bool {
	return errors.Is(err, ErrLaunch)
}

// IsCanceled reports whether err is or wraps ErrCanceled.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// AsWorkflowError reports whether err can be typed as a *WorkflowError.
func AsWorkflowError(err error) (*WorkflowError, bool) {
	var we *WorkflowError
	if errors.As(err, &we) {
		return we, true
	}
	return nil, false
}

// AsPersistenceError reports whether err can be typed as a *PersistenceError.
func AsPersistenceError(err error) (*PersistenceError, bool) {
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// AsLaunchError reports whether err can be typed as a *LaunchError.
func AsLaunchError(err error) (*LaunchError, bool) {
	var le *LaunchError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

// AsConfigError reports whether err can be typed as a *ConfigError.
func AsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
