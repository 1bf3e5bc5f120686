// Package errors defines the failure taxonomy shared by the resolver, the
// sources and the run orchestrator.
package errors

import (
	"errors"
	"fmt"
)

const (
	FieldQuery  = "query"
	FieldSource = "source"
)

// MissingArgumentError reports a required invocation token that was not given
type MissingArgumentError struct {
	Field string
}

// Error implements the error interface
func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing argument: %s", e.Field)
}

// IOFailureError carries a failure raised while reading the text body or
// writing results. The message is the cause's message, unchanged.
type IOFailureError struct {
	Source string
	Err    error
}

// Error implements the error interface
func (e *IOFailureError) Error() string {
	if e.Err == nil {
		return "io failure"
	}
	return e.Err.Error()
}

// Unwrap returns the underlying cause
func (e *IOFailureError) Unwrap() error {
	return e.Err
}

// MissingArgument creates a MissingArgumentError for the given field
func MissingArgument(field string) error {
	return &MissingArgumentError{Field: field}
}

// IOFailure wraps err as an IOFailureError. A nil err stays nil, and an err
// that already is an IOFailureError is returned as is.
func IOFailure(source string, err error) error {
	if err == nil {
		return nil
	}
	if IsIOFailure(err) {
		return err
	}
	return &IOFailureError{Source: source, Err: err}
}

// IsMissingArgument checks if an error is a MissingArgumentError
func IsMissingArgument(err error) bool {
	var missingErr *MissingArgumentError
	return errors.As(err, &missingErr)
}

// IsIOFailure checks if an error is an IOFailureError
func IsIOFailure(err error) bool {
	var ioErr *IOFailureError
	return errors.As(err, &ioErr)
}

// ExitCode maps an error to a process exit status
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case IsMissingArgument(err):
		return 2
	default:
		return 1
	}
}
