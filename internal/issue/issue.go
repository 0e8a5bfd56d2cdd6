// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error context.
//
// Errors that reach the CLI boundary are wrapped in an ActionableError so
// the message names the failed operation, the resource involved, and what
// the user can do about it.
package issue

import (
	"errors"
	"fmt"
	"strings"
)

// ActionableError is an error with context for user-facing messages: what
// operation failed, what resource was involved, and suggestions for fixing
// the issue.
type ActionableError struct {
	// Operation describes what was being attempted, as a verb phrase
	// (e.g. "parse command line", "run task").
	Operation string

	// Resource identifies the file, token, or entity involved (optional).
	Resource string

	// Suggestions provides hints on how to fix the issue (optional).
	Suggestions []string

	// Cause is the underlying error (optional).
	Cause error
}

// WrapWithOperation wraps err with operation context. Returns nil for a nil
// err so it can be used on return values directly.
func WrapWithOperation(err error, operation string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Cause: err}
}

// WrapWithContext wraps err with operation and resource context.
func WrapWithContext(err error, operation, resource string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Resource: resource, Cause: err}
}

// Suggest appends suggestions and returns the error for chaining.
func (e *ActionableError) Suggest(suggestions ...string) *ActionableError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// Error implements the error interface with the concise, non-verbose form.
func (e *ActionableError) Error() string {
	var msg strings.Builder

	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)

	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	return msg.String()
}

// Unwrap returns the underlying cause for use with errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format returns the message with suggestions appended. In verbose mode the
// full error chain is included.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder

	msg.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, suggestion := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(suggestion)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		err := e.Cause
		depth := 1
		for err != nil {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			err = errors.Unwrap(err)
			depth++
		}
	}
	return msg.String()
}
