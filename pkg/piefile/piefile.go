// SPDX-License-Identifier: MPL-2.0

// Package piefile defines the pietasks.cue task-definition file format.
//
// A pietasks file is the project-local collection of script tasks. It is
// loaded once per invocation, and loading registers every declared task:
// the file is the configuration-driven counterpart of registering Go task
// functions in code.
package piefile

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DefaultFileName is the task-definition file pie looks for in the current
// directory.
const DefaultFileName = "pietasks.cue"

// ErrInvalidTaskName is the sentinel error wrapped by InvalidTaskNameError.
var ErrInvalidTaskName = errors.New("invalid task name")

type (
	// Piefile is a parsed task-definition file.
	Piefile struct {
		// Description documents the task set (optional).
		Description string `json:"description,omitempty"`
		// Tasks maps task name to definition.
		Tasks map[string]Task `json:"tasks"`
		// FilePath is where the file was loaded from (set by Parse).
		FilePath string `json:"-"`
	}

	// Task is one script task definition.
	Task struct {
		// Description provides help text for the task (optional).
		Description string `json:"description,omitempty"`
		// Script is the shell script run when the task is invoked.
		Script string `json:"script"`
		// Venv is the virtual environment path the script runs inside
		// (optional). When set, the script is executed with that
		// environment's activation command prefixed.
		Venv string `json:"venv,omitempty"`
		// Params declares the parameters the task accepts, in call order.
		Params []Param `json:"params,omitempty"`
	}

	// Param declares one task parameter.
	Param struct {
		// Name is the parameter name.
		Name string `json:"name"`
		// Type is a descriptive type tag; "string" when omitted.
		Type string `json:"type,omitempty"`
	}

	// InvalidTaskNameError is returned when a task name is empty or
	// whitespace-only. Task names contain no parentheses because the
	// command-line grammar uses them to delimit arguments.
	InvalidTaskNameError struct {
		Name string
	}
)

// Error implements the error interface.
func (e *InvalidTaskNameError) Error() string {
	return fmt.Sprintf("invalid task name %q (must be non-empty and contain no parentheses)", e.Name)
}

// Unwrap returns ErrInvalidTaskName so callers can use errors.Is for
// programmatic detection.
func (e *InvalidTaskNameError) Unwrap() error { return ErrInvalidTaskName }

// TaskNames returns the defined task names in sorted order.
func (p *Piefile) TaskNames() []string {
	names := make([]string, 0, len(p.Tasks))
	for name := range p.Tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// validate checks structural constraints the CUE schema cannot express.
func (p *Piefile) validate() error {
	for name := range p.Tasks {
		if strings.TrimSpace(name) == "" || strings.ContainsAny(name, "()") {
			return &InvalidTaskNameError{Name: name}
		}
	}
	return nil
}
