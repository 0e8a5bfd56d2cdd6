// SPDX-License-Identifier: MPL-2.0

// Package task provides the task registry.
//
// A task is a named operation invocable from the command line. Tasks are
// registered during the startup phase, either programmatically (built-in Go
// tasks) or as a side effect of loading the pietasks file (script tasks).
// Registration is an explicit call; there is no implicit collection of
// tasks at package load time.
package task

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"pie-cli/internal/option"
)

// ErrTaskNotFound is the sentinel error wrapped by TaskNotFoundError.
var ErrTaskNotFound = errors.New("task not found")

type (
	// Invocation carries the call arguments for a single task invocation.
	Invocation struct {
		// Context is the Go context for cancellation.
		Context context.Context
		// Options is the process-wide option store, populated by -o flags
		// that appeared before this invocation. Reading an option that was
		// never set fails with the store's not-found error.
		Options *option.Store
		// Args are the positional arguments parsed from the command line.
		Args []string
		// Kwargs are keyword arguments. The current command-line grammar
		// never produces them, so the map is always empty; the field exists
		// so the call contract does not change when keyword syntax lands.
		Kwargs map[string]string
	}

	// Func is the implementation of a task.
	Func func(inv Invocation) error

	// ParameterSpec declares one parameter a task accepts.
	ParameterSpec struct {
		// Name is the parameter name.
		Name string
		// Type is a descriptive type tag (e.g. "string", "path", "int").
		Type string
		// Convert converts the raw command-line string to the desired
		// value. Optional; nil means the raw string is used as-is.
		Convert func(raw string) (any, error)
	}

	// Task is a registered task.
	Task struct {
		// Name is the unique task identifier within the registry.
		Name string
		// Description provides help text for the task (optional).
		Description string
		// Params are the declared parameters, in call order. They are
		// recorded for listing output; Invoke does not validate arguments
		// against them before delegating to the implementation.
		Params []ParameterSpec
		// Fn is the task implementation.
		Fn Func
	}

	// TaskNotFoundError is returned when an invocation references a name
	// that was never registered.
	TaskNotFoundError struct {
		Name string
	}

	// Registry maps task names to task implementations. Names are unique;
	// re-registering a name overwrites the previous entry. Not safe for
	// concurrent use.
	Registry struct {
		tasks map[string]Task
	}
)

// Error implements the error interface.
func (e *TaskNotFoundError) Error() string {
	return fmt.Sprintf("task %q is not registered", e.Name)
}

// Unwrap returns ErrTaskNotFound so callers can use errors.Is for
// programmatic detection.
func (e *TaskNotFoundError) Unwrap() error { return ErrTaskNotFound }

// NewRegistry creates an empty task registry.
func NewRegistry() *Registry {
	return &Registry{tasks: make(map[string]Task)}
}

// Register stores t under t.Name, overwriting any existing entry with the
// same name.
func (r *Registry) Register(t Task) {
	r.tasks[t.Name] = t
}

// RegisterFunc registers fn under name with the given declared parameters.
// It is a convenience wrapper over Register for built-in Go tasks.
func (r *Registry) RegisterFunc(name string, fn Func, params ...ParameterSpec) {
	r.Register(Task{Name: name, Params: params, Fn: fn})
}

// Lookup returns the task registered under name, or a TaskNotFoundError.
func (r *Registry) Lookup(name string) (Task, error) {
	t, ok := r.tasks[name]
	if !ok {
		return Task{}, &TaskNotFoundError{Name: name}
	}
	return t, nil
}

// Invoke looks up name and calls its implementation with the given
// invocation. Any failure from the task body propagates unmodified.
//
// TODO: validate inv.Args against the task's declared parameters and prompt
// for missing ones before delegating.
func (r *Registry) Invoke(name string, inv Invocation) error {
	t, err := r.Lookup(name)
	if err != nil {
		return err
	}
	return t.Fn(inv)
}

// Names returns the registered task names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tasks))
	for name := range r.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered tasks.
func (r *Registry) Len() int { return len(r.tasks) }
