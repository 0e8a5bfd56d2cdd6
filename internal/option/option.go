// SPDX-License-Identifier: MPL-2.0

// Package option provides the process-wide option store.
//
// Options are named string values set from the command line (-o name=value)
// and read back by tasks. Values are never coerced; a task that wants an
// integer converts the string itself. The store is built once at startup and
// threaded explicitly through the executor rather than living in a package
// global.
package option

import (
	"errors"
	"fmt"
	"sort"
)

// ErrOptionNotFound is the sentinel error wrapped by OptionNotFoundError.
var ErrOptionNotFound = errors.New("option not found")

type (
	// OptionNotFoundError is returned by Get for names that were never set.
	OptionNotFoundError struct {
		Name string
	}

	// Store is a mutable name → value mapping with last-write-wins
	// semantics. It is not safe for concurrent use; pie runs a single
	// control thread.
	Store struct {
		values map[string]string
	}
)

// Error implements the error interface.
func (e *OptionNotFoundError) Error() string {
	return fmt.Sprintf("option %q is not set", e.Name)
}

// Unwrap returns ErrOptionNotFound so callers can use errors.Is for
// programmatic detection.
func (e *OptionNotFoundError) Unwrap() error { return ErrOptionNotFound }

// NewStore creates an empty option store.
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

// Set stores value under name, overwriting any previous value.
func (s *Store) Set(name, value string) {
	s.values[name] = value
}

// Get returns the value stored under name, or an OptionNotFoundError if the
// option was never set. There is no default-value mechanism; callers that
// want a fallback handle the error themselves.
func (s *Store) Get(name string) (string, error) {
	v, ok := s.values[name]
	if !ok {
		return "", &OptionNotFoundError{Name: name}
	}
	return v, nil
}

// Names returns the set option names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of options currently set.
func (s *Store) Len() int { return len(s.values) }
