// SPDX-License-Identifier: MPL-2.0

// Package action defines the executable units parsed from the command line
// and the executor that interprets them.
//
// Each action corresponds to one command-line token (or a flag plus its
// following token, for -o). Actions are immutable values executed exactly
// once, in command-line order.
package action

import (
	"fmt"
	"strings"
)

type (
	// Action is one parsed, executable unit. Implementations are the
	// closed set of variants the command-line grammar can produce.
	Action interface {
		fmt.Stringer
		isAction()
	}

	// ShowVersion prints the version string.
	ShowVersion struct{}

	// ShowHelp prints the usage block.
	ShowHelp struct{}

	// CreateShortcut writes the platform-specific launcher script to the
	// current directory.
	CreateShortcut struct{}

	// SetOption sets a process-wide option before subsequent actions run.
	SetOption struct {
		Name  string
		Value string
	}

	// RunTask invokes a registered task with positional arguments. Kwargs
	// is always empty under the current grammar but stays in the model so
	// execution does not change shape when keyword syntax lands.
	RunTask struct {
		Name   string
		Args   []string
		Kwargs map[string]string
	}
)

func (ShowVersion) isAction()    {}
func (ShowHelp) isAction()       {}
func (CreateShortcut) isAction() {}
func (SetOption) isAction()      {}
func (RunTask) isAction()        {}

// String implements fmt.Stringer.
func (ShowVersion) String() string { return "Version" }

// String implements fmt.Stringer.
func (ShowHelp) String() string { return "Help" }

// String implements fmt.Stringer.
func (CreateShortcut) String() string { return "CreateShortcut" }

// String implements fmt.Stringer.
func (o SetOption) String() string {
	return fmt.Sprintf("Option: %s=%s", o.Name, o.Value)
}

// String implements fmt.Stringer.
func (t RunTask) String() string {
	return fmt.Sprintf("Task: %s(%s)", t.Name, strings.Join(t.Args, ","))
}
