// SPDX-License-Identifier: MPL-2.0

package action

import (
	"context"
	"fmt"
	"io"

	"pie-cli/internal/option"
	"pie-cli/internal/shortcut"
	"pie-cli/internal/task"

	"github.com/charmbracelet/log"
)

// usageTemplate is the fixed help block printed by ShowHelp. %s is the
// version.
const usageTemplate = `Usage:  pie -v | -h | -b | {-o name=value | task[(args...)]}
Version: v%s

  -v    Display version
  -h    Display this help
  -b    Create batch file shortcut
  -o    Sets an option with name to value
  task  Runs a task passing through arguments if required
`

// Executor interprets parsed actions against the option store and the task
// registry. It is the composition point for a pie run: the CLI layer builds
// one Executor, then hands it the parsed action sequence.
type Executor struct {
	// Options is the process-wide option store mutated by SetOption.
	Options *option.Store
	// Registry resolves task names for RunTask.
	Registry *task.Registry
	// Stdout receives version and help output.
	Stdout io.Writer
	// Version is the version string reported by ShowVersion and ShowHelp.
	Version string
	// Logger receives execution diagnostics. Must not be nil; use
	// log.New(io.Discard) to silence it.
	Logger *log.Logger
}

// Execute dispatches a single action.
func (e *Executor) Execute(ctx context.Context, a Action) error {
	e.Logger.Debug("executing action", "action", a.String())

	switch a := a.(type) {
	case ShowVersion:
		fmt.Fprintf(e.Stdout, "pie v%s\n", e.Version)
		return nil
	case ShowHelp:
		fmt.Fprintf(e.Stdout, usageTemplate, e.Version)
		return nil
	case CreateShortcut:
		path, err := shortcut.Write(".")
		if err != nil {
			return fmt.Errorf("failed to create shortcut: %w", err)
		}
		e.Logger.Debug("wrote shortcut", "path", path)
		return nil
	case SetOption:
		e.Options.Set(a.Name, a.Value)
		return nil
	case RunTask:
		return e.Registry.Invoke(a.Name, task.Invocation{
			Context: ctx,
			Options: e.Options,
			Args:    a.Args,
			Kwargs:  a.Kwargs,
		})
	default:
		return fmt.Errorf("unhandled action type %T", a)
	}
}

// ExecuteAll executes actions strictly left to right, stopping at the
// first failure. Actions after a failed one never run; there is no
// rollback for the ones that already did.
func (e *Executor) ExecuteAll(ctx context.Context, actions []Action) error {
	for _, a := range actions {
		if err := e.Execute(ctx, a); err != nil {
			return err
		}
	}
	return nil
}
