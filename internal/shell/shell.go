// SPDX-License-Identifier: MPL-2.0

// Package shell executes strings as shell commands.
//
// Two runners are provided: NativeRunner uses the system's default shell via
// os/exec, VirtualRunner interprets the command in-process with mvdan/sh.
// The Executor wraps a runner and applies the active execution context, if
// any, by prefixing the command with the context's activation snippet.
package shell

import (
	"context"
	"io"

	"pie-cli/internal/execctx"

	"github.com/charmbracelet/log"
)

type (
	// Result contains the outcome of one command execution. A non-zero exit
	// code is not an error; Error is set only when the command could not be
	// run at all.
	Result struct {
		// ExitCode is the exit code of the command.
		ExitCode int
		// Error contains any failure to launch or interpret the command.
		Error error
	}

	// Runner runs a command string synchronously and reports its outcome.
	Runner interface {
		// Name returns the runner name.
		Name() string
		// Run executes command and blocks until it completes.
		Run(ctx context.Context, command string) *Result
		// Available returns whether this runner can be used on the host.
		Available() bool
	}

	// Executor is the shell entry point the rest of pie uses. It resolves
	// the active execution context before delegating to the runner.
	Executor struct {
		runner   Runner
		contexts *execctx.Stack
		logger   *log.Logger
	}
)

// Succeeded reports whether the command ran and exited zero.
func (r *Result) Succeeded() bool {
	return r.Error == nil && r.ExitCode == 0
}

// NewExecutor creates an executor that runs commands with runner, scoped by
// the given context stack. A nil logger disables diagnostics.
func NewExecutor(runner Runner, contexts *execctx.Stack, logger *log.Logger) *Executor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Executor{runner: runner, contexts: contexts, logger: logger}
}

// Contexts returns the execution context stack commands are scoped by.
func (e *Executor) Contexts() *execctx.Stack {
	return e.contexts
}

// Run executes command through the configured runner. When an execution
// context is active, the command is prefixed with the innermost context's
// activation snippet so it runs inside that context. The result is returned
// for callers that want the exit status; a non-zero exit is not an error.
func (e *Executor) Run(ctx context.Context, command string) *Result {
	if active, ok := e.contexts.Active(); ok {
		command = active.ActivationCommand() + " && " + command
		e.logger.Debug("running scoped command", "context", active.String(), "command", command)
	} else {
		e.logger.Debug("running command", "runner", e.runner.Name(), "command", command)
	}

	res := e.runner.Run(ctx, command)
	if res.Error != nil {
		e.logger.Debug("command failed to run", "command", command, "err", res.Error)
	} else if res.ExitCode != 0 {
		e.logger.Debug("command exited non-zero", "command", command, "exit_code", res.ExitCode)
	}
	return res
}

// Pip runs a pip command through the Python interpreter, e.g.
// Pip(ctx, "install -r requirements.txt").
func (e *Executor) Pip(ctx context.Context, args string) *Result {
	return e.Run(ctx, "python -m pip "+args)
}

// Venv runs fn with the virtual environment at path entered, so every
// command fn executes through this executor is prefixed with the
// environment's activation command. The frame is popped on every exit path
// and fn's error is returned unchanged.
func (e *Executor) Venv(path string, fn func() error) error {
	return e.contexts.With(execctx.Venv{Path: path}, fn)
}
