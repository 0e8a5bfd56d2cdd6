// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRunner executes commands with the built-in POSIX shell
// interpreter (mvdan/sh). It needs no shell binary on the host, which also
// makes command behavior identical across platforms.
type VirtualRunner struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// VirtualOption configures a VirtualRunner.
type VirtualOption func(*VirtualRunner)

// WithVirtualIO redirects the interpreter's standard streams.
func WithVirtualIO(stdin io.Reader, stdout, stderr io.Writer) VirtualOption {
	return func(r *VirtualRunner) {
		r.stdin = stdin
		r.stdout = stdout
		r.stderr = stderr
	}
}

// NewVirtualRunner creates a virtual runner wired to the process streams.
func NewVirtualRunner(opts ...VirtualOption) *VirtualRunner {
	r := &VirtualRunner{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the runner name.
func (r *VirtualRunner) Name() string { return "virtual" }

// Available returns whether this runner is available. The interpreter is
// built in, so it always is.
func (r *VirtualRunner) Available() bool { return true }

// Run parses command as a shell program and interprets it in-process.
func (r *VirtualRunner) Run(ctx context.Context, command string) *Result {
	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "command")
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to parse command: %w", err)}
	}

	runner, err := interp.New(
		interp.StdIO(r.stdin, r.stdout, r.stderr),
	)
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to create interpreter: %w", err)}
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return &Result{ExitCode: int(exitStatus)}
		}
		return &Result{ExitCode: 1, Error: fmt.Errorf("command execution failed: %w", err)}
	}
	return &Result{ExitCode: 0}
}

// Quote returns arg as a single shell word that expands to exactly arg.
func Quote(arg string) (string, error) {
	quoted, err := syntax.Quote(arg, syntax.LangPOSIX)
	if err != nil {
		return "", fmt.Errorf("cannot quote %q for the shell: %w", arg, err)
	}
	return quoted, nil
}

// ValidateSyntax checks that script is a syntactically valid shell program
// without running it. Used when loading script tasks so malformed scripts
// fail at startup rather than on first invocation.
func ValidateSyntax(script string) error {
	if _, err := syntax.NewParser().Parse(strings.NewReader(script), "script"); err != nil {
		return fmt.Errorf("script syntax error: %w", err)
	}
	return nil
}
