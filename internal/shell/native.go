// SPDX-License-Identifier: MPL-2.0

package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// NativeRunner executes commands using the system's default shell.
type NativeRunner struct {
	// Shell overrides the default shell.
	Shell string
	// ShellArgs are arguments passed to the shell before the command.
	ShellArgs []string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NativeOption configures a NativeRunner.
type NativeOption func(*NativeRunner)

// WithShell overrides the shell binary used to run commands.
func WithShell(shell string) NativeOption {
	return func(r *NativeRunner) { r.Shell = shell }
}

// WithShellArgs overrides the arguments passed to the shell before the
// command string.
func WithShellArgs(args ...string) NativeOption {
	return func(r *NativeRunner) { r.ShellArgs = args }
}

// WithNativeIO redirects the command's standard streams.
func WithNativeIO(stdin io.Reader, stdout, stderr io.Writer) NativeOption {
	return func(r *NativeRunner) {
		r.stdin = stdin
		r.stdout = stdout
		r.stderr = stderr
	}
}

// NewNativeRunner creates a native runner wired to the process streams.
func NewNativeRunner(opts ...NativeOption) *NativeRunner {
	r := &NativeRunner{
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
func (r *NativeRunner) Name() string { return "native" }

// Available returns whether a usable shell exists on the host.
func (r *NativeRunner) Available() bool {
	_, err := r.getShell()
	return err == nil
}

// Run executes command through the system shell and blocks until it exits.
func (r *NativeRunner) Run(ctx context.Context, command string) *Result {
	shell, err := r.getShell()
	if err != nil {
		return &Result{ExitCode: 1, Error: err}
	}

	args := append(r.getShellArgs(shell), command)
	cmd := exec.CommandContext(ctx, shell, args...)
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return &Result{ExitCode: exitErr.ExitCode()}
		}
		return &Result{ExitCode: 1, Error: fmt.Errorf("failed to execute command: %w", err)}
	}
	return &Result{ExitCode: 0}
}

// getShell determines which shell to use.
func (r *NativeRunner) getShell() (string, error) {
	if r.Shell != "" {
		return r.Shell, nil
	}

	switch runtime.GOOS {
	case "windows":
		if pwsh, err := exec.LookPath("pwsh"); err == nil {
			return pwsh, nil
		}
		if ps, err := exec.LookPath("powershell"); err == nil {
			return ps, nil
		}
		return exec.LookPath("cmd")
	default:
		if shell := os.Getenv("SHELL"); shell != "" {
			return shell, nil
		}
		if bash, err := exec.LookPath("bash"); err == nil {
			return bash, nil
		}
		if sh, err := exec.LookPath("sh"); err == nil {
			return sh, nil
		}
		return "", fmt.Errorf("no shell found")
	}
}

// getShellArgs returns the arguments to pass to the shell.
func (r *NativeRunner) getShellArgs(shell string) []string {
	if len(r.ShellArgs) > 0 {
		return r.ShellArgs
	}

	base := strings.TrimSuffix(filepath.Base(shell), ".exe")
	switch base {
	case "cmd":
		return []string{"/C"}
	case "powershell", "pwsh":
		return []string{"-NoProfile", "-Command"}
	default:
		// Assume POSIX shell
		return []string{"-c"}
	}
}
