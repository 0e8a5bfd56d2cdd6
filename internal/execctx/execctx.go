// SPDX-License-Identifier: MPL-2.0

// Package execctx tracks the execution contexts a shell command runs within.
//
// A context is a scoping directive such as "inside the virtual environment
// at this path". Contexts nest lexically and are tracked on a strict LIFO
// stack; the innermost frame decides how the shell executor prefixes the
// commands it runs.
package execctx

import (
	"errors"
	"fmt"
	"path/filepath"

	"pie-cli/internal/platform"
)

// ErrEmptyStack is returned by Pop when no frame is active.
var ErrEmptyStack = errors.New("execution context stack is empty")

type (
	// Context is an active scoping directive. ActivationCommand returns the
	// shell snippet that enters the context, without a trailing separator;
	// the shell executor joins it to the actual command with " && ".
	Context interface {
		fmt.Stringer
		ActivationCommand() string
	}

	// Stack is the ordered set of entered contexts, innermost last.
	// Not safe for concurrent use.
	Stack struct {
		frames []Context
	}
)

// NewStack creates an empty context stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push enters c, making it the innermost context.
func (s *Stack) Push(c Context) {
	s.frames = append(s.frames, c)
}

// Pop leaves the innermost context and returns it.
func (s *Stack) Pop() (Context, error) {
	if len(s.frames) == 0 {
		return nil, ErrEmptyStack
	}
	c := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return c, nil
}

// Active returns the innermost context, if any.
func (s *Stack) Active() (Context, bool) {
	if len(s.frames) == 0 {
		return nil, false
	}
	return s.frames[len(s.frames)-1], true
}

// Depth returns the number of entered contexts.
func (s *Stack) Depth() int { return len(s.frames) }

// With runs fn with c entered, popping exactly one frame on every exit
// path. The error returned by fn is propagated unchanged; With never
// substitutes a failure of its own for the enclosed block's.
func (s *Stack) With(c Context, fn func() error) error {
	s.Push(c)
	defer func() {
		_, _ = s.Pop()
	}()
	return fn()
}

// Venv is a virtual-environment context: commands run inside it are
// prefixed with the environment's activation command.
type Venv struct {
	// Path is the root directory of the virtual environment.
	Path string
}

// ActivationCommand returns the snippet that activates the environment,
// using the platform's activation script location.
func (v Venv) ActivationCommand() string {
	if platform.IsWindows() {
		return filepath.Join(v.Path, "Scripts", "activate.bat")
	}
	return ". " + filepath.Join(v.Path, "bin", "activate")
}

// String implements fmt.Stringer.
func (v Venv) String() string {
	return fmt.Sprintf("venv(%s)", v.Path)
}
