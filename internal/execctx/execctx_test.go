// SPDX-License-Identifier: MPL-2.0

package execctx

import (
	"errors"
	"fmt"
	goruntime "runtime"
	"strings"
	"testing"
)

func TestStack_PushPop(t *testing.T) {
	s := NewStack()

	s.Push(Venv{Path: "venv/build"})
	if s.Depth() != 1 {
		t.Fatalf("Depth() after Push = %d, want 1", s.Depth())
	}

	c, err := s.Pop()
	if err != nil {
		t.Fatalf("Pop() unexpected error: %v", err)
	}
	if v, ok := c.(Venv); !ok || v.Path != "venv/build" {
		t.Errorf("Pop() = %v, want the pushed frame", c)
	}
	if s.Depth() != 0 {
		t.Errorf("Depth() after Pop = %d, want 0", s.Depth())
	}
}

func TestStack_PopEmpty(t *testing.T) {
	s := NewStack()
	if _, err := s.Pop(); !errors.Is(err, ErrEmptyStack) {
		t.Errorf("Pop() on empty stack error = %v, want ErrEmptyStack", err)
	}
}

func TestStack_ActiveInnermostWins(t *testing.T) {
	s := NewStack()

	if _, ok := s.Active(); ok {
		t.Error("Active() on empty stack reported an active context")
	}

	s.Push(Venv{Path: "outer"})
	s.Push(Venv{Path: "inner"})

	c, ok := s.Active()
	if !ok {
		t.Fatal("Active() = none, want the innermost frame")
	}
	if v := c.(Venv); v.Path != "inner" {
		t.Errorf("Active() = %v, want the innermost frame", v)
	}
}

func TestStack_With(t *testing.T) {
	t.Run("balances the stack on normal exit", func(t *testing.T) {
		s := NewStack()
		s.Push(Venv{Path: "outer"})
		before := s.Depth()

		var seen Context
		err := s.With(Venv{Path: "inner"}, func() error {
			seen, _ = s.Active()
			return nil
		})
		if err != nil {
			t.Fatalf("With() unexpected error: %v", err)
		}
		if v := seen.(Venv); v.Path != "inner" {
			t.Errorf("active context inside block = %v, want the entered frame", seen)
		}
		if s.Depth() != before {
			t.Errorf("Depth() after block = %d, want %d", s.Depth(), before)
		}
	})

	t.Run("pops and propagates the original error on failure", func(t *testing.T) {
		s := NewStack()
		boom := fmt.Errorf("activation script missing")

		err := s.With(Venv{Path: "venv"}, func() error { return boom })
		if !errors.Is(err, boom) {
			t.Errorf("With() error = %v, want the block's original error", err)
		}
		if s.Depth() != 0 {
			t.Errorf("Depth() after failing block = %d, want 0", s.Depth())
		}
	})
}

func TestVenv_ActivationCommand(t *testing.T) {
	v := Venv{Path: "venv/build"}
	got := v.ActivationCommand()

	if goruntime.GOOS == "windows" {
		if !strings.Contains(got, "Scripts") || !strings.Contains(got, "activate.bat") {
			t.Errorf("ActivationCommand() = %q, want the Scripts\\activate.bat form", got)
		}
		return
	}
	if !strings.HasPrefix(got, ". ") || !strings.Contains(got, "bin/activate") {
		t.Errorf("ActivationCommand() = %q, want the sourced bin/activate form", got)
	}
}
