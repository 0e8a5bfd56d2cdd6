// SPDX-License-Identifier: MPL-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pie-cli/internal/action"
	"pie-cli/internal/config"
	"pie-cli/internal/task"

	"github.com/charmbracelet/log"
)

func testApp(t *testing.T, cfg *config.Config) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return newApp(cfg, log.New(io.Discard), &out), &out
}

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() failed: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%q) failed: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("Chdir back failed: %v", err)
		}
	})
	return dir
}

func TestApp_ParseArgs(t *testing.T) {
	app, _ := testApp(t, config.DefaultConfig())

	t.Run("empty command line parses to no actions", func(t *testing.T) {
		actions, err := app.ParseArgs([]string{"pie"})
		if err != nil {
			t.Fatalf("ParseArgs() unexpected error: %v", err)
		}
		if len(actions) != 0 {
			t.Fatalf("ParseArgs() produced %d actions, want 0", len(actions))
		}
	})

	t.Run("parse errors carry a usage suggestion", func(t *testing.T) {
		_, err := app.ParseArgs([]string{"pie", "(bad"})
		if err == nil {
			t.Fatal("ParseArgs() = nil error for malformed token, want failure")
		}
		if !strings.Contains(formatErrorForDisplay(err, false), "pie -h") {
			t.Errorf("error display %q does not point at the help flag", formatErrorForDisplay(err, false))
		}
	})
}

func TestApp_Run(t *testing.T) {
	t.Run("executes script tasks from the task file", func(t *testing.T) {
		dir := inTempDir(t)
		taskfile := `tasks: mark: {script: "echo ran > marker.txt"}`
		if err := os.WriteFile("pietasks.cue", []byte(taskfile), 0o644); err != nil {
			t.Fatalf("WriteFile() failed: %v", err)
		}

		cfg := config.DefaultConfig()
		cfg.Runner = config.RunnerVirtual
		app, _ := testApp(t, cfg)

		err := app.Run(context.Background(), []action.Action{
			action.RunTask{Name: "mark", Args: []string{}, Kwargs: map[string]string{}},
		})
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}

		if _, err := os.Stat(filepath.Join(dir, "marker.txt")); err != nil {
			t.Errorf("script task did not run: %v", err)
		}
	})

	t.Run("missing task file leaves the registry empty", func(t *testing.T) {
		inTempDir(t)
		app, _ := testApp(t, config.DefaultConfig())

		err := app.Run(context.Background(), []action.Action{
			action.RunTask{Name: "bogus", Kwargs: map[string]string{}},
		})
		if !errors.Is(err, task.ErrTaskNotFound) {
			t.Errorf("Run() error = %v, want ErrTaskNotFound", err)
		}
	})

	t.Run("invalid task file is fatal", func(t *testing.T) {
		inTempDir(t)
		if err := os.WriteFile("pietasks.cue", []byte(`tasks: {`), 0o644); err != nil {
			t.Fatalf("WriteFile() failed: %v", err)
		}
		app, _ := testApp(t, config.DefaultConfig())

		err := app.Run(context.Background(), []action.Action{action.ShowVersion{}})
		if err == nil {
			t.Fatal("Run() = nil error with a malformed task file, want load failure")
		}
	})

	t.Run("load errors name the task file exactly once", func(t *testing.T) {
		inTempDir(t)
		if err := os.WriteFile("pietasks.cue", []byte(`tasks: {`), 0o644); err != nil {
			t.Fatalf("WriteFile() failed: %v", err)
		}
		app, _ := testApp(t, config.DefaultConfig())

		err := app.Run(context.Background(), []action.Action{action.ShowVersion{}})
		if err == nil {
			t.Fatal("Run() = nil error with a malformed task file, want load failure")
		}
		display := formatErrorForDisplay(err, false)
		if got := strings.Count(display, "pietasks.cue"); got != 1 {
			t.Errorf("error display %q names the file %d times, want 1", display, got)
		}
	})

	t.Run("no actions shows help without loading the task file", func(t *testing.T) {
		inTempDir(t)
		if err := os.WriteFile("pietasks.cue", []byte(`tasks: {`), 0o644); err != nil {
			t.Fatalf("WriteFile() failed: %v", err)
		}
		app, out := testApp(t, config.DefaultConfig())

		if err := app.Run(context.Background(), nil); err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "Usage:") {
			t.Errorf("stdout = %q, want the usage text", out.String())
		}
	})

	t.Run("options set before a task are visible to built-in tasks", func(t *testing.T) {
		inTempDir(t)
		app, _ := testApp(t, config.DefaultConfig())

		var seen string
		app.Registry.RegisterFunc("show", func(inv task.Invocation) error {
			var err error
			seen, err = inv.Options.Get("env")
			return err
		})

		err := app.Run(context.Background(), []action.Action{
			action.SetOption{Name: "env", Value: "prod"},
			action.RunTask{Name: "show", Kwargs: map[string]string{}},
		})
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if seen != "prod" {
			t.Errorf("task saw option %q, want %q", seen, "prod")
		}
	})

	t.Run("options set before a task are visible to script tasks", func(t *testing.T) {
		dir := inTempDir(t)
		taskfile := `tasks: show: {script: "echo \"$PIE_OPT_env\" > option.txt"}`
		if err := os.WriteFile("pietasks.cue", []byte(taskfile), 0o644); err != nil {
			t.Fatalf("WriteFile() failed: %v", err)
		}

		cfg := config.DefaultConfig()
		cfg.Runner = config.RunnerVirtual
		app, _ := testApp(t, cfg)

		err := app.Run(context.Background(), []action.Action{
			action.SetOption{Name: "env", Value: "prod"},
			action.RunTask{Name: "show", Args: []string{}, Kwargs: map[string]string{}},
		})
		if err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}

		got, err := os.ReadFile(filepath.Join(dir, "option.txt"))
		if err != nil {
			t.Fatalf("script task did not run: %v", err)
		}
		if strings.TrimSpace(string(got)) != "prod" {
			t.Errorf("script saw option %q, want %q", strings.TrimSpace(string(got)), "prod")
		}
	})

	t.Run("version action writes to stdout", func(t *testing.T) {
		inTempDir(t)
		app, out := testApp(t, config.DefaultConfig())

		if err := app.Run(context.Background(), []action.Action{action.ShowVersion{}}); err != nil {
			t.Fatalf("Run() unexpected error: %v", err)
		}
		if got := out.String(); got != "pie v"+Version+"\n" {
			t.Errorf("stdout = %q, want the version line", got)
		}
	})
}

func TestApp_DescribeFailure(t *testing.T) {
	app, _ := testApp(t, config.DefaultConfig())
	app.Registry.RegisterFunc("build", func(task.Invocation) error { return nil })

	err := app.describeFailure(&task.TaskNotFoundError{Name: "bogus"})
	display := formatErrorForDisplay(err, false)
	if !strings.Contains(display, "build") {
		t.Errorf("failure display %q does not list the registered tasks", display)
	}
}
