// SPDX-License-Identifier: MPL-2.0

package piefile

import (
	"errors"
	"strings"
	"testing"
)

const validFile = `
description: "demo project tasks"

tasks: {
	build: {
		description: "build the project"
		script:      "go build ./..."
	}
	deploy: {
		script: "scripts/deploy.sh $1"
		venv:   "venv/deploy"
		params: [{name: "target"}, {name: "count", type: "int"}]
	}
}
`

func TestParseBytes(t *testing.T) {
	t.Run("parses a valid file", func(t *testing.T) {
		pf, err := ParseBytes([]byte(validFile), "pietasks.cue")
		if err != nil {
			t.Fatalf("ParseBytes() unexpected error: %v", err)
		}

		if pf.Description != "demo project tasks" {
			t.Errorf("Description = %q, want %q", pf.Description, "demo project tasks")
		}
		if pf.FilePath != "pietasks.cue" {
			t.Errorf("FilePath = %q, want %q", pf.FilePath, "pietasks.cue")
		}
		if len(pf.Tasks) != 2 {
			t.Fatalf("len(Tasks) = %d, want 2", len(pf.Tasks))
		}

		build := pf.Tasks["build"]
		if build.Script != "go build ./..." {
			t.Errorf("build.Script = %q, want %q", build.Script, "go build ./...")
		}

		deploy := pf.Tasks["deploy"]
		if deploy.Venv != "venv/deploy" {
			t.Errorf("deploy.Venv = %q, want %q", deploy.Venv, "venv/deploy")
		}
		if len(deploy.Params) != 2 {
			t.Fatalf("len(deploy.Params) = %d, want 2", len(deploy.Params))
		}
		if deploy.Params[0].Name != "target" || deploy.Params[0].Type != "string" {
			t.Errorf("deploy.Params[0] = %+v, want {target string} (type defaults)", deploy.Params[0])
		}
		if deploy.Params[1].Type != "int" {
			t.Errorf("deploy.Params[1].Type = %q, want %q", deploy.Params[1].Type, "int")
		}
	})

	t.Run("rejects a task without a script", func(t *testing.T) {
		_, err := ParseBytes([]byte(`tasks: broken: {description: "no script"}`), "pietasks.cue")
		if err == nil {
			t.Fatal("ParseBytes() = nil error for script-less task, want validation failure")
		}
		if !strings.Contains(err.Error(), "pietasks.cue") {
			t.Errorf("error %q does not name the file", err)
		}
	})

	t.Run("rejects an empty script", func(t *testing.T) {
		_, err := ParseBytes([]byte(`tasks: broken: {script: ""}`), "pietasks.cue")
		if err == nil {
			t.Fatal("ParseBytes() = nil error for empty script, want validation failure")
		}
	})

	t.Run("rejects parenthesized task names", func(t *testing.T) {
		_, err := ParseBytes([]byte(`tasks: "odd(name)": {script: "true"}`), "pietasks.cue")
		if err == nil {
			t.Fatal("ParseBytes() = nil error for parenthesized name, want validation failure")
		}
		if !errors.Is(err, ErrInvalidTaskName) {
			t.Errorf("error = %v, want ErrInvalidTaskName", err)
		}
	})

	t.Run("rejects malformed CUE", func(t *testing.T) {
		if _, err := ParseBytes([]byte(`tasks: {`), "pietasks.cue"); err == nil {
			t.Fatal("ParseBytes() = nil error for malformed CUE, want compile failure")
		}
	})
}

func TestPiefile_TaskNames(t *testing.T) {
	pf, err := ParseBytes([]byte(validFile), "pietasks.cue")
	if err != nil {
		t.Fatalf("ParseBytes() unexpected error: %v", err)
	}

	names := pf.TaskNames()
	if len(names) != 2 || names[0] != "build" || names[1] != "deploy" {
		t.Errorf("TaskNames() = %v, want [build deploy]", names)
	}
}
