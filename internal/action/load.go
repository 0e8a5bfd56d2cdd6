// SPDX-License-Identifier: MPL-2.0

package action

import (
	"fmt"
	"strings"

	"pie-cli/internal/shell"
	"pie-cli/internal/task"
	"pie-cli/pkg/piefile"
)

// OptionEnvPrefix is prepended to option names when they are exported
// into a script task's environment: -o env=prod becomes $PIE_OPT_env.
const OptionEnvPrefix = "PIE_OPT_"

// LoadScriptTasks registers every task defined in pf into reg, executing
// through sh. Scripts are syntax-checked up front so a malformed script
// fails the load rather than its first invocation.
//
// Positional arguments are exposed to the script as $1, $2, ... by
// prepending a `set --` prologue, and options that were set before the
// invocation are exported as PIE_OPT_<name> variables. A task that
// declares a venv runs its script with that environment's context
// entered, so the command is prefixed with the activation snippet.
//
// The script's exit status is not inspected: a non-zero exit does not fail
// the task. Only a failure to run the script at all is reported.
func LoadScriptTasks(reg *task.Registry, sh *shell.Executor, pf *piefile.Piefile) error {
	for name, def := range pf.Tasks {
		if err := shell.ValidateSyntax(def.Script); err != nil {
			return fmt.Errorf("task %q: %w", name, err)
		}

		params := make([]task.ParameterSpec, 0, len(def.Params))
		for _, p := range def.Params {
			params = append(params, task.ParameterSpec{Name: p.Name, Type: p.Type})
		}

		reg.Register(task.Task{
			Name:        name,
			Description: def.Description,
			Params:      params,
			Fn:          scriptFunc(sh, def),
		})
	}
	return nil
}

// scriptFunc builds the task implementation for one script task.
func scriptFunc(sh *shell.Executor, def piefile.Task) task.Func {
	return func(inv task.Invocation) error {
		command, err := scriptCommand(def.Script, inv)
		if err != nil {
			return err
		}

		run := func() error {
			return sh.Run(inv.Context, command).Error
		}
		if def.Venv != "" {
			return sh.Venv(def.Venv, run)
		}
		return run()
	}
}

// scriptCommand builds the prologue that bridges the invocation into the
// script: options become PIE_OPT_<name> exports and positional arguments
// are mapped onto $1, $2, ... via `set --`.
func scriptCommand(script string, inv task.Invocation) (string, error) {
	var prologue []string

	if inv.Options != nil {
		for _, name := range inv.Options.Names() {
			if !validEnvName(name) {
				continue
			}
			value, err := inv.Options.Get(name)
			if err != nil {
				return "", err
			}
			q, err := shell.Quote(value)
			if err != nil {
				return "", err
			}
			prologue = append(prologue, "export "+OptionEnvPrefix+name+"="+q)
		}
	}

	if len(inv.Args) > 0 {
		quoted := make([]string, 0, len(inv.Args))
		for _, arg := range inv.Args {
			q, err := shell.Quote(arg)
			if err != nil {
				return "", err
			}
			quoted = append(quoted, q)
		}
		prologue = append(prologue, "set -- "+strings.Join(quoted, " "))
	}

	if len(prologue) == 0 {
		return script, nil
	}
	return strings.Join(prologue, "\n") + "\n" + script, nil
}

// validEnvName reports whether name can be used as a shell variable name.
// Option names are user input, so anything else is silently skipped rather
// than producing a broken export statement.
func validEnvName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
