// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"pie-cli/internal/action"
	"pie-cli/internal/cliparse"
	"pie-cli/internal/config"
	"pie-cli/internal/execctx"
	"pie-cli/internal/issue"
	"pie-cli/internal/option"
	"pie-cli/internal/shell"
	"pie-cli/internal/task"
	"pie-cli/pkg/piefile"

	"github.com/charmbracelet/log"
)

// App wires pie's stores and executors for one invocation. It is the
// composition root for the CLI layer: the option store, task registry,
// context stack, and shell executor are built here and threaded explicitly
// through the run instead of living in package globals.
type App struct {
	Config   *config.Config
	Options  *option.Store
	Registry *task.Registry
	Shell    *shell.Executor
	Executor *action.Executor
	Logger   *log.Logger
}

// newApp builds an App from the loaded configuration. stdout receives
// version/help output; shell commands inherit the process streams.
func newApp(cfg *config.Config, logger *log.Logger, stdout io.Writer) *App {
	options := option.NewStore()
	registry := task.NewRegistry()
	contexts := execctx.NewStack()
	sh := shell.NewExecutor(newRunner(cfg), contexts, logger)

	return &App{
		Config:   cfg,
		Options:  options,
		Registry: registry,
		Shell:    sh,
		Executor: &action.Executor{
			Options:  options,
			Registry: registry,
			Stdout:   stdout,
			Version:  Version,
			Logger:   logger,
		},
		Logger: logger,
	}
}

// newRunner selects the shell runner from configuration.
func newRunner(cfg *config.Config) shell.Runner {
	if cfg.Runner == config.RunnerVirtual {
		return shell.NewVirtualRunner()
	}
	var opts []shell.NativeOption
	if cfg.Shell != "" {
		opts = append(opts, shell.WithShell(cfg.Shell))
	}
	return shell.NewNativeRunner(opts...)
}

// ParseArgs converts argv into the action sequence.
func (a *App) ParseArgs(argv []string) ([]action.Action, error) {
	actions, err := cliparse.Parse(argv)
	if err != nil {
		return nil, issue.WrapWithOperation(err, "parse command line").
			Suggest("Run 'pie -h' to see the accepted argument forms")
	}
	return actions, nil
}

// Run loads the task-definition file and executes the action sequence.
// The file is loaded once per invocation, before the first action runs, so
// its registrations are visible to every RunTask. An empty command line
// shows help without touching the task file, so a broken file never gets
// in the way of `pie -h` semantics.
func (a *App) Run(ctx context.Context, actions []action.Action) error {
	if len(actions) == 0 {
		return a.Executor.Execute(ctx, action.ShowHelp{})
	}
	if err := a.loadTasks(); err != nil {
		return err
	}
	if err := a.Executor.ExecuteAll(ctx, actions); err != nil {
		return a.describeFailure(err)
	}
	return nil
}

// loadTasks parses the configured task-definition file and registers its
// script tasks. A missing file only means an empty registry; invoking a
// task then fails with the usual not-registered error.
func (a *App) loadTasks() error {
	path := a.Config.TasksFile

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			a.Logger.Debug("no task file found", "path", path)
			return nil
		}
		// The stat error already names the path.
		return issue.WrapWithOperation(err, "read task file")
	}

	pf, err := piefile.Parse(path)
	if err != nil {
		// Parse errors already carry the file name, so no Resource here.
		return issue.WrapWithOperation(err, "load task file").
			Suggest("Check the CUE syntax of " + path)
	}

	if err := action.LoadScriptTasks(a.Registry, a.Shell, pf); err != nil {
		return issue.WrapWithContext(err, "load task file", path)
	}

	a.Logger.Debug("loaded tasks", "path", path, "tasks", pf.TaskNames())
	return nil
}

// describeFailure adds user-facing context to an action execution error.
func (a *App) describeFailure(err error) error {
	var notFound *task.TaskNotFoundError
	if errors.As(err, &notFound) {
		wrapped := issue.WrapWithOperation(err, "run task")
		if names := a.Registry.Names(); len(names) > 0 {
			wrapped = wrapped.Suggest(fmt.Sprintf("Registered tasks: %v", names))
		} else {
			wrapped = wrapped.Suggest("Define the task in " + a.Config.TasksFile)
		}
		return wrapped
	}
	return err
}
