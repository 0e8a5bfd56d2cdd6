// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"pie-cli/internal/config"
	"pie-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "0.0.1"

	// rootCmd is the only command: pie has no subcommands, every token on
	// the command line belongs to the action grammar.
	rootCmd = &cobra.Command{
		Use:   "pie [-v] [-h] [-b] [-o name=value]... [task[(args...)]]...",
		Short: "A minimal task runner",
		Long: TitleStyle.Render("pie") + SubtitleStyle.Render(" - a minimal task runner") + `

pie executes tasks registered in a pietasks.cue file in the current
directory. Tasks run shell commands, optionally inside a virtual
environment, and can read options set on the command line with -o.

` + SubtitleStyle.Render("Examples:") + `
  pie build                 Run the 'build' task
  pie "build(linux,arm64)"  Run 'build' with positional arguments
  pie -o env=prod deploy    Set option 'env', then run 'deploy'`,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE:               runRoot,
	}
)

// versionString returns a formatted version string for display.
func versionString() string {
	return fmt.Sprintf("pie v%s", Version)
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// runRoot parses the raw argument list and executes the resulting actions
// strictly left to right, stopping at the first failure.
func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		// A broken config never blocks the run; fall back to defaults.
		fmt.Fprintln(cmd.ErrOrStderr(), WarningStyle.Render("Warning: ")+err.Error())
		cfg = config.DefaultConfig()
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	app := newApp(cfg, logger, cmd.OutOrStdout())

	actions, err := app.ParseArgs(append([]string{"pie"}, args...))
	if err != nil {
		return fail(cmd.ErrOrStderr(), cfg.Verbose, err)
	}

	if err := app.Run(cmd.Context(), actions); err != nil {
		return fail(cmd.ErrOrStderr(), cfg.Verbose, err)
	}
	return nil
}

// fail renders err for the user and converts it into a non-zero exit.
func fail(stderr io.Writer, verbose bool, err error) error {
	fmt.Fprintln(stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	return &ExitError{Code: 1}
}

// formatErrorForDisplay formats an error for user display. ActionableError
// values render with their suggestions; verbose mode shows the full chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// newLogger builds the diagnostic logger. Non-verbose runs only surface
// warnings and errors.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		Prefix:          "pie",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}
