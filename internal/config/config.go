// SPDX-License-Identifier: MPL-2.0

// Package config loads pie's configuration.
//
// Configuration is optional: built-in defaults are overridden by an
// optional pie.toml in the working directory, which in turn is overridden
// by PIE_* environment variables (e.g. PIE_RUNNER=virtual).
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Runner kind constants for Config.Runner.
const (
	// RunnerNative executes commands with the system shell.
	RunnerNative = "native"
	// RunnerVirtual executes commands with the built-in mvdan/sh
	// interpreter.
	RunnerVirtual = "virtual"
)

// ConfigFileName is the optional config file (without extension) searched
// for in the working directory.
const ConfigFileName = "pie"

// Config holds the user-tunable settings.
type Config struct {
	// Runner selects how shell commands run: "native" or "virtual".
	Runner string `mapstructure:"runner"`
	// Shell overrides the shell binary used by the native runner.
	Shell string `mapstructure:"shell"`
	// TasksFile is the task-definition file loaded at startup.
	TasksFile string `mapstructure:"tasks_file"`
	// Verbose enables debug diagnostics.
	Verbose bool `mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Runner:    RunnerNative,
		TasksFile: "pietasks.cue",
	}
}

// Load reads the configuration from defaults, the optional config file,
// and PIE_* environment variables, in increasing priority. A missing
// config file is not an error.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("runner", defaults.Runner)
	v.SetDefault("shell", defaults.Shell)
	v.SetDefault("tasks_file", defaults.TasksFile)
	v.SetDefault("verbose", defaults.Verbose)

	v.SetConfigName(ConfigFileName)
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("PIE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate checks the decoded settings.
func (c *Config) validate() error {
	switch c.Runner {
	case RunnerNative, RunnerVirtual:
	default:
		return fmt.Errorf("invalid runner %q (valid: %s, %s)", c.Runner, RunnerNative, RunnerVirtual)
	}
	if strings.TrimSpace(c.TasksFile) == "" {
		return fmt.Errorf("tasks_file must not be empty")
	}
	return nil
}
