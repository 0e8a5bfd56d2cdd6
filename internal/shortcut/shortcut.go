// SPDX-License-Identifier: MPL-2.0

// Package shortcut writes the platform-specific launcher script that
// re-invokes pie: pie.bat on Windows, a plain pie script elsewhere.
package shortcut

import (
	"fmt"
	"os"
	"path/filepath"

	"pie-cli/internal/platform"
)

// Write creates the launcher script in dir and returns its path. The
// script forwards all arguments to the pie binary that wrote it.
func Write(dir string) (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to determine executable path: %w", err)
	}
	return writeFor(dir, exe, platform.IsWindows())
}

// writeFor is the platform-parameterized implementation, split out for
// testing.
func writeFor(dir, exe string, windows bool) (string, error) {
	var path, content string
	var mode os.FileMode

	if windows {
		path = filepath.Join(dir, "pie.bat")
		content = fmt.Sprintf("@echo off\r\n\"%s\" %%*\r\n", exe)
		mode = 0o644
	} else {
		path = filepath.Join(dir, "pie")
		content = fmt.Sprintf("#!/bin/sh\nexec \"%s\" \"$@\"\n", exe)
		mode = 0o755
	}

	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return "", fmt.Errorf("failed to write shortcut %s: %w", path, err)
	}
	return path, nil
}
