// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility helpers.
package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// IsWindows reports whether the current host is Windows.
func IsWindows() bool {
	return runtime.GOOS == Windows
}
