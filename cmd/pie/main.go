// SPDX-License-Identifier: MPL-2.0

// pie is a minimal command-line task runner: register named tasks in a
// pietasks.cue file (or in Go code), then invoke them from the command line
// with positional arguments, set options, and run shell commands inside
// virtual-environment contexts.
package main

func main() {
	Execute()
}
