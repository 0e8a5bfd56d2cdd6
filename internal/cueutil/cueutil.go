// SPDX-License-Identifier: MPL-2.0

// Package cueutil implements the schema-unify-decode flow shared by every
// CUE file pie reads: compile the embedded schema, compile the user data,
// unify the two, validate, and decode into a Go struct.
package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// MaxFileSize bounds the size of user-provided CUE files. Anything larger
// is rejected before compilation.
const MaxFileSize int64 = 1 << 20

// ParseAndDecode compiles schema, unifies it with the user data, validates
// the result, and decodes it into T. schemaPath names the root definition
// to unify against (e.g. "#Piefile"). filename is used in error messages.
func ParseAndDecode[T any](schema, data []byte, schemaPath, filename string) (*T, error) {
	if filename == "" {
		filename = "<input>"
	}
	if int64(len(data)) > MaxFileSize {
		return nil, fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), MaxFileSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	schemaRoot := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if schemaRoot.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", schemaPath, schemaRoot.Err())
	}

	unified := schemaRoot.Unify(userValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, FormatError(err, filename)
	}

	var result T
	if err := unified.Decode(&result); err != nil {
		return nil, FormatError(err, filename)
	}
	return &result, nil
}

// FormatError formats a CUE error with JSON-path prefixes, producing
// messages like "pietasks.cue: tasks.build.script: incomplete value string".
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrs := cueerrors.Errors(err)
	if len(cueErrs) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	var lines []string
	for _, e := range cueErrs {
		pathStr := formatPath(cueerrors.Path(e))
		msg := e.Error()

		// CUE sometimes includes the path in the message itself
		if pathStr != "" && strings.HasPrefix(msg, pathStr) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, pathStr), ":"))
		}

		if pathStr != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", pathStr, msg))
		} else {
			lines = append(lines, msg)
		}
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filePath, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
}

// formatPath converts a CUE error path (["tasks", "build", "script"]) to
// JSON-path notation ("tasks.build.script"), rendering numeric elements as
// array indices.
func formatPath(path []string) string {
	if len(path) == 0 {
		return ""
	}

	var b strings.Builder
	for i, part := range path {
		isIndex := part != ""
		for _, c := range part {
			if c < '0' || c > '9' {
				isIndex = false
				break
			}
		}

		switch {
		case isIndex && i > 0:
			b.WriteString("[")
			b.WriteString(part)
			b.WriteString("]")
		case i > 0:
			b.WriteString(".")
			b.WriteString(part)
		default:
			b.WriteString(part)
		}
	}
	return b.String()
}
