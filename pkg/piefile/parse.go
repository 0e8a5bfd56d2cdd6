// SPDX-License-Identifier: MPL-2.0

package piefile

import (
	_ "embed"
	"fmt"
	"os"

	"pie-cli/internal/cueutil"
)

//go:embed piefile_schema.cue
var piefileSchema []byte

// Parse reads and parses the task-definition file at path.
func Parse(path string) (*Piefile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task file at %s: %w", path, err)
	}
	return ParseBytes(data, path)
}

// ParseBytes parses task-definition content from bytes. path is used for
// error messages and recorded as the file's origin.
func ParseBytes(data []byte, path string) (*Piefile, error) {
	pf, err := cueutil.ParseAndDecode[Piefile](piefileSchema, data, "#Piefile", path)
	if err != nil {
		return nil, err
	}
	pf.FilePath = path

	if err := pf.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pf, nil
}
