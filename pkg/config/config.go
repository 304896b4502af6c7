// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrInvalidOptions is returned when raw options can never form a valid batch
var ErrInvalidOptions = errors.Base("invalid options")

// 🔠 CaseMode selects the case conversion applied as the last transformation step
type CaseMode int

const (
	CaseUnspecified CaseMode = iota // No case mode was chosen
	CaseLeave                       // Leave the name as-is
	CaseForceUpper                  // Convert the name to uppercase
)

// String returns a string representation of CaseMode
func (m CaseMode) String() string {
	switch m {
	case CaseLeave:
		return "leave"
	case CaseForceUpper:
		return "upper"
	default:
		return "unspecified"
	}
}

// ParseCaseMode parses the textual form used by flags and profiles
func ParseCaseMode(s string) (CaseMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unspecified":
		return CaseUnspecified, nil
	case "leave", "none":
		return CaseLeave, nil
	case "upper":
		return CaseForceUpper, nil
	default:
		return CaseUnspecified, errors.Errorf("%w: unknown case mode %q", ErrInvalidOptions, s)
	}
}

// 📥 Options is the raw user input for a single run.
// Bounds are kept as text the way they arrive from the user; an empty
// string disables that bound.
type Options struct {
	Search          string
	Replace         string
	From            string
	To              string
	Trim            bool
	Case            string
	OutputDirectory string
	Copy            bool
	Overwrite       bool
}

// 📚 BatchConfiguration is the immutable snapshot of user intent for one run
type BatchConfiguration struct {
	search          string
	replacement     string
	from, to        int
	hasFrom, hasTo  bool
	trim            bool
	caseMode        CaseMode
	outputDirectory string
	copy            bool
	overwrite       bool
}

// 🏭 New builds a configuration from raw options.
// Bounds are only checked for being non-negative integers here; whether
// they fit a name is decided per file during transformation.
func New(opts Options) (*BatchConfiguration, error) {
	from, hasFrom, err := parseBound("from", opts.From)
	if err != nil {
		return nil, err
	}
	to, hasTo, err := parseBound("to", opts.To)
	if err != nil {
		return nil, err
	}
	caseMode, err := ParseCaseMode(opts.Case)
	if err != nil {
		return nil, err
	}

	out := strings.TrimSpace(opts.OutputDirectory)
	if out != "" {
		out = filepath.Clean(out)
	}

	return &BatchConfiguration{
		search:          opts.Search,
		replacement:     opts.Replace,
		from:            from,
		to:              to,
		hasFrom:         hasFrom,
		hasTo:           hasTo,
		trim:            opts.Trim,
		caseMode:        caseMode,
		outputDirectory: out,
		copy:            opts.Copy,
		overwrite:       opts.Overwrite,
	}, nil
}

func parseBound(name, raw string) (int, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, errors.Errorf("%w: %s index %q is not an integer", ErrInvalidOptions, name, raw)
	}
	if n < 0 {
		return 0, false, errors.Errorf("%w: %s index %d is negative", ErrInvalidOptions, name, n)
	}
	return n, true, nil
}

// FormatBound renders an optional integer bound in the raw Options form
func FormatBound(b *int) string {
	if b == nil {
		return ""
	}
	return strconv.Itoa(*b)
}

func (c *BatchConfiguration) Search() string       { return c.search }
func (c *BatchConfiguration) Replacement() string  { return c.replacement }
func (c *BatchConfiguration) ReplaceEnabled() bool { return c.search != "" }
func (c *BatchConfiguration) Trim() bool           { return c.trim }
func (c *BatchConfiguration) CaseMode() CaseMode   { return c.caseMode }
func (c *BatchConfiguration) Copy() bool           { return c.copy }
func (c *BatchConfiguration) Overwrite() bool      { return c.overwrite }

// OutputDirectory returns the configured directory, empty meaning "next to the source"
func (c *BatchConfiguration) OutputDirectory() string { return c.outputDirectory }

// Bounds returns the substring bounds and which of them were set
func (c *BatchConfiguration) Bounds() (from int, hasFrom bool, to int, hasTo bool) {
	return c.from, c.hasFrom, c.to, c.hasTo
}

// SubstringEnabled reports whether the substring step runs. It needs a from
// bound; a to bound on its own leaves names alone.
func (c *BatchConfiguration) SubstringEnabled() bool { return c.hasFrom }

// ResolveOutputDirectory returns the directory a file from sourceDir is written to
func (c *BatchConfiguration) ResolveOutputDirectory(sourceDir string) string {
	if c.outputDirectory == "" {
		return sourceDir
	}
	return c.outputDirectory
}

// 📝 String returns a string representation of the config
func (c *BatchConfiguration) String() string {
	var parts []string
	if c.ReplaceEnabled() {
		parts = append(parts, fmt.Sprintf("replace %q->%q", c.search, c.replacement))
	}
	if c.SubstringEnabled() {
		from, to := strconv.Itoa(c.from), "end"
		if c.hasTo {
			to = strconv.Itoa(c.to)
		}
		parts = append(parts, fmt.Sprintf("substring [%s:%s]", from, to))
	}
	if c.trim {
		parts = append(parts, "trim")
	}
	if c.caseMode == CaseForceUpper {
		parts = append(parts, "upper")
	}
	if len(parts) == 0 {
		parts = append(parts, "no transformations")
	}

	mode := "move"
	if c.copy {
		mode = "copy"
	}
	if c.overwrite {
		mode += "+overwrite"
	}
	dest := c.outputDirectory
	if dest == "" {
		dest = "<source directory>"
	}
	return fmt.Sprintf("%s (%s) -> %s", strings.Join(parts, ", "), mode, dest)
}
