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

package text

import (
	"strings"
	"unicode/utf8"

	"github.com/walteh/renamer/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidBounds is returned when substring bounds do not fit the current name
var ErrInvalidBounds = errors.Base("substring bounds out of range")

// 🪜 Step identifies one of the transformation steps
type Step int

const (
	StepReplace Step = iota
	StepSubstring
	StepTrim
	StepCase
)

// String returns a string representation of Step
func (s Step) String() string {
	switch s {
	case StepReplace:
		return "replace"
	case StepSubstring:
		return "substring"
	case StepTrim:
		return "trim"
	case StepCase:
		return "case"
	default:
		return "unknown"
	}
}

// 📋 Result describes what the transformer did to a name
type Result struct {
	Original     string // Base name before any step ran
	Name         string // Base name after all enabled steps ran
	Changed      []Step // Steps that changed the name, in order
	Replacements int    // Occurrences replaced by the literal replace step
}

// WasModified reports whether any step changed the name
func (r *Result) WasModified() bool {
	return r.Original != r.Name
}

// NameTransformer applies replace, substring, trim and case, in that order
type NameTransformer struct{}

// NewNameTransformer creates a new NameTransformer
func NewNameTransformer() *NameTransformer {
	return &NameTransformer{}
}

// Transform runs every step enabled in cfg over a base name.
// Each step sees the output of the previous one. The extension is never
// passed in here so it cannot be touched.
func (t *NameTransformer) Transform(name string, cfg *config.BatchConfiguration) (*Result, error) {
	result := &Result{
		Original: name,
		Name:     name,
	}

	apply := func(step Step, next string) {
		if next != result.Name {
			result.Changed = append(result.Changed, step)
		}
		result.Name = next
	}

	if cfg.ReplaceEnabled() {
		result.Replacements = strings.Count(result.Name, cfg.Search())
		apply(StepReplace, strings.ReplaceAll(result.Name, cfg.Search(), cfg.Replacement()))
	}

	if cfg.SubstringEnabled() {
		next, err := substring(result.Name, cfg)
		if err != nil {
			return nil, err
		}
		apply(StepSubstring, next)
	}

	if cfg.Trim() {
		apply(StepTrim, strings.TrimSpace(result.Name))
	}

	if cfg.CaseMode() == config.CaseForceUpper {
		apply(StepCase, strings.ToUpper(result.Name))
	}

	return result, nil
}

// substring extracts [from, to) counted in runes. A missing to runs to the
// end of the name. Only called when from is set.
func substring(name string, cfg *config.BatchConfiguration) (string, error) {
	from, _, to, hasTo := cfg.Bounds()
	length := utf8.RuneCountInString(name)
	if !hasTo {
		to = length
	}

	if from < 0 || from > to || to > length {
		return "", errors.Errorf("%w: from=%d to=%d length=%d", ErrInvalidBounds, from, to, length)
	}

	runes := []rune(name)
	return string(runes[from:to]), nil
}
