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
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for profile parsers
type Parser interface {
	// 📝 Parse parses the profile from bytes
	Parse(ctx context.Context, data []byte) (*Profile, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 ReplaceArgs is the literal replace pair
type ReplaceArgs struct {
	Search string `json:"search" yaml:"search"`
	With   string `json:"with" yaml:"with"`
}

// ✂️ SubstringArgs holds the optional substring bounds
type SubstringArgs struct {
	From *int `json:"from,omitempty" yaml:"from,omitempty"`
	To   *int `json:"to,omitempty" yaml:"to,omitempty"`
}

// 📦 Profile is a reusable set of options read from a file.
// It only seeds the options of the run it is loaded for.
type Profile struct {
	Replace   *ReplaceArgs   `json:"replace,omitempty" yaml:"replace,omitempty"`
	Substring *SubstringArgs `json:"substring,omitempty" yaml:"substring,omitempty"`
	Trim      bool           `json:"trim,omitempty" yaml:"trim,omitempty"`
	Case      string         `json:"case,omitempty" yaml:"case,omitempty"`
	Output    string         `json:"output,omitempty" yaml:"output,omitempty"`
	Copy      bool           `json:"copy,omitempty" yaml:"copy,omitempty"`
	Overwrite bool           `json:"overwrite,omitempty" yaml:"overwrite,omitempty"`
	Ignore    []string       `json:"ignore,omitempty" yaml:"ignore,omitempty"`
}

// Options converts the profile into raw run options
func (p *Profile) Options() Options {
	opts := Options{
		Trim:            p.Trim,
		Case:            p.Case,
		OutputDirectory: p.Output,
		Copy:            p.Copy,
		Overwrite:       p.Overwrite,
	}
	if p.Replace != nil {
		opts.Search = p.Replace.Search
		opts.Replace = p.Replace.With
	}
	if p.Substring != nil {
		opts.From = FormatBound(p.Substring.From)
		opts.To = FormatBound(p.Substring.To)
	}
	return opts
}

// 🔍 Validate checks if the profile is usable
func (p *Profile) Validate() error {
	if _, err := ParseCaseMode(p.Case); err != nil {
		return err
	}
	if p.Substring != nil {
		if p.Substring.From != nil && *p.Substring.From < 0 {
			return errors.Errorf("%w: substring.from is negative", ErrInvalidOptions)
		}
		if p.Substring.To != nil && *p.Substring.To < 0 {
			return errors.Errorf("%w: substring.to is negative", ErrInvalidOptions)
		}
	}
	for _, pattern := range p.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("%w: invalid ignore pattern %q", ErrInvalidOptions, pattern)
		}
	}
	if p.Output != "" {
		p.Output = filepath.Clean(p.Output)
	}
	return nil
}

// 🎯 LoadProfile loads a profile from a file
func LoadProfile(ctx context.Context, path string) (*Profile, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading profile")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading profile: %w", err)
	}

	p := GetParser(strings.ToLower(path))
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	profile, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing profile: %w", err)
	}

	// relative output paths belong to the profile, not the cwd
	if profile.Output != "" && !filepath.IsAbs(profile.Output) {
		profile.Output = filepath.Join(filepath.Dir(path), profile.Output)
	}

	if err := profile.Validate(); err != nil {
		return nil, errors.Errorf("validating profile: %w", err)
	}

	return profile, nil
}
