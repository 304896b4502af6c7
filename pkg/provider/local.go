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

package provider

import (
	"context"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register("local", func(ctx context.Context) (Provider, error) {
		return NewLocal(), nil
	})
}

// 💾 Local lists files on disk from paths and doublestar globs
type Local struct{}

var _ Provider = (*Local)(nil)

// 🏭 NewLocal creates a new local provider
func NewLocal() *Local {
	return &Local{}
}

func (p *Local) ListFiles(ctx context.Context, args Args) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	c, err := newCollector(args)
	if err != nil {
		return nil, err
	}

	for _, pattern := range args.Patterns {
		path := c.resolve(pattern)

		if !hasMeta(pattern) {
			if err := c.add(ctx, path); err != nil {
				return nil, err
			}
			continue
		}

		slashed := filepath.ToSlash(path)
		if !doublestar.ValidatePattern(slashed) {
			return nil, errors.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(path, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			logger.Warn().Str("pattern", pattern).Msg("pattern matched no files")
		}
		for _, match := range matches {
			if err := c.add(ctx, filepath.Clean(match)); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug().Int("count", len(c.files)).Msg("listed files")
	return c.files, nil
}

func hasMeta(pattern string) bool {
	for _, r := range pattern {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
