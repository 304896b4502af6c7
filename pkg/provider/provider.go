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
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrSourceNotFound is returned for a literal path that does not exist
var ErrSourceNotFound = errors.Base("source not found")

// 📋 Args describes the files a batch should process
type Args struct {
	// Patterns are paths or doublestar globs, relative ones resolve against Dir
	Patterns []string
	// Ignore drops matching files, matched against the path relative to Dir and the file name
	Ignore []string
	// Dir is the base for relative patterns, the working directory when empty
	Dir string
	// Input supplies newline separated paths for providers that read a list
	Input io.Reader
}

// 🔌 Provider turns Args into an ordered list of absolute file paths
type Provider interface {
	// 📂 ListFiles returns regular files in argument order without duplicates
	ListFiles(ctx context.Context, args Args) ([]string, error)
}

// 🏭 Factory creates a new provider
type Factory func(ctx context.Context) (Provider, error)

var (
	// 🗺️ providers is a map of provider names to factories
	providers = make(map[string]Factory)
)

// 📝 Register registers a provider factory
func Register(name string, factory Factory) {
	providers[name] = factory
}

// 🎯 Get returns a provider by name
func Get(name string) Factory {
	return providers[name]
}

// Names returns the registered provider names, sorted
func Names() []string {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// 🧹 collector dedupes and filters paths while keeping the order they arrive in
type collector struct {
	dir    string
	ignore []string
	seen   map[string]bool
	files  []string
}

func newCollector(args Args) (*collector, error) {
	dir := args.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Errorf("resolving base directory: %w", err)
	}
	for _, pattern := range args.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid ignore pattern %q", pattern)
		}
	}
	return &collector{dir: abs, ignore: args.Ignore, seen: make(map[string]bool)}, nil
}

func (c *collector) resolve(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.dir, path)
	}
	return filepath.Clean(path)
}

func (c *collector) ignored(path string) bool {
	rel, err := filepath.Rel(c.dir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)
	for _, pattern := range c.ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// add appends path if it is a new, regular, non-ignored file
func (c *collector) add(ctx context.Context, path string) error {
	logger := zerolog.Ctx(ctx)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return errors.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		logger.Debug().Str("path", path).Msg("skipping non-regular file")
		return nil
	}
	if c.seen[path] {
		return nil
	}
	if c.ignored(path) {
		logger.Debug().Str("path", path).Msg("ignoring file")
		return nil
	}
	c.seen[path] = true
	c.files = append(c.files, path)
	return nil
}
