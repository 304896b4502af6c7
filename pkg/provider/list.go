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
	"bufio"
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register("list", func(ctx context.Context) (Provider, error) {
		return NewList(), nil
	})
}

// 📜 List reads one path per line from Args.Input. Blank lines and lines
// starting with # are skipped. Patterns are not expanded.
type List struct{}

var _ Provider = (*List)(nil)

// 🏭 NewList creates a new list provider
func NewList() *List {
	return &List{}
}

func (p *List) ListFiles(ctx context.Context, args Args) ([]string, error) {
	if args.Input == nil {
		return nil, errors.Errorf("list provider needs an input")
	}

	c, err := newCollector(args)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(args.Input)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("reading list: %w", err)
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := c.add(ctx, c.resolve(line)); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("reading list: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Int("count", len(c.files)).Msg("listed files")
	return c.files, nil
}
