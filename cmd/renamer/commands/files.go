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

package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/renamer/pkg/provider"
)

// listFiles expands the command arguments, or stdin with --stdin, into the
// ordered source list
func listFiles(ctx context.Context, cmd *cobra.Command, args []string, stdin bool, ignore []string) ([]string, error) {
	name := "local"
	var input io.Reader
	if stdin {
		name = "list"
		input = cmd.InOrStdin()
	}

	factory := provider.Get(name)
	if factory == nil {
		return nil, errors.Errorf("provider %q not registered", name)
	}
	p, err := factory(ctx)
	if err != nil {
		return nil, errors.Errorf("creating %s provider: %w", name, err)
	}

	files, err := p.ListFiles(ctx, provider.Args{
		Patterns: args,
		Ignore:   ignore,
		Input:    input,
	})
	if err != nil {
		return nil, errors.Errorf("listing files: %w", err)
	}
	return files, nil
}
