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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/renamer/cmd/renamer/opts"
	"github.com/walteh/renamer/pkg/log"
	"github.com/walteh/renamer/pkg/operation"
)

// NewPreviewCmd creates a new preview command
func NewPreviewCmd(root *opts.RootOpts) *cobra.Command {
	batch := &opts.BatchOpts{}

	cmd := &cobra.Command{
		Use:   "preview [flags] <paths or globs...>",
		Short: "Show what run would do without touching any file",
		Long: `Preview applies the same transformations as run and prints a diff of
every name. Destination conflicts are only detected by run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, ignore, err := batch.Resolve(ctx, cmd.Flags())
			if err != nil {
				return errors.Errorf("resolving configuration: %w", err)
			}

			files, err := listFiles(ctx, cmd, args, batch.Stdin, ignore)
			if err != nil {
				return err
			}

			logger := root.Logger
			if logger == nil {
				logger = log.New(cmd.OutOrStdout(), zerolog.InfoLevel)
			}
			logger.StartBatch(ctx, log.BatchOperation{Files: len(files), Summary: cfg.String()})

			if len(files) == 0 {
				logger.Info(operation.MsgNoFilesSelected)
				return nil
			}
			for _, item := range operation.Preview(files, cfg) {
				logger.LogPlanItem(ctx, item)
			}
			return nil
		},
	}

	batch.AddFlags(cmd.Flags())
	return cmd
}
