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
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/renamer/cmd/renamer/opts"
	"github.com/walteh/renamer/pkg/log"
	"github.com/walteh/renamer/pkg/operation"
)

// ErrBatchAborted is returned when the batch ended in the aborted state
var ErrBatchAborted = errors.Base("batch aborted")

// ErrBatchCancelled is returned when the batch was cancelled
var ErrBatchCancelled = errors.Base("batch cancelled")

// NewRunCmd creates a new run command
func NewRunCmd(root *opts.RootOpts) *cobra.Command {
	batch := &opts.BatchOpts{}

	cmd := &cobra.Command{
		Use:   "run [flags] <paths or globs...>",
		Short: "Rename, move or copy files",
		Long: `Run processes every matched file in order:
1. Replace --search with --replace
2. Keep the --from/--to substring
3. Trim whitespace with --trim
4. Upper case with --upper
then moves (or with --copy copies) the file to --output or its own directory.
Ctrl-C stops the batch after the file in progress.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

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
			if !root.NoProgress && isTerminal(cmd.OutOrStdout()) {
				logger.EnableProgress()
			}
			logger.StartBatch(ctx, log.BatchOperation{Files: len(files), Summary: cfg.String()})

			events := make(chan operation.Event, 64)
			orch := operation.NewOrchestrator(operation.Options{
				Emit: func(ev operation.Event) { events <- ev },
			})

			var state operation.State
			var reason string
			g, gctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				defer close(events)
				orch.Select(gctx, files)
				s, err := orch.Start(gctx, cfg)
				state = s
				return err
			})

			g.Go(func() error {
				for ev := range events {
					if ev.Kind == operation.EventTerminal {
						reason = ev.Reason
					}
					logger.Render(gctx, ev)
				}
				return nil
			})

			if err := g.Wait(); err != nil {
				return errors.Errorf("running batch: %w", err)
			}

			switch state {
			case operation.StateAborted:
				return errors.Errorf("%w: %s", ErrBatchAborted, reason)
			case operation.StateCancelled:
				return errors.WithStack(ErrBatchCancelled)
			}
			return nil
		},
	}

	batch.AddFlags(cmd.Flags())
	return cmd
}
