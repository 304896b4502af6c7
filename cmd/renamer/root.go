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

package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/renamer/cmd/renamer/commands"
	"github.com/walteh/renamer/cmd/renamer/opts"
	"github.com/walteh/renamer/pkg/log"
)

// newRootCmd creates the root command with every subcommand attached
func newRootCmd() *cobra.Command {
	root := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "renamer",
		Short: "Batch rename, move and copy files",
		Long: `renamer applies literal replace, substring, trim and upper case
transformations to file names and moves or copies the files to their new
names, one file at a time, skipping files whose destination is taken.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			zlog := setupLogging(root.Debug)
			cmd.SetContext(zlog.WithContext(ctx))

			mirror := zlog.Level(zerolog.Disabled)
			if root.Debug {
				mirror = zlog
			}
			root.Logger = log.NewWithZerolog(cmd.OutOrStdout(), mirror)
			return nil
		},
	}

	addRootFlags(cmd, root)

	cmd.AddCommand(
		commands.NewRunCmd(root),
		commands.NewPreviewCmd(root),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, root *opts.RootOpts) {
	cmd.PersistentFlags().BoolVarP(&root.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&root.NoProgress, "no-progress", false, "never draw a progress bar")
}

// setupLogging configures zerolog based on flags
func setupLogging(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
