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

package log

import (
	"context"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/walteh/renamer/pkg/operation"
	"github.com/walteh/renamer/pkg/status"
)

// 🎬 Render prints one batch event. Events must arrive in the order the
// batch produced them.
func (l *Logger) Render(ctx context.Context, ev operation.Event) {
	switch ev.Kind {
	case operation.EventLog:
		l.renderLog(ctx, ev)
	case operation.EventProgress:
		l.updateProgress(ev.Done, ev.Total)
	case operation.EventTerminal:
		l.EndBatch(ctx, BatchResult{
			State:  ev.State.String(),
			Reason: ev.Reason,
			Done:   ev.Done,
			Total:  ev.Total,
		})
	}
}

func (l *Logger) renderLog(ctx context.Context, ev operation.Event) {
	if ev.Status != status.StatusUnknown {
		l.LogFileOperation(ctx, FileOperation{
			Source:      ev.Path,
			Destination: ev.Destination,
			Status:      ev.Status,
			Reason:      ev.Reason,
		})
		return
	}

	// Per-file start lines and configuration details only go to zerolog
	if ev.Path != "" || ev.Level < zerolog.InfoLevel {
		l.zlog.Debug().Str("path", ev.Path).Msg(ev.Message)
		return
	}

	switch ev.Level {
	case zerolog.WarnLevel:
		l.Warning(ev.Message)
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		l.Error(ev.Message)
	default:
		l.Info(ev.Message)
	}
}

// summaryPrinter picks the pterm printer for a terminal state
func summaryPrinter(state string) *pterm.PrefixPrinter {
	switch state {
	case operation.StateFinished.String():
		return &pterm.Success
	case operation.StateCancelled.String():
		return &pterm.Warning
	default:
		return &pterm.Error
	}
}
