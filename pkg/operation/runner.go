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

package operation

import (
	"context"

	"github.com/walteh/renamer/pkg/config"
	"github.com/walteh/renamer/pkg/fsys"
)

// eventBuffer lets the pipeline run a few events ahead of a slow reader
const eventBuffer = 64

// 🏃 Runner runs batches and streams their events
type Runner struct {
	fs fsys.FileManager
}

// 🏗️ NewRunner creates a new runner on top of fs, the local disk when nil
func NewRunner(fs fsys.FileManager) *Runner {
	if fs == nil {
		fs = fsys.NewOS()
	}
	return &Runner{fs: fs}
}

// 🏃 Run processes files with cfg on a new goroutine. The returned channel
// yields every event in processing order and is closed after the terminal
// event. Callers must drain it. Cancelling ctx cancels the batch.
func (r *Runner) Run(ctx context.Context, files []string, cfg *config.BatchConfiguration) <-chan Event {
	events := make(chan Event, eventBuffer)

	orch := NewOrchestrator(Options{
		FileManager: r.fs,
		Emit:        func(ev Event) { events <- ev },
	})

	go func() {
		defer close(events)
		orch.Select(ctx, files)
		state, err := orch.Start(ctx, cfg)
		if err != nil || state == StateIdle {
			// Start did not run a batch, still give the reader a terminal event
			reason := MsgNoFilesSelected
			if err != nil {
				reason = err.Error()
			}
			events <- Event{Kind: EventTerminal, State: state, Reason: reason}
		}
	}()

	return events
}

// 🏃 Run processes files with cfg on the local disk. See Runner.Run.
func Run(ctx context.Context, files []string, cfg *config.BatchConfiguration) <-chan Event {
	return NewRunner(nil).Run(ctx, files, cfg)
}
