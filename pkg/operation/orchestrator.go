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
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/renamer/pkg/config"
	"github.com/walteh/renamer/pkg/fsys"
	"github.com/walteh/renamer/pkg/status"
	"github.com/walteh/renamer/pkg/text"
	"github.com/walteh/renamer/pkg/validate"
)

// 🚦 State is the lifecycle of a batch
type State int

const (
	StateIdle State = iota
	StateRunning
	StateFinished
	StateAborted
	StateCancelled
)

// String returns a string representation of State
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	case StateAborted:
		return "aborted"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the batch is over
func (s State) Terminal() bool {
	return s == StateFinished || s == StateAborted || s == StateCancelled
}

// Batch lines
const (
	MsgNoFilesSelected = "No files selected"
	MsgStarting        = "Starting operation - Please wait"
	MsgFinished        = "Operation finished"
	MsgAborted         = "Operation aborted"
	MsgCancelled       = "Operation cancelled"
)

// ErrAlreadyRunning is returned by Start while a batch is in flight
var ErrAlreadyRunning = errors.Base("batch already running")

// 🔧 Options configures an Orchestrator
type Options struct {
	// FileManager performs the filesystem work, the local disk when nil
	FileManager fsys.FileManager
	// Emit receives every event of every batch, in order
	Emit Emitter
	// Reporter counts processed files, a status.Tracker when nil
	Reporter status.Reporter
	// Formatter renders per-file outcome lines
	Formatter status.FileFormatter
}

// 🎮 Orchestrator drives the per-file pipeline for a selection of files.
// Files are processed one at a time in selection order.
type Orchestrator struct {
	transformer  *text.NameTransformer
	validator    *validate.DestinationValidator
	materializer *Materializer
	reporter     status.Reporter
	formatter    status.FileFormatter
	emit         Emitter

	mu        sync.Mutex
	state     State
	selection []string
	cancel    context.CancelFunc
}

// 🏭 NewOrchestrator creates an idle orchestrator
func NewOrchestrator(opts Options) *Orchestrator {
	fs := opts.FileManager
	if fs == nil {
		fs = fsys.NewOS()
	}
	formatter := opts.Formatter
	if formatter == nil {
		formatter = status.NewDefaultFileFormatter()
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = status.NewTracker(formatter)
	}
	emit := opts.Emit
	if emit == nil {
		emit = discard
	}

	return &Orchestrator{
		transformer:  text.NewNameTransformer(),
		validator:    validate.New(fs),
		materializer: NewMaterializer(fs),
		reporter:     reporter,
		formatter:    formatter,
		emit:         emit,
	}
}

// State returns the current lifecycle state
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Progress returns processed and total file counts of the running batch
func (o *Orchestrator) Progress() (int, int) {
	return o.reporter.Progress()
}

// Selection returns a copy of the selected paths
func (o *Orchestrator) Selection() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.selection...)
}

// 📋 Select replaces the selection. It is ignored while a batch runs.
func (o *Orchestrator) Select(ctx context.Context, paths []string) {
	o.mu.Lock()
	if o.state == StateRunning {
		o.mu.Unlock()
		zerolog.Ctx(ctx).Warn().Msg("selection ignored while a batch is running")
		return
	}
	o.selection = append([]string(nil), paths...)
	o.mu.Unlock()

	noun := "File"
	if len(paths) != 1 {
		noun = "Files"
	}
	o.log(ctx, zerolog.InfoLevel, fmt.Sprintf("Selected %d %s", len(paths), noun), "")
}

// 🛑 Cancel asks the running batch to stop at its next checkpoint
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
	}
}

// 🔄 Reset clears the selection and progress and returns to Idle. A running
// batch is cancelled instead and resets itself when it stops.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == StateRunning {
		if o.cancel != nil {
			o.cancel()
		}
		return
	}
	o.selection = nil
	o.state = StateIdle
	o.reporter.Reset()
}

// 🚀 Start processes the current selection with cfg and blocks until the
// batch reaches a terminal state. With nothing selected it logs and stays
// Idle. Per-file failures never surface as an error here.
func (o *Orchestrator) Start(ctx context.Context, cfg *config.BatchConfiguration) (State, error) {
	if cfg == nil {
		return o.State(), errors.Errorf("configuration is required")
	}

	o.mu.Lock()
	if o.state == StateRunning {
		o.mu.Unlock()
		return StateRunning, errors.WithStack(ErrAlreadyRunning)
	}
	if len(o.selection) == 0 {
		o.state = StateIdle
		o.mu.Unlock()
		o.log(ctx, zerolog.InfoLevel, MsgNoFilesSelected, "")
		return StateIdle, nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	files := o.selection
	o.state = StateRunning
	o.cancel = cancel
	o.mu.Unlock()

	state, reason := o.runSafely(runCtx, files, cfg)
	o.finish(ctx, state, reason)
	return state, nil
}

// runSafely recovers anything the pipeline did not anticipate and turns it
// into an aborted batch.
func (o *Orchestrator) runSafely(ctx context.Context, files []string, cfg *config.BatchConfiguration) (state State, reason string) {
	defer func() {
		if r := recover(); r != nil {
			zerolog.Ctx(ctx).Error().
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("unexpected error while processing batch")
			state = StateAborted
			reason = fmt.Sprintf("unexpected error: %v", r)
		}
	}()
	return o.process(ctx, files, cfg)
}

func (o *Orchestrator) process(ctx context.Context, files []string, cfg *config.BatchConfiguration) (State, string) {
	o.reporter.StartOperation(ctx, len(files))
	o.progress(0, len(files))
	o.log(ctx, zerolog.InfoLevel, MsgStarting, "")
	o.log(ctx, zerolog.DebugLevel, cfg.String(), "")

	for _, path := range files {
		if ctx.Err() != nil {
			return StateCancelled, ""
		}

		rec := NewFileRecord(path, cfg)
		o.log(ctx, zerolog.InfoLevel, rec.StartLog, rec.Path)

		result, err := o.transformer.Transform(rec.Base, cfg)
		if err != nil {
			o.complete(ctx, rec, zerolog.WarnLevel, status.StatusSkipped, err.Error())
			continue
		}
		rec.Name = result.Name

		if ctx.Err() != nil {
			return StateCancelled, ""
		}

		decision := o.validator.Validate(ctx, validate.Target{
			Source:      rec.Path,
			SourceDir:   rec.Dir,
			Destination: rec.Destination(),
		}, cfg)

		switch decision.Outcome {
		case validate.AbortBatch:
			reason := decisionReason(decision)
			o.logFile(ctx, zerolog.ErrorLevel, rec, status.StatusFailed, reason)
			return StateAborted, reason
		case validate.SkipFile:
			o.complete(ctx, rec, zerolog.WarnLevel, status.StatusSkipped, decisionReason(decision))
			continue
		}

		if ctx.Err() != nil {
			return StateCancelled, ""
		}

		outcome, err := o.materializer.Materialize(ctx, rec, cfg)
		if err != nil {
			if errors.Is(err, ErrOutputDirectoryGone) {
				o.logFile(ctx, zerolog.ErrorLevel, rec, status.StatusFailed, err.Error())
				return StateAborted, err.Error()
			}
			if ctx.Err() != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					o.logFile(ctx, zerolog.WarnLevel, rec, status.StatusSkipped, "cancelled")
				} else {
					// the file failed on its own before the cancel reached it
					o.logFile(ctx, zerolog.ErrorLevel, rec, status.StatusFailed, err.Error())
				}
				return StateCancelled, ""
			}
			o.complete(ctx, rec, zerolog.ErrorLevel, status.StatusFailed, err.Error())
			continue
		}

		if decision.Reason == validate.ReasonOverwritten {
			outcome = status.StatusOverwritten
		}
		o.complete(ctx, rec, zerolog.InfoLevel, outcome, "")
	}

	return StateFinished, ""
}

// logFile emits the finish line of a file
func (o *Orchestrator) logFile(ctx context.Context, level zerolog.Level, rec *FileRecord, outcome status.FileStatus, reason string) {
	rec.FinishLog = o.formatter.FormatFileOperation(rec.Path, rec.Destination(), outcome, reason)
	zerolog.Ctx(ctx).Debug().
		Str("path", rec.Path).
		Str("destination", rec.Destination()).
		Str("status", outcome.String()).
		Str("reason", reason).
		Msg(rec.FinishLog)

	o.emit(Event{
		Kind:        EventLog,
		Level:       level,
		Message:     rec.FinishLog,
		Path:        rec.Path,
		Destination: rec.Destination(),
		Status:      outcome,
		Reason:      reason,
	})
}

// complete logs the finish line of a processed file and advances progress
func (o *Orchestrator) complete(ctx context.Context, rec *FileRecord, level zerolog.Level, outcome status.FileStatus, reason string) {
	o.logFile(ctx, level, rec, outcome, reason)
	done, total := o.reporter.UpdateProgress(ctx)
	o.progress(done, total)
}

func (o *Orchestrator) finish(ctx context.Context, state State, reason string) {
	o.reporter.FinishOperation(ctx)
	done, total := o.reporter.Progress()

	switch state {
	case StateFinished:
		o.log(ctx, zerolog.InfoLevel, MsgFinished, "")
	case StateCancelled:
		o.log(ctx, zerolog.WarnLevel, MsgCancelled, "")
	default:
		o.log(ctx, zerolog.ErrorLevel, fmt.Sprintf("%s: %s", MsgAborted, reason), "")
	}

	o.mu.Lock()
	o.state = state
	o.selection = nil
	o.cancel = nil
	o.reporter.Reset()
	o.mu.Unlock()

	o.emit(Event{Kind: EventTerminal, State: state, Reason: reason, Done: done, Total: total})
}

func (o *Orchestrator) log(ctx context.Context, level zerolog.Level, msg, path string) {
	ev := zerolog.Ctx(ctx).Debug().Str("level", level.String())
	if path != "" {
		ev = ev.Str("path", path)
	}
	ev.Msg(msg)

	o.emit(Event{Kind: EventLog, Level: level, Message: msg, Path: path})
}

func (o *Orchestrator) progress(done, total int) {
	o.emit(Event{Kind: EventProgress, Done: done, Total: total})
}

func decisionReason(d validate.Decision) string {
	if d.Err != nil {
		return fmt.Sprintf("%s: %v", d.Reason, d.Err)
	}
	return d.Reason
}
