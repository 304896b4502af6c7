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
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/walteh/renamer/pkg/status"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	statusWidth = 12 // Width for status text
)

// 🎯 FileOperation represents the outcome of one file for logging
type FileOperation struct {
	Source      string            // Source path
	Destination string            // Destination path
	Status      status.FileStatus // What happened
	Reason      string            // Why it was skipped or failed
}

// 📦 BatchOperation represents a batch for logging
type BatchOperation struct {
	Files   int    // Number of selected files
	Summary string // Configuration summary
}

// 🏁 BatchResult is how a batch ended
type BatchResult struct {
	State  string
	Reason string
	Done   int
	Total  int
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog       zerolog.Logger
	console    io.Writer
	mu         sync.Mutex
	currentOp  *BatchOperation
	operations []FileOperation
	progress   *progressBar
}

// 🏭 New creates a new logger
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🏭 NewWithZerolog creates a logger that mirrors into an existing zerolog logger
func NewWithZerolog(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch op.Status {
	case status.StatusMoved:
		symbol = '→'
		symbolColor = color.FgGreen
	case status.StatusCopied:
		symbol = '✓'
		symbolColor = color.FgGreen
	case status.StatusOverwritten:
		symbol = '⟳'
		symbolColor = color.FgBlue
	case status.StatusSkipped:
		symbol = '-'
		symbolColor = color.FgYellow
	case status.StatusFailed:
		symbol = '✗'
		symbolColor = color.FgRed
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	detail := op.Destination
	if op.Status == status.StatusSkipped || op.Status == status.StatusFailed {
		detail = op.Reason
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		fmt.Sprintf("%-*s", nameWidth, filepath.Base(op.Source)),
		color.New(symbolColor).Sprint(fmt.Sprintf("%-*s", statusWidth, op.Status.String())),
		color.New(color.Faint).Sprint(detail))
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.operations = append(l.operations, op)

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	l.zlog.Info().
		Str("source", op.Source).
		Str("destination", op.Destination).
		Str("status", op.Status.String()).
		Str("reason", op.Reason).
		Msg("file operation")
}

// 📝 StartBatch starts a new batch
func (l *Logger) StartBatch(ctx context.Context, op BatchOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.currentOp = &op
	l.operations = nil

	noun := "files"
	if op.Files == 1 {
		noun = "file"
	}
	fmt.Fprintf(l.console, "%s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprintf("%d %s", op.Files, noun),
		color.New(color.Faint).Sprint("• "+op.Summary))

	l.zlog.Info().
		Int("files", op.Files).
		Str("summary", op.Summary).
		Msg("starting batch")
}

// 📝 EndBatch prints the batch summary and clears the current batch
func (l *Logger) EndBatch(ctx context.Context, res BatchResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stopProgress()

	counts := make(map[status.FileStatus]int)
	for _, op := range l.operations {
		counts[op.Status]++
	}

	summary := fmt.Sprintf("%s: %d/%d processed (%d moved, %d copied, %d overwritten, %d skipped, %d failed)",
		res.State, res.Done, res.Total,
		counts[status.StatusMoved], counts[status.StatusCopied], counts[status.StatusOverwritten],
		counts[status.StatusSkipped], counts[status.StatusFailed])
	if res.Reason != "" {
		summary += " - " + res.Reason
	}
	fmt.Fprintln(l.console, summaryPrinter(res.State).Sprint(summary))

	l.zlog.Info().
		Str("state", res.State).
		Str("reason", res.Reason).
		Int("done", res.Done).
		Int("total", res.Total).
		Msg("batch complete")

	l.currentOp = nil
	l.operations = nil
}

// Operations returns the file operations logged for the current batch
func (l *Logger) Operations() []FileOperation {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]FileOperation(nil), l.operations...)
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	nameText := color.New(color.Bold, color.FgCyan).Sprint("renamer")
	fmt.Fprintf(l.console, "\n%s %s\n\n", nameText, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
