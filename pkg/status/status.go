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

package status

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// 📊 FileStatus represents what happened to one file of a batch
type FileStatus int

const (
	StatusUnknown     FileStatus = iota
	StatusMoved                  // File was moved or renamed to its destination
	StatusCopied                 // File was copied to its destination
	StatusOverwritten            // An existing destination was replaced
	StatusSkipped                // File was left untouched
	StatusFailed                 // Materialization failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusMoved:
		return "moved"
	case StatusCopied:
		return "copied"
	case StatusOverwritten:
		return "overwritten"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📈 Reporter tracks batch progress
type Reporter interface {
	StartOperation(ctx context.Context, total int)
	UpdateProgress(ctx context.Context) (processed, total int)
	FinishOperation(ctx context.Context)
	Progress() (processed, total int)
	Reset()
}

// 🔧 Tracker implements Reporter with a determinate counter
type Tracker struct {
	formatter FileFormatter

	mu        sync.RWMutex
	total     int
	processed int
}

var _ Reporter = (*Tracker)(nil)

// 🏭 NewTracker creates a new progress tracker
func NewTracker(formatter FileFormatter) *Tracker {
	if formatter == nil {
		formatter = NewDefaultFileFormatter()
	}
	return &Tracker{formatter: formatter}
}

func (m *Tracker) StartOperation(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total = total
	m.processed = 0
	zerolog.Ctx(ctx).Debug().Int("total", total).Msg(m.formatter.FormatProgress(0, total))
}

// UpdateProgress advances the counter by one file
func (m *Tracker) UpdateProgress(ctx context.Context) (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed++
	zerolog.Ctx(ctx).Debug().
		Int("processed", m.processed).
		Int("total", m.total).
		Msg(m.formatter.FormatProgress(m.processed, m.total))
	return m.processed, m.total
}

func (m *Tracker) FinishOperation(ctx context.Context) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	zerolog.Ctx(ctx).Debug().
		Int("processed", m.processed).
		Int("total", m.total).
		Msg(m.formatter.FormatProgress(m.processed, m.total))
}

func (m *Tracker) Progress() (int, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.processed, m.total
}

func (m *Tracker) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processed = 0
	m.total = 0
}
