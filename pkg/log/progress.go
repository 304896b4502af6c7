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
	"github.com/pterm/pterm"
)

// 📊 progressBar wraps a pterm progress bar that starts on the first update
type progressBar struct {
	bar     *pterm.ProgressbarPrinter
	current int
	failed  bool
}

// EnableProgress draws a progress bar while a batch runs
func (l *Logger) EnableProgress() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.progress = &progressBar{}
}

// updateProgress moves the bar to done of total
func (l *Logger) updateProgress(done, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := l.progress
	if p == nil || p.failed || total <= 0 {
		return
	}

	if p.bar == nil {
		bar, err := pterm.DefaultProgressbar.
			WithTotal(total).
			WithTitle("Processing").
			WithRemoveWhenDone(true).
			Start()
		if err != nil {
			l.zlog.Debug().Err(err).Msg("progress bar unavailable")
			p.failed = true
			return
		}
		p.bar = bar
		p.current = 0
	}

	if delta := done - p.current; delta > 0 {
		p.bar.Add(delta)
		p.current = done
	}
}

// stopProgress removes the bar, callers hold l.mu
func (l *Logger) stopProgress() {
	p := l.progress
	if p == nil || p.bar == nil {
		return
	}
	if _, err := p.bar.Stop(); err != nil {
		l.zlog.Debug().Err(err).Msg("stopping progress bar")
	}
	p.bar = nil
	p.current = 0
}
