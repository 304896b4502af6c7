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
	"github.com/rs/zerolog"
	"github.com/walteh/renamer/pkg/status"
)

// 📨 EventKind identifies what an Event carries
type EventKind int

const (
	EventLog      EventKind = iota // A human-readable log line
	EventProgress                  // A progress update (Done of Total)
	EventTerminal                  // The batch left the running state
)

// String returns a string representation of EventKind
func (k EventKind) String() string {
	switch k {
	case EventLog:
		return "log"
	case EventProgress:
		return "progress"
	case EventTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// 📨 Event is one entry of the stream a batch produces, in processing order
type Event struct {
	Kind EventKind

	// EventLog
	Level       zerolog.Level
	Message     string
	Path        string            // Source file the line is about, empty for batch lines
	Destination string            // Destination of a per-file outcome line
	Status      status.FileStatus // Per-file outcome, StatusUnknown for other lines

	// EventProgress and EventTerminal
	Done  int
	Total int

	// EventTerminal, and the skip or failure reason of a per-file outcome line
	State  State
	Reason string
}

// Emitter receives events. It is called from the orchestrator goroutine.
type Emitter func(Event)

func discard(Event) {}
