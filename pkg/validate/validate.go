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

package validate

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/renamer/pkg/config"
	"github.com/walteh/renamer/pkg/fsys"
)

// 🚦 Outcome is what should happen to a single file
type Outcome int

const (
	Proceed Outcome = iota
	SkipFile
	AbortBatch
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case Proceed:
		return "proceed"
	case SkipFile:
		return "skip"
	case AbortBatch:
		return "abort"
	default:
		return "unknown"
	}
}

// Reasons attached to decisions
const (
	ReasonOutputDirectoryMissing = "output directory does not exist"
	ReasonCopyIntoSourceDir      = "copy into the source directory would reuse an existing name"
	ReasonDestinationIsSource    = "destination is the source file"
	ReasonDestinationExists      = "destination exists and overwrite is disabled"
	ReasonOverwritten            = "existing destination deleted"
)

// 📋 Decision is the validator outcome plus a human-readable reason
type Decision struct {
	Outcome Outcome
	Reason  string
	Err     error // Underlying error, if a filesystem check failed
}

// Target is the per-file view the validator needs
type Target struct {
	Source      string // Full source path
	SourceDir   string // Directory the source lives in
	Destination string // Full destination path
}

// ✅ DestinationValidator decides whether a file may be materialized
type DestinationValidator struct {
	fs fsys.FileManager
}

// 🏭 New creates a new DestinationValidator
func New(fs fsys.FileManager) *DestinationValidator {
	return &DestinationValidator{fs: fs}
}

// Validate runs the destination checks in order and stops at the first one
// that fires. With overwrite enabled an existing destination is deleted
// here, before anything is written.
func (v *DestinationValidator) Validate(ctx context.Context, target Target, cfg *config.BatchConfiguration) Decision {
	logger := zerolog.Ctx(ctx)

	// 1. Configured output directory must exist
	if out := cfg.OutputDirectory(); out != "" {
		exists, err := v.fs.DirExists(ctx, out)
		if err != nil {
			return Decision{Outcome: AbortBatch, Reason: "checking output directory failed", Err: err}
		}
		if !exists {
			return Decision{Outcome: AbortBatch, Reason: ReasonOutputDirectoryMissing}
		}
	}

	destExists, err := v.fs.FileExists(ctx, target.Destination)
	if err != nil {
		return Decision{Outcome: SkipFile, Reason: "checking destination failed", Err: err}
	}

	// 2. Copy next to the source onto an existing name
	if cfg.Copy() && cfg.OutputDirectory() == "" && destExists {
		return Decision{Outcome: SkipFile, Reason: ReasonCopyIntoSourceDir}
	}

	// 3. Moving a file onto itself, by name or through a symlink, hardlink
	// or case-folding filesystem
	if samePath(target.Source, target.Destination) {
		return Decision{Outcome: SkipFile, Reason: ReasonDestinationIsSource}
	}
	if destExists {
		same, err := v.fs.SameFile(ctx, target.Source, target.Destination)
		if err != nil {
			return Decision{Outcome: SkipFile, Reason: "checking destination failed", Err: err}
		}
		if same {
			return Decision{Outcome: SkipFile, Reason: ReasonDestinationIsSource}
		}
	}

	// 4. Existing destination without overwrite
	if destExists && !cfg.Overwrite() {
		return Decision{Outcome: SkipFile, Reason: ReasonDestinationExists}
	}

	// 5. Existing destination with overwrite
	if destExists {
		if err := v.fs.DeleteFile(ctx, target.Destination); err != nil {
			return Decision{Outcome: SkipFile, Reason: "deleting existing destination failed", Err: err}
		}
		logger.Debug().Str("destination", target.Destination).Msg("deleted existing destination")
		return Decision{Outcome: Proceed, Reason: ReasonOverwritten}
	}

	return Decision{Outcome: Proceed}
}

func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
