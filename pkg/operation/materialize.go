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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/renamer/pkg/config"
	"github.com/walteh/renamer/pkg/fsys"
	"github.com/walteh/renamer/pkg/status"
)

// ErrOutputDirectoryGone is returned when the configured output directory
// disappeared while the batch was running. The batch must abort.
var ErrOutputDirectoryGone = errors.Base("output directory no longer exists")

// 📦 Materializer copies or moves a file to its destination
type Materializer struct {
	fs fsys.FileManager
}

// 🏭 NewMaterializer creates a new Materializer
func NewMaterializer(fs fsys.FileManager) *Materializer {
	return &Materializer{fs: fs}
}

// Materialize copies the record's source when copy mode is on and moves it
// otherwise. The overwrite flag is forwarded to the filesystem call. Errors
// are not retried.
func (m *Materializer) Materialize(ctx context.Context, rec *FileRecord, cfg *config.BatchConfiguration) (status.FileStatus, error) {
	logger := zerolog.Ctx(ctx)
	dst := rec.Destination()

	var err error
	result := status.StatusMoved
	if cfg.Copy() {
		result = status.StatusCopied
		err = m.fs.CopyFile(ctx, rec.Path, dst, cfg.Overwrite())
	} else {
		err = m.fs.MoveFile(ctx, rec.Path, dst, cfg.Overwrite())
	}
	if err == nil {
		logger.Debug().Str("src", rec.Path).Str("dst", dst).Str("status", result.String()).Msg("materialized file")
		return result, nil
	}

	if out := cfg.OutputDirectory(); out != "" {
		if exists, derr := m.fs.DirExists(ctx, out); derr == nil && !exists {
			return status.StatusFailed, errors.Errorf("%w: %s: %s", ErrOutputDirectoryGone, out, err.Error())
		}
	}

	if cfg.Copy() {
		return status.StatusFailed, errors.Errorf("copying %s to %s: %w", rec.Path, dst, err)
	}
	return status.StatusFailed, errors.Errorf("moving %s to %s: %w", rec.Path, dst, err)
}
