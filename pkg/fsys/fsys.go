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

package fsys

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrDestinationExists is returned when a write would replace a file and overwrite is off
var ErrDestinationExists = errors.Base("destination already exists")

// 💾 FileManager handles all file system operations the pipeline needs
type FileManager interface {
	// Existence checks
	FileExists(ctx context.Context, path string) (bool, error)
	DirExists(ctx context.Context, path string) (bool, error)
	SameFile(ctx context.Context, a, b string) (bool, error)

	// Core operations
	DeleteFile(ctx context.Context, path string) error
	CopyFile(ctx context.Context, src, dst string, overwrite bool) error
	MoveFile(ctx context.Context, src, dst string, overwrite bool) error
}

// 🔧 OS implements FileManager on the local disk
type OS struct{}

// 🏭 NewOS creates a new local file manager
func NewOS() *OS {
	return &OS{}
}

var _ FileManager = (*OS)(nil)

func (m *OS) FileExists(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return !info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

func (m *OS) DirExists(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking directory existence: %w", err)
}

// SameFile reports whether a and b name the same file on disk, following
// symlinks and hardlinks. A missing path is never the same as anything.
func (m *OS) SameFile(ctx context.Context, a, b string) (bool, error) {
	ia, err := os.Stat(a)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Errorf("stat %s: %w", a, err)
	}
	ib, err := os.Stat(b)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Errorf("stat %s: %w", b, err)
	}
	return os.SameFile(ia, ib), nil
}

func (m *OS) DeleteFile(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil {
		return errors.Errorf("deleting file: %w", err)
	}
	return nil
}

// CopyFile copies src to dst through a temporary sibling of dst, so dst is
// either untouched or complete. A cancelled context abandons the copy.
func (m *OS) CopyFile(ctx context.Context, src, dst string, overwrite bool) error {
	if err := m.guard(ctx, dst, overwrite); err != nil {
		return err
	}

	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return errors.Errorf("stat source file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	ok := false
	defer func() {
		if !ok {
			tmp.Close()
			os.Remove(tmpPath) // Clean up temp file
		}
	}()

	if _, err := io.Copy(tmp, &contextReader{ctx: ctx, r: source}); err != nil {
		return errors.Errorf("copying file content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		return errors.Errorf("setting file mode: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tmpPath, dst); err != nil {
		return errors.Errorf("renaming temp file: %w", err)
	}
	ok = true

	zerolog.Ctx(ctx).Debug().Str("src", src).Str("dst", dst).Int64("size", info.Size()).Msg("copied file")
	return nil
}

// MoveFile renames src to dst, copying and removing src when the two sit on
// different devices.
func (m *OS) MoveFile(ctx context.Context, src, dst string, overwrite bool) error {
	if err := m.guard(ctx, dst, overwrite); err != nil {
		return err
	}

	err := os.Rename(src, dst)
	if err == nil {
		zerolog.Ctx(ctx).Debug().Str("src", src).Str("dst", dst).Msg("renamed file")
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return errors.Errorf("renaming file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("src", src).Str("dst", dst).Msg("cross-device move, copying instead")
	if err := m.CopyFile(ctx, src, dst, overwrite); err != nil {
		return errors.Errorf("moving across devices: %w", err)
	}
	if err := os.Remove(src); err != nil {
		return errors.Errorf("removing moved source: %w", err)
	}
	return nil
}

func (m *OS) guard(ctx context.Context, dst string, overwrite bool) error {
	if overwrite {
		return nil
	}
	exists, err := m.FileExists(ctx, dst)
	if err != nil {
		return err
	}
	if exists {
		return errors.Errorf("%w: %s", ErrDestinationExists, dst)
	}
	return nil
}

// contextReader stops a copy once its context is done
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
