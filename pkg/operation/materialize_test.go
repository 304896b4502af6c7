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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/renamer/pkg/config"
	"github.com/walteh/renamer/pkg/fsys"
	"github.com/walteh/renamer/pkg/status"
)

func TestNewFileRecord(t *testing.T) {
	sep := string(filepath.Separator)
	tests := []struct {
		name     string
		path     string
		output   string
		wantDir  string
		wantBase string
		wantExt  string
		wantDest string
	}{
		{
			name:     "simple_file",
			path:     filepath.Join(sep, "a", "x.txt"),
			wantDir:  filepath.Join(sep, "a"),
			wantBase: "x",
			wantExt:  ".txt",
			wantDest: filepath.Join(sep, "a", "x.txt"),
		},
		{
			name:     "double_extension_keeps_last",
			path:     filepath.Join(sep, "a", "archive.tar.gz"),
			wantDir:  filepath.Join(sep, "a"),
			wantBase: "archive.tar",
			wantExt:  ".gz",
			wantDest: filepath.Join(sep, "a", "archive.tar.gz"),
		},
		{
			name:     "no_extension",
			path:     filepath.Join(sep, "a", "Makefile"),
			wantDir:  filepath.Join(sep, "a"),
			wantBase: "Makefile",
			wantExt:  "",
			wantDest: filepath.Join(sep, "a", "Makefile"),
		},
		{
			name:     "output_directory_configured",
			path:     filepath.Join(sep, "a", "x.txt"),
			output:   filepath.Join(sep, "out"),
			wantDir:  filepath.Join(sep, "a"),
			wantBase: "x",
			wantExt:  ".txt",
			wantDest: filepath.Join(sep, "out", "x.txt"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := mustConfig(t, config.Options{OutputDirectory: tt.output})
			rec := NewFileRecord(tt.path, cfg)
			assert.Equal(t, tt.path, rec.Path)
			assert.Equal(t, tt.wantDir, rec.Dir)
			assert.Equal(t, tt.wantBase, rec.Base)
			assert.Equal(t, tt.wantBase, rec.Name, "name should start as the base")
			assert.Equal(t, tt.wantExt, rec.Ext)
			assert.Equal(t, tt.wantDest, rec.Destination())
		})
	}
}

func TestFileRecordDestinationUsesTransformedName(t *testing.T) {
	sep := string(filepath.Separator)
	rec := NewFileRecord(filepath.Join(sep, "a", "x.txt"), mustConfig(t, config.Options{}))
	rec.Name = "y"
	assert.Equal(t, filepath.Join(sep, "a", "y.txt"), rec.Destination())
	assert.Equal(t, ".txt", rec.Ext, "extension should never change")
}

func TestMaterializeOnDisk(t *testing.T) {
	tests := []struct {
		name       string
		copy       bool
		wantStatus status.FileStatus
		wantSource bool
	}{
		{name: "move", copy: false, wantStatus: status.StatusMoved, wantSource: false},
		{name: "copy", copy: true, wantStatus: status.StatusCopied, wantSource: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			dir := t.TempDir()
			src := filepath.Join(dir, "a", "x.txt")
			out := filepath.Join(dir, "out")
			writeFile(t, src, "content")
			require.NoError(t, os.MkdirAll(out, 0755))

			cfg := mustConfig(t, config.Options{OutputDirectory: out, Copy: tt.copy})
			rec := NewFileRecord(src, cfg)
			rec.Name = "y"

			got, err := NewMaterializer(fsys.NewOS()).Materialize(ctx, rec, cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got)
			assert.Equal(t, "content", readFile(t, filepath.Join(out, "y.txt")))
			if tt.wantSource {
				assert.FileExists(t, src)
			} else {
				assert.NoFileExists(t, src)
			}
		})
	}
}

func TestMaterializeForwardsOverwrite(t *testing.T) {
	ctx := testContext(t)
	sep := string(filepath.Separator)
	src := filepath.Join(sep, "a", "x.txt")
	dst := filepath.Join(sep, "a", "y.txt")

	fs := &MockFileManager{}
	fs.On("CopyFile", mock.Anything, src, dst, true).Return(nil)

	cfg := mustConfig(t, config.Options{Copy: true, Overwrite: true})
	rec := NewFileRecord(src, cfg)
	rec.Name = "y"

	got, err := NewMaterializer(fs).Materialize(ctx, rec, cfg)
	require.NoError(t, err)
	assert.Equal(t, status.StatusCopied, got)
	fs.AssertExpectations(t)
}

func TestMaterializeErrors(t *testing.T) {
	sep := string(filepath.Separator)
	src := filepath.Join(sep, "a", "x.txt")
	out := filepath.Join(sep, "out")
	dst := filepath.Join(out, "x.txt")

	tests := []struct {
		name     string
		output   string
		dirGone  bool
		wantGone bool
	}{
		{name: "plain_failure", output: "", wantGone: false},
		{name: "output_directory_still_there", output: out, dirGone: false, wantGone: false},
		{name: "output_directory_gone", output: out, dirGone: true, wantGone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			cfg := mustConfig(t, config.Options{OutputDirectory: tt.output})
			rec := NewFileRecord(src, cfg)

			fs := &MockFileManager{}
			fs.On("MoveFile", mock.Anything, src, rec.Destination(), false).Return(fsys.ErrDestinationExists)
			if tt.output != "" {
				fs.On("DirExists", mock.Anything, out).Return(!tt.dirGone, nil)
			}

			got, err := NewMaterializer(fs).Materialize(ctx, rec, cfg)
			require.Error(t, err)
			assert.Equal(t, status.StatusFailed, got)
			assert.Equal(t, tt.wantGone, errors.Is(err, ErrOutputDirectoryGone))
			if !tt.wantGone {
				assert.ErrorIs(t, err, fsys.ErrDestinationExists, "underlying error should be wrapped")
			}
			if tt.output != "" {
				assert.Equal(t, dst, rec.Destination())
			}
			fs.AssertExpectations(t)
		})
	}
}
