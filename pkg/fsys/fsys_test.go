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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "creating parent directories")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing file")
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err, "reading file")
	return string(content)
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestExists(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	writeFile(t, file, "a")

	m := NewOS()

	exists, err := m.FileExists(ctx, file)
	require.NoError(t, err)
	assert.True(t, exists, "file should exist")

	exists, err = m.FileExists(ctx, dir)
	require.NoError(t, err)
	assert.False(t, exists, "a directory is not a file")

	exists, err = m.FileExists(ctx, filepath.Join(dir, "missing.txt"))
	require.NoError(t, err)
	assert.False(t, exists, "missing file should not exist")

	exists, err = m.DirExists(ctx, dir)
	require.NoError(t, err)
	assert.True(t, exists, "directory should exist")

	exists, err = m.DirExists(ctx, file)
	require.NoError(t, err)
	assert.False(t, exists, "a file is not a directory")

	exists, err = m.DirExists(ctx, filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, exists, "missing directory should not exist")
}

func TestSameFile(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "src", "a.txt")
	other := filepath.Join(dir, "src", "b.txt")
	writeFile(t, file, "a")
	writeFile(t, other, "a")
	require.NoError(t, os.Symlink(filepath.Join(dir, "src"), filepath.Join(dir, "link")), "creating symlink")
	require.NoError(t, os.Link(file, filepath.Join(dir, "hard.txt")), "creating hardlink")

	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{name: "same_path", a: file, b: file, want: true},
		{name: "through_symlinked_directory", a: file, b: filepath.Join(dir, "link", "a.txt"), want: true},
		{name: "hardlink", a: file, b: filepath.Join(dir, "hard.txt"), want: true},
		{name: "different_files_same_content", a: file, b: other, want: false},
		{name: "missing_path", a: file, b: filepath.Join(dir, "missing.txt"), want: false},
	}

	m := NewOS()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			same, err := m.SameFile(ctx, tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, same)
		})
	}
}

func TestDeleteFile(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "a.txt")
	writeFile(t, file, "a")

	m := NewOS()
	require.NoError(t, m.DeleteFile(ctx, file))
	_, err := os.Stat(file)
	assert.True(t, os.IsNotExist(err), "file should be gone")

	err = m.DeleteFile(ctx, file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deleting file")
}

func TestCopyFile(t *testing.T) {
	tests := []struct {
		name        string
		existing    bool
		overwrite   bool
		wantErr     bool
		wantContent string
	}{
		{name: "new_destination", wantContent: "source"},
		{name: "existing_destination_overwrite", existing: true, overwrite: true, wantContent: "source"},
		{name: "existing_destination_no_overwrite", existing: true, wantErr: true, wantContent: "old"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			dir := t.TempDir()
			src := filepath.Join(dir, "src", "a.txt")
			dst := filepath.Join(dir, "dst", "b.txt")
			writeFile(t, src, "source")
			require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0755))
			if tt.existing {
				writeFile(t, dst, "old")
			}

			err := NewOS().CopyFile(ctx, src, dst, tt.overwrite)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrDestinationExists), "error should wrap ErrDestinationExists")
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, "source", readFile(t, src), "source should be untouched")
			assert.Equal(t, tt.wantContent, readFile(t, dst))
			assert.Equal(t, []string{"b.txt"}, listDir(t, filepath.Dir(dst)), "no temp files should be left behind")
		})
	}
}

func TestCopyFileCancelled(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	writeFile(t, src, "source")

	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	err := NewOS().CopyFile(ctx, src, dst, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "error should wrap context.Canceled")
	assert.Equal(t, []string{"a.txt"}, listDir(t, dir), "an abandoned copy should leave nothing behind")
}

func TestCopyFileMissingDestinationDirectory(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	writeFile(t, src, "source")

	err := NewOS().CopyFile(ctx, src, filepath.Join(dir, "missing", "b.txt"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating temp file")
}

func TestMoveFile(t *testing.T) {
	tests := []struct {
		name        string
		existing    bool
		overwrite   bool
		wantErr     bool
		wantContent string
	}{
		{name: "new_destination", wantContent: "source"},
		{name: "existing_destination_overwrite", existing: true, overwrite: true, wantContent: "source"},
		{name: "existing_destination_no_overwrite", existing: true, wantErr: true, wantContent: "old"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			dir := t.TempDir()
			src := filepath.Join(dir, "a.txt")
			dst := filepath.Join(dir, "out", "b.txt")
			writeFile(t, src, "source")
			require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0755))
			if tt.existing {
				writeFile(t, dst, "old")
			}

			err := NewOS().MoveFile(ctx, src, dst, tt.overwrite)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrDestinationExists), "error should wrap ErrDestinationExists")
				assert.Equal(t, "source", readFile(t, src), "source should stay when the move is refused")
			} else {
				require.NoError(t, err)
				_, statErr := os.Stat(src)
				assert.True(t, os.IsNotExist(statErr), "source should be gone after a move")
			}
			assert.Equal(t, tt.wantContent, readFile(t, dst))
		})
	}
}

func TestMoveFileMissingSource(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()

	err := NewOS().MoveFile(ctx, filepath.Join(dir, "missing.txt"), filepath.Join(dir, "b.txt"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "renaming file")
}
