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

package provider

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range []string{
		"a.txt",
		"b.txt",
		"c.jpg",
		"photos/one.jpg",
		"photos/two.jpg",
		"photos/thumbs/one.jpg",
	} {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(f), 0644))
	}
	return dir
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestLocalListFiles(t *testing.T) {
	tests := []struct {
		name      string
		patterns  []string
		ignore    []string
		want      []string
		unordered bool
		wantErr   error
	}{
		{
			name:     "literal_paths_keep_order",
			patterns: []string{"b.txt", "a.txt"},
			want:     []string{"b.txt", "a.txt"},
		},
		{
			name:     "glob_in_one_directory",
			patterns: []string{"*.txt"},
			want:     []string{"a.txt", "b.txt"},
		},
		{
			name:      "recursive_glob",
			patterns:  []string{"**/*.jpg"},
			want:      []string{"c.jpg", "photos/one.jpg", "photos/thumbs/one.jpg", "photos/two.jpg"},
			unordered: true,
		},
		{
			name:      "ignore_by_path",
			patterns:  []string{"**/*.jpg"},
			ignore:    []string{"**/thumbs/**"},
			want:      []string{"c.jpg", "photos/one.jpg", "photos/two.jpg"},
			unordered: true,
		},
		{
			name:     "ignore_by_name",
			patterns: []string{"*.txt"},
			ignore:   []string{"a.*"},
			want:     []string{"b.txt"},
		},
		{
			name:     "duplicates_keep_first_position",
			patterns: []string{"b.txt", "*.txt"},
			want:     []string{"b.txt", "a.txt"},
		},
		{
			name:     "directories_are_skipped",
			patterns: []string{"photos", "a.txt"},
			want:     []string{"a.txt"},
		},
		{
			name:     "no_matches",
			patterns: []string{"*.png"},
			want:     nil,
		},
		{
			name:     "missing_literal_path",
			patterns: []string{"nope.txt"},
			wantErr:  ErrSourceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			dir := setupTree(t)

			got, err := NewLocal().ListFiles(ctx, Args{Patterns: tt.patterns, Ignore: tt.ignore, Dir: dir})
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			var want []string
			for _, w := range tt.want {
				want = append(want, filepath.Join(dir, filepath.FromSlash(w)))
			}
			if tt.unordered {
				assert.ElementsMatch(t, want, got)
				return
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestLocalAbsolutePattern(t *testing.T) {
	ctx := testContext(t)
	dir := setupTree(t)

	got, err := NewLocal().ListFiles(ctx, Args{Patterns: []string{filepath.Join(dir, "a.txt")}, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.txt")}, got)
}

func TestInvalidIgnorePattern(t *testing.T) {
	_, err := NewLocal().ListFiles(testContext(t), Args{Patterns: []string{"a.txt"}, Ignore: []string{"["}, Dir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ignore pattern")
}

func TestListListFiles(t *testing.T) {
	ctx := testContext(t)
	dir := setupTree(t)

	input := strings.Join([]string{
		"# files to rename",
		"b.txt",
		"",
		"  photos/one.jpg  ",
		filepath.Join(dir, "a.txt"),
		"b.txt",
	}, "\n")

	got, err := NewList().ListFiles(ctx, Args{Dir: dir, Input: strings.NewReader(input)})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "photos", "one.jpg"),
		filepath.Join(dir, "a.txt"),
	}, got)
}

func TestListRequiresInput(t *testing.T) {
	_, err := NewList().ListFiles(testContext(t), Args{Dir: t.TempDir()})
	require.Error(t, err)
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"list", "local"}, Names())

	factory := Get("local")
	require.NotNil(t, factory)
	p, err := factory(testContext(t))
	require.NoError(t, err)
	assert.IsType(t, &Local{}, p)

	assert.Nil(t, Get("github"), "unknown providers should not resolve")
}
