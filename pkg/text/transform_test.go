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

package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/renamer/pkg/config"
	"gitlab.com/tozd/go/errors"
)

func mustConfig(t *testing.T, opts config.Options) *config.BatchConfiguration {
	t.Helper()
	cfg, err := config.New(opts)
	require.NoError(t, err, "building configuration")
	return cfg
}

func TestNameTransformer_Transform(t *testing.T) {
	tests := []struct {
		name             string
		input            string
		opts             config.Options
		want             string
		wantChanged      []Step
		wantReplacements int
		wantErr          bool
	}{
		{
			name:  "no_steps_enabled",
			input: "report",
			opts:  config.Options{},
			want:  "report",
		},
		{
			name:             "replace_every_occurrence",
			input:            "foo123foo",
			opts:             config.Options{Search: "foo", Replace: "bar"},
			want:             "bar123bar",
			wantChanged:      []Step{StepReplace},
			wantReplacements: 2,
		},
		{
			name:             "empty_replacement_deletes",
			input:            "IMG_0001",
			opts:             config.Options{Search: "IMG_"},
			want:             "0001",
			wantChanged:      []Step{StepReplace},
			wantReplacements: 1,
		},
		{
			name:  "replace_without_match",
			input: "notes",
			opts:  config.Options{Search: "xyz", Replace: "abc"},
			want:  "notes",
		},
		{
			name:        "substring_both_bounds",
			input:       "holiday",
			opts:        config.Options{From: "1", To: "4"},
			want:        "oli",
			wantChanged: []Step{StepSubstring},
		},
		{
			name:        "substring_zero_zero_is_empty",
			input:       "holiday",
			opts:        config.Options{From: "0", To: "0"},
			want:        "",
			wantChanged: []Step{StepSubstring},
		},
		{
			name:  "substring_whole_name",
			input: "holiday",
			opts:  config.Options{From: "0", To: "7"},
			want:  "holiday",
		},
		{
			name:        "substring_from_only_runs_to_end",
			input:       "holiday",
			opts:        config.Options{From: "4"},
			want:        "day",
			wantChanged: []Step{StepSubstring},
		},
		{
			name:  "substring_to_only_is_a_noop",
			input: "holiday",
			opts:  config.Options{To: "4"},
			want:  "holiday",
		},
		{
			name:        "substring_counts_runes",
			input:       "żółw-01",
			opts:        config.Options{From: "0", To: "4"},
			want:        "żółw",
			wantChanged: []Step{StepSubstring},
		},
		{
			name:    "substring_inverted_bounds",
			input:   "abcdefgh",
			opts:    config.Options{From: "5", To: "2"},
			wantErr: true,
		},
		{
			name:    "substring_past_end",
			input:   "abc",
			opts:    config.Options{From: "1", To: "4"},
			wantErr: true,
		},
		{
			name:    "substring_from_past_end",
			input:   "abc",
			opts:    config.Options{From: "5"},
			wantErr: true,
		},
		{
			name:        "substring_sees_replaced_name",
			input:       "ab",
			opts:        config.Options{Search: "a", Replace: "xyz", From: "0", To: "3"},
			want:        "xyz",
			wantChanged: []Step{StepReplace, StepSubstring},
			// length 2 before replace, 4 after; bounds are checked against the replaced name
			wantReplacements: 1,
		},
		{
			name:        "trim_whitespace",
			input:       "  padded name \t",
			opts:        config.Options{Trim: true},
			want:        "padded name",
			wantChanged: []Step{StepTrim},
		},
		{
			name:        "trim_after_substring",
			input:       "xx  mid  xx",
			opts:        config.Options{From: "2", To: "9", Trim: true},
			want:        "mid",
			wantChanged: []Step{StepSubstring, StepTrim},
		},
		{
			name:        "force_upper",
			input:       "Mixed_Case",
			opts:        config.Options{Case: "upper"},
			want:        "MIXED_CASE",
			wantChanged: []Step{StepCase},
		},
		{
			name:  "leave_case",
			input: "Mixed_Case",
			opts:  config.Options{Case: "leave"},
			want:  "Mixed_Case",
		},
		{
			name:             "all_steps_in_order",
			input:            "draft  report  v2",
			opts:             config.Options{Search: "draft", Replace: " final", From: "0", To: "15", Trim: true, Case: "upper"},
			want:             "FINAL  REPORT",
			wantChanged:      []Step{StepReplace, StepSubstring, StepTrim, StepCase},
			wantReplacements: 1,
		},
		{
			name:             "replace_runs_before_case",
			input:            "foo",
			opts:             config.Options{Search: "FOO", Replace: "bar", Case: "upper"},
			want:             "FOO",
			wantChanged:      []Step{StepCase},
			wantReplacements: 0,
		},
	}

	transformer := NewNameTransformer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := transformer.Transform(tt.input, mustConfig(t, tt.opts))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidBounds), "error should wrap ErrInvalidBounds")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input, result.Original, "original name should be kept")
			assert.Equal(t, tt.want, result.Name, "transformed name should match")
			assert.Equal(t, tt.wantChanged, result.Changed, "changed steps should match")
			assert.Equal(t, tt.wantReplacements, result.Replacements, "replacement count should match")
			assert.Equal(t, len(tt.wantChanged) > 0, result.WasModified())
		})
	}
}

func TestTrimAloneMatchesFullPipeline(t *testing.T) {
	inputs := []string{"  a  ", "b", "\tc d\n", ""}
	transformer := NewNameTransformer()

	for _, input := range inputs {
		trimOnly, err := transformer.Transform(input, mustConfig(t, config.Options{Trim: true}))
		require.NoError(t, err)

		full, err := transformer.Transform(input, mustConfig(t, config.Options{Search: "", From: "", To: "", Trim: true, Case: "leave"}))
		require.NoError(t, err)

		assert.Equal(t, full.Name, trimOnly.Name, "trim alone should match the pipeline with other steps disabled for %q", input)
	}
}

func TestTransformIsIdempotent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  config.Options
	}{
		{name: "replace", input: "foo123", opts: config.Options{Search: "foo", Replace: "bar"}},
		{name: "trim_and_upper", input: "  shout ", opts: config.Options{Trim: true, Case: "upper"}},
		{name: "replace_trim_upper", input: " a-b-c ", opts: config.Options{Search: "-", Replace: "_", Trim: true, Case: "upper"}},
	}

	transformer := NewNameTransformer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := mustConfig(t, tt.opts)

			first, err := transformer.Transform(tt.input, cfg)
			require.NoError(t, err)

			second, err := transformer.Transform(first.Name, cfg)
			require.NoError(t, err)

			assert.Equal(t, first.Name, second.Name, "second pass should not change the name")
			assert.False(t, second.WasModified())
		})
	}
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "replace", StepReplace.String())
	assert.Equal(t, "substring", StepSubstring.String())
	assert.Equal(t, "trim", StepTrim.String())
	assert.Equal(t, "case", StepCase.String())
	assert.Equal(t, "unknown", Step(42).String())
}
