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
	"fmt"
	"path/filepath"
)

// Message templates
const (
	MsgProgress = "%s Progress: %d/%d (%.0f%%)"

	EmojiProgress = "⏳"
	EmojiComplete = "✅"
)

// FileFormatter defines how file outcomes and progress should be formatted
type FileFormatter interface {
	// FormatFileOperation formats the outcome of one file
	FormatFileOperation(src, dst string, status FileStatus, reason string) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFileOperation formats a file outcome with emojis
func (f *DefaultFileFormatter) FormatFileOperation(src, dst string, status FileStatus, reason string) string {
	name := filepath.Base(src)
	var msg string
	switch status {
	case StatusMoved:
		msg = fmt.Sprintf("✨ Moved %s -> %s", name, dst)
	case StatusCopied:
		msg = fmt.Sprintf("📄 Copied %s -> %s", name, dst)
	case StatusOverwritten:
		msg = fmt.Sprintf("📝 Overwrote %s with %s", dst, name)
	case StatusSkipped:
		msg = fmt.Sprintf("⏭️  Skipped %s", name)
	case StatusFailed:
		msg = fmt.Sprintf("❌ Failed %s", name)
	default:
		msg = fmt.Sprintf("👍 Processed %s", name)
	}
	if reason != "" {
		msg += fmt.Sprintf(" (%s)", reason)
	}
	return msg
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	if current < 0 {
		current = 0
	}
	if total < 0 {
		total = 0
	}

	var percentage float64
	if total > 0 {
		percentage = float64(current) / float64(total) * 100
		if percentage > 100 {
			percentage = 100
		}
	}

	emoji := EmojiProgress
	if current >= total {
		emoji = EmojiComplete
	}
	return fmt.Sprintf(MsgProgress, emoji, current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
