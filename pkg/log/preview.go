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
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/walteh/renamer/pkg/operation"
)

// 🔍 FormatNameDiff renders old to new as a word diff: [-removed-]{+added+}
func FormatNameDiff(oldName, newName string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(oldName, newName, false))

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString(color.New(color.FgRed).Sprint("[-" + d.Text + "-]"))
		case diffmatchpatch.DiffInsert:
			b.WriteString(color.New(color.FgGreen).Sprint("{+" + d.Text + "+}"))
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

// 📝 LogPlanItem prints what a batch would do to one file
func (l *Logger) LogPlanItem(ctx context.Context, item operation.PlanItem) {
	l.mu.Lock()
	defer l.mu.Unlock()

	indent := fmt.Sprintf("%*s", fileIndent, "")
	ext := filepath.Ext(item.Source)

	switch {
	case item.Err != nil:
		fmt.Fprintf(l.console, "%s%s %s %s\n", indent,
			color.New(color.FgRed).Sprint("✗"),
			fmt.Sprintf("%-*s", nameWidth, filepath.Base(item.Source)),
			color.New(color.Faint).Sprint(item.Err.Error()))
	case item.Original == item.Name && filepath.Dir(item.Source) == filepath.Dir(item.Destination):
		fmt.Fprintf(l.console, "%s%s %s %s\n", indent,
			color.New(color.FgYellow).Sprint("-"),
			fmt.Sprintf("%-*s", nameWidth, filepath.Base(item.Source)),
			color.New(color.Faint).Sprint("unchanged"))
	default:
		fmt.Fprintf(l.console, "%s%s %s%s %s\n", indent,
			color.New(color.FgBlue).Sprint("⟳"),
			FormatNameDiff(item.Original, item.Name),
			ext,
			color.New(color.Faint).Sprint("→ "+item.Destination))
	}

	ev := l.zlog.Info().
		Str("source", item.Source).
		Str("destination", item.Destination)
	if item.Err != nil {
		ev = ev.Err(item.Err)
	}
	ev.Msg("planned file")
}
