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
	"github.com/walteh/renamer/pkg/config"
	"github.com/walteh/renamer/pkg/text"
)

// 🔍 PlanItem is what a batch would do to one file
type PlanItem struct {
	Source      string
	Destination string
	Original    string      // Base name before transformation
	Name        string      // Base name after transformation
	Changed     []text.Step // Steps that changed the name
	Err         error       // Transformation error, the file would be skipped
}

// 🔍 Preview runs the transformer over files without touching the disk.
// Destination checks need the filesystem and are left to the real run.
func Preview(files []string, cfg *config.BatchConfiguration) []PlanItem {
	transformer := text.NewNameTransformer()
	items := make([]PlanItem, 0, len(files))

	for _, path := range files {
		rec := NewFileRecord(path, cfg)
		item := PlanItem{
			Source:   rec.Path,
			Original: rec.Base,
			Name:     rec.Base,
		}

		result, err := transformer.Transform(rec.Base, cfg)
		if err != nil {
			item.Err = err
		} else {
			rec.Name = result.Name
			item.Name = result.Name
			item.Changed = result.Changed
		}
		item.Destination = rec.Destination()
		items = append(items, item)
	}

	return items
}
