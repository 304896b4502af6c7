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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/walteh/renamer/pkg/config"
)

// 📄 FileRecord is one file under processing
type FileRecord struct {
	Path      string // Full source path
	Dir       string // Source directory
	Base      string // File name without extension
	Ext       string // Extension including the leading dot, never transformed
	Name      string // Transformed base name
	DestDir   string // Resolved destination directory
	StartLog  string
	FinishLog string
}

// 🏭 NewFileRecord splits a source path and resolves its destination directory
func NewFileRecord(path string, cfg *config.BatchConfiguration) *FileRecord {
	dir, file := filepath.Split(path)
	dir = filepath.Clean(dir)
	ext := filepath.Ext(file)
	base := strings.TrimSuffix(file, ext)

	return &FileRecord{
		Path:     path,
		Dir:      dir,
		Base:     base,
		Ext:      ext,
		Name:     base,
		DestDir:  cfg.ResolveOutputDirectory(dir),
		StartLog: fmt.Sprintf("Processing %s", file),
	}
}

// Destination is {resolved directory}/{transformed name}{extension}
func (r *FileRecord) Destination() string {
	return filepath.Join(r.DestDir, r.Name+r.Ext)
}
