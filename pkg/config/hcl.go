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

package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the profile from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Profile, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "profile.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclProfile struct {
		Replace *struct {
			Search string `hcl:"search"`
			With   string `hcl:"with,optional"`
		} `hcl:"replace,block"`
		Substring *struct {
			From *int `hcl:"from,optional"`
			To   *int `hcl:"to,optional"`
		} `hcl:"substring,block"`
		Trim      bool     `hcl:"trim,optional"`
		Case      string   `hcl:"case,optional"`
		Output    string   `hcl:"output,optional"`
		Copy      bool     `hcl:"copy,optional"`
		Overwrite bool     `hcl:"overwrite,optional"`
		Ignore    []string `hcl:"ignore,optional"`
	}

	// Decode HCL
	var raw hclProfile
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &raw)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	profile := &Profile{
		Trim:      raw.Trim,
		Case:      raw.Case,
		Output:    raw.Output,
		Copy:      raw.Copy,
		Overwrite: raw.Overwrite,
		Ignore:    raw.Ignore,
	}
	if raw.Replace != nil {
		profile.Replace = &ReplaceArgs{
			Search: raw.Replace.Search,
			With:   raw.Replace.With,
		}
	}
	if raw.Substring != nil {
		profile.Substring = &SubstringArgs{
			From: raw.Substring.From,
			To:   raw.Substring.To,
		}
	}

	return profile, nil
}
