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

package opts

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/renamer/pkg/config"
	"github.com/walteh/renamer/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Logger     *log.Logger
	Debug      bool
	NoProgress bool
}

// BatchOpts holds the flags that describe a batch
type BatchOpts struct {
	Search    string
	Replace   string
	From      string
	To        string
	Trim      bool
	Upper     bool
	Output    string
	Copy      bool
	Overwrite bool
	Profile   string
	Ignore    []string
	Stdin     bool
}

// AddFlags registers the batch flags on fs
func (b *BatchOpts) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&b.Search, "search", "", "literal text to replace in each name")
	fs.StringVar(&b.Replace, "replace", "", "replacement for --search, empty deletes")
	fs.StringVar(&b.From, "from", "", "substring start index (runes, inclusive)")
	fs.StringVar(&b.To, "to", "", "substring end index (runes, exclusive)")
	fs.BoolVar(&b.Trim, "trim", false, "trim leading and trailing whitespace")
	fs.BoolVar(&b.Upper, "upper", false, "force the name to upper case")
	fs.StringVarP(&b.Output, "output", "o", "", "output directory, defaults to each file's own directory")
	fs.BoolVar(&b.Copy, "copy", false, "copy files instead of moving them")
	fs.BoolVar(&b.Overwrite, "overwrite", false, "replace existing destinations")
	fs.StringVarP(&b.Profile, "profile", "p", "", "profile file (.yaml, .json or .hcl); a relative output path resolves against its directory")
	fs.StringSliceVar(&b.Ignore, "ignore", nil, "doublestar patterns of files to leave alone")
	fs.BoolVar(&b.Stdin, "stdin", false, "read newline separated paths from stdin")
}

// Resolve merges the profile, if any, with the flags that were set and
// builds the batch configuration. Flags win over the profile.
func (b *BatchOpts) Resolve(ctx context.Context, fs *pflag.FlagSet) (*config.BatchConfiguration, []string, error) {
	var options config.Options
	var ignore []string

	if b.Profile != "" {
		profile, err := config.LoadProfile(ctx, b.Profile)
		if err != nil {
			return nil, nil, errors.Errorf("loading profile: %w", err)
		}
		options = profile.Options()
		ignore = append(ignore, profile.Ignore...)
		zerolog.Ctx(ctx).Debug().Str("profile", b.Profile).Msg("loaded profile")
	}

	changed := func(name string) bool {
		return fs != nil && fs.Changed(name)
	}

	if changed("search") {
		options.Search = b.Search
	}
	if changed("replace") {
		options.Replace = b.Replace
	}
	if changed("from") {
		options.From = b.From
	}
	if changed("to") {
		options.To = b.To
	}
	if changed("trim") {
		options.Trim = b.Trim
	}
	if changed("upper") {
		options.Case = config.CaseLeave.String()
		if b.Upper {
			options.Case = config.CaseForceUpper.String()
		}
	}
	if changed("output") {
		options.OutputDirectory = b.Output
	}
	if changed("copy") {
		options.Copy = b.Copy
	}
	if changed("overwrite") {
		options.Overwrite = b.Overwrite
	}
	ignore = append(ignore, b.Ignore...)

	if options.OutputDirectory != "" {
		abs, err := filepath.Abs(options.OutputDirectory)
		if err != nil {
			return nil, nil, errors.Errorf("resolving output directory: %w", err)
		}
		options.OutputDirectory = abs
	}

	cfg, err := config.New(options)
	if err != nil {
		return nil, nil, err
	}
	return cfg, ignore, nil
}
