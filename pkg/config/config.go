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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/projrename/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🔒 alwaysIgnored are never read, rewritten or renamed
var alwaysIgnored = []string{".git", ".git/**"}

// 🔄 Replacement represents an extra literal string replacement in files
type Replacement struct {
	Old  string  `json:"old" yaml:"old" hcl:"old"`                                      // Original string to replace
	New  string  `json:"new" yaml:"new" hcl:"new"`                                      // New string to use
	File *string `json:"file,omitempty" yaml:"file,omitempty" hcl:"file,optional"` // Optional doublestar glob restricting the replacement
}

// 📚 Config represents the optional per-project configuration
type Config struct {
	Extensions   []string      `json:"extensions,omitempty" yaml:"extensions,omitempty" hcl:"extensions,optional"`       // Extra file extensions to rewrite
	Ignore       []string      `json:"ignore,omitempty" yaml:"ignore,omitempty" hcl:"ignore,optional"`                   // Doublestar globs relative to the project root
	Replacements []Replacement `json:"replacements,omitempty" yaml:"replacements,omitempty" hcl:"replacement,block"` // Literal replacements applied after the built-in rules

	location string
}

// 🏭 Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{}
}

// Location returns the path the config was loaded from, empty for defaults
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks if the configuration is valid
func Validate(ctx context.Context, cfg *Config) error {
	logger := zerolog.Ctx(ctx)

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 || strings.ContainsAny(ext, `/\`) {
			return errors.Errorf("extensions[%d]: %q must look like \".ext\"", i, ext)
		}
	}

	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("ignore[%d]: invalid glob %q", i, pattern)
		}
	}

	for i, r := range cfg.Replacements {
		if r.Old == "" {
			return errors.Errorf("replacements[%d]: old is required", i)
		}
		if r.File != nil && !doublestar.ValidatePattern(*r.File) {
			return errors.Errorf("replacements[%d]: invalid file glob %q", i, *r.File)
		}
	}

	logger.Debug().
		Int("extensions", len(cfg.Extensions)).
		Int("ignore", len(cfg.Ignore)).
		Int("replacements", len(cfg.Replacements)).
		Msg("config validated")

	return nil
}

// 🙈 IsIgnored reports whether rel, a path relative to the project root, is
// excluded from rewriting and renaming.
func (cfg *Config) IsIgnored(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pattern := range alwaysIgnored {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	for _, pattern := range cfg.Ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// 📋 Literals converts replacements to text literals
func (cfg *Config) Literals() []text.Literal {
	literals := make([]text.Literal, 0, len(cfg.Replacements))
	for _, r := range cfg.Replacements {
		l := text.Literal{Old: r.Old, New: r.New}
		if r.File != nil {
			l.File = *r.File
		}
		literals = append(literals, l)
	}
	return literals
}

// 🧩 Apply extends a mode's rule set with the configured extensions and replacements
func (cfg *Config) Apply(rules text.RuleSet) text.RuleSet {
	return rules.WithExtensions(cfg.Extensions...).WithRules(text.LiteralRules(cfg.Literals())...)
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	loc := cfg.location
	if loc == "" {
		loc = "defaults"
	}
	return fmt.Sprintf("%s (extensions=%d ignore=%d replacements=%d)", loc, len(cfg.Extensions), len(cfg.Ignore), len(cfg.Replacements))
}
