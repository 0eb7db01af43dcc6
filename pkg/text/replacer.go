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
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Rule is a single pattern substitution
type Rule struct {
	// Name identifies the rule in logs
	Name string

	// Pattern is matched against the whole file content
	Pattern *regexp.Regexp

	// Template is expanded for each match ($1 / ${1} refer to capture groups).
	// Ignored when Func is set.
	Template string

	// Func computes the replacement from the matched text
	Func func(match string) string

	// FileFilterGlob restricts the rule to paths matching this doublestar glob
	FileFilterGlob string
}

// 📊 ReplacementResult contains the results of applying a rule set to content
type ReplacementResult struct {
	// WasModified is true only when ModifiedContent differs from OriginalContent
	WasModified bool

	// ReplacementCount is the number of matches whose replacement changed the text
	ReplacementCount int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// 📚 RuleSet is an ordered list of rules plus the file extensions they apply to
type RuleSet struct {
	Name       string
	Rules      []Rule
	Extensions []string
}

// 🔍 Eligible reports whether a file with this path should be opened at all
func (s RuleSet) Eligible(path string) bool {
	ext := filepath.Ext(path)
	if ext == "" {
		return false
	}
	for _, e := range s.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// ➕ WithExtensions returns a copy of the set that also accepts the given extensions
func (s RuleSet) WithExtensions(exts ...string) RuleSet {
	out := s
	out.Extensions = append([]string(nil), s.Extensions...)
	for _, ext := range exts {
		if !s.Eligible("x" + ext) {
			out.Extensions = append(out.Extensions, ext)
		}
	}
	return out
}

// ➕ WithRules returns a copy of the set with rules appended after the existing ones
func (s RuleSet) WithRules(rules ...Rule) RuleSet {
	out := s
	out.Rules = append(append([]Rule(nil), s.Rules...), rules...)
	return out
}

// 🔄 Apply runs every rule in order over content. path is the slash separated
// path used for FileFilterGlob matching.
func (s RuleSet) Apply(ctx context.Context, path string, content []byte) (*ReplacementResult, error) {
	logger := zerolog.Ctx(ctx)

	result := &ReplacementResult{
		OriginalContent: content,
	}

	current := string(content)
	for _, rule := range s.Rules {
		if rule.Pattern == nil {
			return nil, errors.Errorf("rule %q: pattern is required", rule.Name)
		}

		if rule.FileFilterGlob != "" {
			matched, err := doublestar.Match(rule.FileFilterGlob, filepath.ToSlash(path))
			if err != nil {
				return nil, errors.Errorf("rule %q: matching file filter: %w", rule.Name, err)
			}
			if !matched {
				continue
			}
		}

		next, count := rule.replace(current)
		if count > 0 {
			logger.Trace().Str("rule", rule.Name).Str("file", path).Int("count", count).Msg("rule applied")
		}
		result.ReplacementCount += count
		current = next
	}

	result.ModifiedContent = []byte(current)
	result.WasModified = !bytes.Equal(result.OriginalContent, result.ModifiedContent)
	return result, nil
}

// replace mirrors regexp.ReplaceAllString but also counts the matches whose
// replacement differs from the matched text.
func (r Rule) replace(src string) (string, int) {
	matches := r.Pattern.FindAllStringSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src, 0
	}

	var buf strings.Builder
	buf.Grow(len(src))

	count := 0
	last := 0
	for _, m := range matches {
		buf.WriteString(src[last:m[0]])

		matched := src[m[0]:m[1]]
		var repl string
		if r.Func != nil {
			repl = r.Func(matched)
		} else {
			repl = string(r.Pattern.ExpandString(nil, r.Template, src, m))
		}

		if repl != matched {
			count++
		}
		buf.WriteString(repl)
		last = m[1]
	}
	buf.WriteString(src[last:])

	return buf.String(), count
}

// 🔍 Validate checks that all rules in the set are usable
func (s RuleSet) Validate() error {
	for i, rule := range s.Rules {
		if rule.Pattern == nil {
			return errors.Errorf("rule %d (%s): pattern is required", i, rule.Name)
		}
		if rule.FileFilterGlob != "" && !doublestar.ValidatePattern(rule.FileFilterGlob) {
			return errors.Errorf("rule %d (%s): invalid file filter glob %q", i, rule.Name, rule.FileFilterGlob)
		}
	}
	return nil
}
