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
	"context"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/projrename/pkg/config"
	"github.com/walteh/projrename/pkg/log"
	"github.com/walteh/projrename/pkg/status"
	"github.com/walteh/projrename/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🏷️ renamePolicy decides which files are renamed and how
type renamePolicy struct {
	// bottomUp visits deeper paths first
	bottomUp bool
	// extensions limits renames to these extensions, nil means any
	extensions []string
	// prefix requires the name to start with the old identifier, otherwise
	// it may appear anywhere in the name, in any case
	prefix bool
}

var (
	// project and solution files starting with the old name
	conservativeRename = renamePolicy{extensions: []string{".csproj", ".sln"}, prefix: true}
	// any file containing the old name
	aggressiveRename = renamePolicy{bottomUp: true}
)

// renamer returns the base name mapping for one run. The old name pattern is
// compiled once here, not per file.
func (p renamePolicy) renamer(oldName, newName string) func(name string) (string, bool) {
	var pattern *regexp.Regexp
	if !p.prefix {
		pattern = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(oldName))
	}

	return func(name string) (string, bool) {
		if p.extensions != nil && !slices.Contains(p.extensions, filepath.Ext(name)) {
			return "", false
		}

		var renamed string
		if p.prefix {
			if !strings.HasPrefix(name, oldName) {
				return "", false
			}
			renamed = strings.ReplaceAll(name, oldName, newName)
		} else {
			renamed = pattern.ReplaceAllStringFunc(name, func(match string) string {
				return text.AdaptCase(match, newName)
			})
		}

		if renamed == name {
			return "", false
		}
		return renamed, true
	}
}

// ⚙️ propagator runs the content rewrite and file rename phases over root
type propagator struct {
	mgr     *status.Manager
	cfg     *config.Config
	cfgRel  string
	root    string
	oldName string
	newName string
	rules   text.RuleSet
	rename  renamePolicy
	// noRename skips the rename phase entirely
	noRename bool
}

type propagation struct {
	updated      int
	renamed      int
	replacements int
}

// 🚶 collect lists regular files under root in lexical order, skipping
// ignored paths and the config file.
func (p *propagator) collect(ctx context.Context) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	var files []string
	err := p.mgr.Walk(ctx, p.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == p.root {
			return nil
		}

		rel, err := filepath.Rel(p.root, path)
		if err != nil {
			return errors.Errorf("relative path of %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		if p.cfg.IsIgnored(rel) {
			logger.Debug().Str("path", rel).Msg("ignored")
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() || !info.Mode().IsRegular() || rel == p.cfgRel {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Errorf("walking %s: %w", p.root, err)
	}
	return files, nil
}

func (p *propagator) rel(path string) string {
	rel, err := filepath.Rel(p.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// 🔄 rewrite applies the rule set to every eligible file, writing only files
// whose bytes changed.
func (p *propagator) rewrite(ctx context.Context, files []string, out *propagation) error {
	logger := zerolog.Ctx(ctx)
	ulog := log.FromContext(ctx)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("rewrite interrupted: %w", err)
		}
		if !p.rules.Eligible(path) {
			continue
		}

		rel := p.rel(path)
		logger.Debug().Str("file", rel).Msg("processing file")

		content, err := p.mgr.ReadFile(ctx, path)
		if err != nil {
			return err
		}

		result, err := p.rules.Apply(ctx, rel, content)
		if err != nil {
			return errors.Errorf("applying rules to %s: %w", rel, err)
		}

		if !result.WasModified {
			p.mgr.TrackScanned(path)
			continue
		}

		if err := p.mgr.WriteFileAtomic(ctx, path, result.ModifiedContent); err != nil {
			return errors.Errorf("updating %s: %w", rel, err)
		}
		p.mgr.TrackUpdated(path, result.ReplacementCount, result.ModifiedContent)

		out.updated++
		out.replacements += result.ReplacementCount
		ulog.LogFileOperation(ctx, log.FileOperation{
			Path:         rel,
			IsUpdated:    true,
			Replacements: result.ReplacementCount,
			DryRun:       p.mgr.DryRun(),
		})
	}
	return nil
}

// 🏷️ renameFiles renames files whose names embed the old identifier
func (p *propagator) renameFiles(ctx context.Context, files []string, out *propagation) error {
	ulog := log.FromContext(ctx)

	ordered := files
	if p.rename.bottomUp {
		ordered = make([]string, len(files))
		for i, f := range files {
			ordered[len(files)-1-i] = f
		}
	}

	target := p.rename.renamer(p.oldName, p.newName)
	for _, path := range ordered {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("rename interrupted: %w", err)
		}

		newBase, ok := target(filepath.Base(path))
		if !ok {
			continue
		}
		newPath := filepath.Join(filepath.Dir(path), newBase)

		if err := p.mgr.Rename(ctx, path, newPath); err != nil {
			return errors.Errorf("renaming %s: %w", p.rel(path), err)
		}
		p.mgr.TrackRenamed(path, newPath)

		out.renamed++
		ulog.LogFileOperation(ctx, log.FileOperation{
			Path:      p.rel(path),
			RenamedTo: p.rel(newPath),
			IsRenamed: true,
			DryRun:    p.mgr.DryRun(),
		})
	}
	return nil
}

// 🏃 run executes both phases and fills in the summary counts
func (p *propagator) run(ctx context.Context, summary *Summary) error {
	ulog := log.FromContext(ctx)

	ulog.StartRunOperation(ctx, log.RunOperation{
		Mode:    string(summary.Mode),
		Root:    p.root,
		OldName: p.oldName,
		NewName: p.newName,
		DryRun:  p.mgr.DryRun(),
	})

	files, err := p.collect(ctx)
	if err != nil {
		return err
	}

	var out propagation
	if err := p.rewrite(ctx, files, &out); err != nil {
		return err
	}

	if !p.noRename {
		if err := p.renameFiles(ctx, files, &out); err != nil {
			return err
		}
	}

	counts := p.mgr.Counts()
	summary.Scanned = counts.Scanned
	summary.Updated = out.updated
	summary.Renamed = out.renamed
	summary.Replacements = out.replacements

	ulog.EndRunOperation(ctx, log.Summary{
		Scanned:      summary.Scanned,
		Updated:      summary.Updated,
		Renamed:      summary.Renamed,
		Replacements: summary.Replacements,
	})
	return nil
}
