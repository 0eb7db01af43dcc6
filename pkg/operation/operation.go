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
	"path/filepath"
	"strings"

	"github.com/walteh/projrename/pkg/config"
	"github.com/walteh/projrename/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🚦 Validation errors. Each is returned before anything is modified.
var (
	ErrSourceNotFound      = errors.Base("source directory does not exist")
	ErrTargetExists        = errors.Base("target directory already exists")
	ErrDirectoryNotFound   = errors.Base("directory does not exist")
	ErrOriginalNameUnknown = errors.Base("could not detect original project name from AssemblyName in .csproj")
	ErrDryRunUnsupported   = errors.Base("dry run is not supported for this operation")
	ErrInvalidName         = errors.Base("invalid project name")
)

// 🎛️ Mode selects how names are derived and which rules apply
type Mode string

const (
	ModeClone   Mode = "clone"
	ModeRealign Mode = "realign"
	ModeRepair  Mode = "repair"
)

// 🎯 Operation is a single propagation run
type Operation interface {
	// Mode returns the kind of run
	Mode() Mode
	// Execute validates its inputs, then rewrites and renames files
	Execute(ctx context.Context) (*Summary, error)
}

// 🔧 Options contains what every operation needs
type Options struct {
	// Status performs and records every filesystem change
	Status *status.Manager
	// Config overrides the config discovered in the project root
	Config *config.Config
}

// 📊 Summary is the outcome of a run
type Summary struct {
	Mode    Mode
	Root    string
	OldName string
	NewName string
	DryRun  bool

	Copied       int
	Scanned      int
	Updated      int
	Renamed      int
	Replacements int
}

func validateOptions(opts Options) error {
	if opts.Status == nil {
		return errors.Errorf("status manager is required")
	}
	return nil
}

func validateName(name string) error {
	if name == "" || name == "." || name == string(filepath.Separator) {
		return errors.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// 🔧 loadConfig returns the configured override or the config found in dir
func loadConfig(ctx context.Context, opts Options, dir string) (*config.Config, error) {
	if opts.Config != nil {
		return opts.Config, nil
	}
	cfg, err := config.LoadOrDefault(ctx, opts.Status.Filesystem(), dir)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// configRel returns the config file path relative to root, or "" when the
// config lives outside it.
func configRel(cfg *config.Config, root string) string {
	loc := cfg.Location()
	if loc == "" {
		return ""
	}
	rel, err := filepath.Rel(root, loc)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return filepath.ToSlash(rel)
}
