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

	"github.com/rs/zerolog"
	"github.com/walteh/projrename/pkg/log"
	"github.com/walteh/projrename/pkg/project"
	"github.com/walteh/projrename/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📦 NewCloneOperation creates an operation that copies source to target and
// renames the copy after target's base name
func NewCloneOperation(opts Options, source, target string) Operation {
	return &cloneOperation{
		opts:   opts,
		source: source,
		target: target,
	}
}

// 📦 cloneOperation implements the clone operation
type cloneOperation struct {
	opts   Options
	source string
	target string
}

func (op *cloneOperation) Mode() Mode {
	return ModeClone
}

// 🏃 Execute runs the clone operation
func (op *cloneOperation) Execute(ctx context.Context) (*Summary, error) {
	if err := validateOptions(op.opts); err != nil {
		return nil, err
	}
	mgr := op.opts.Status
	if mgr.DryRun() {
		return nil, errors.Errorf("%w: %s", ErrDryRunUnsupported, ModeClone)
	}

	oldName := project.NameFromDir(op.source)
	newName := project.NameFromDir(op.target)
	if err := validateName(oldName); err != nil {
		return nil, err
	}
	if err := validateName(newName); err != nil {
		return nil, err
	}

	isDir, err := mgr.IsDir(ctx, op.source)
	if err != nil {
		return nil, err
	}
	if !isDir {
		return nil, errors.Errorf("%w: %s", ErrSourceNotFound, op.source)
	}

	exists, err := mgr.Exists(ctx, op.target)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Errorf("%w: %s", ErrTargetExists, op.target)
	}

	cfg, err := loadConfig(ctx, op.opts, op.source)
	if err != nil {
		return nil, err
	}

	copied, err := mgr.CopyTree(ctx, op.source, op.target)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().Int("files", copied).Msg("tree copied")
	log.FromContext(ctx).Infof("Copied %s to %s", op.source, op.target)

	summary := &Summary{
		Mode:    ModeClone,
		Root:    op.target,
		OldName: oldName,
		NewName: newName,
		Copied:  copied,
	}

	p := &propagator{
		mgr:     mgr,
		cfg:     cfg,
		cfgRel:  configRel(cfg, op.source),
		root:    op.target,
		oldName: oldName,
		newName: newName,
		rules:   cfg.Apply(text.CloneRules(oldName, newName)),
		rename:  conservativeRename,
	}
	if err := p.run(ctx, summary); err != nil {
		return summary, err
	}

	return summary, nil
}
