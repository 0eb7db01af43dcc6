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

	"github.com/walteh/projrename/pkg/log"
	"github.com/walteh/projrename/pkg/project"
	"github.com/walteh/projrename/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🧭 NewRealignOperation creates an operation that renames a project folder's
// contents after the folder's own name. The old name comes from the first
// <AssemblyName> in a project file.
func NewRealignOperation(opts Options, folder string) Operation {
	return &realignOperation{
		opts:   opts,
		folder: folder,
	}
}

type realignOperation struct {
	opts   Options
	folder string
}

func (op *realignOperation) Mode() Mode {
	return ModeRealign
}

func (op *realignOperation) Execute(ctx context.Context) (*Summary, error) {
	if err := validateOptions(op.opts); err != nil {
		return nil, err
	}
	mgr := op.opts.Status

	isDir, err := mgr.IsDir(ctx, op.folder)
	if err != nil {
		return nil, err
	}
	if !isDir {
		return nil, errors.Errorf("%w: %s", ErrDirectoryNotFound, op.folder)
	}

	newName := project.NameFromDir(op.folder)
	if err := validateName(newName); err != nil {
		return nil, err
	}

	oldName, err := project.DetectAssemblyName(ctx, mgr.Filesystem(), op.folder)
	if err != nil {
		if errors.Is(err, project.ErrAssemblyNameNotFound) {
			return nil, errors.Errorf("%w: %s", ErrOriginalNameUnknown, op.folder)
		}
		return nil, err
	}

	summary := &Summary{
		Mode:    ModeRealign,
		Root:    op.folder,
		OldName: oldName,
		NewName: newName,
		DryRun:  mgr.DryRun(),
	}

	if oldName == newName {
		log.FromContext(ctx).Infof("Project is already aligned with '%s'", newName)
		return summary, nil
	}

	cfg, err := loadConfig(ctx, op.opts, op.folder)
	if err != nil {
		return nil, err
	}

	log.FromContext(ctx).Infof("Realigning project from '%s' to '%s'", oldName, newName)

	p := &propagator{
		mgr:     mgr,
		cfg:     cfg,
		cfgRel:  configRel(cfg, op.folder),
		root:    op.folder,
		oldName: oldName,
		newName: newName,
		rules:   cfg.Apply(text.RealignRules(oldName, newName)),
		rename:  aggressiveRename,
	}
	if err := p.run(ctx, summary); err != nil {
		return summary, err
	}

	return summary, nil
}
