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

// 🩹 NewRepairOperation creates an operation that normalizes namespaces, log
// tags and assembly metadata to the folder's own name
func NewRepairOperation(opts Options, folder string) Operation {
	return &repairOperation{
		opts:   opts,
		folder: folder,
	}
}

type repairOperation struct {
	opts   Options
	folder string
}

func (op *repairOperation) Mode() Mode {
	return ModeRepair
}

func (op *repairOperation) Execute(ctx context.Context) (*Summary, error) {
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

	name := project.NameFromDir(op.folder)
	if err := validateName(name); err != nil {
		return nil, err
	}

	// the rewrite normalizes <AssemblyName>, so the previous name has to be
	// read first for project files to be renamed after it
	previous, err := project.DetectAssemblyName(ctx, mgr.Filesystem(), op.folder)
	if err != nil {
		if !errors.Is(err, project.ErrAssemblyNameNotFound) {
			return nil, err
		}
		zerolog.Ctx(ctx).Debug().Str("folder", op.folder).Msg("no assembly name, project files keep their names")
		previous = ""
	}

	cfg, err := loadConfig(ctx, op.opts, op.folder)
	if err != nil {
		return nil, err
	}

	log.FromContext(ctx).Infof("Repairing project to match directory name: %s", name)

	summary := &Summary{
		Mode:    ModeRepair,
		Root:    op.folder,
		OldName: previous,
		NewName: name,
		DryRun:  mgr.DryRun(),
	}

	p := &propagator{
		mgr:      mgr,
		cfg:      cfg,
		cfgRel:   configRel(cfg, op.folder),
		root:     op.folder,
		oldName:  previous,
		newName:  name,
		rules:    cfg.Apply(text.RepairRules(name)),
		rename:   conservativeRename,
		noRename: previous == "" || previous == name,
	}
	if err := p.run(ctx, summary); err != nil {
		return summary, err
	}

	return summary, nil
}
