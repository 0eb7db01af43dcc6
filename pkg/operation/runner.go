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
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/projrename/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🏃 OperationRunner executes operations
type OperationRunner struct {
	logger *zerolog.Logger
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger) *OperationRunner {
	return &OperationRunner{
		logger: logger,
	}
}

// 🏃 Run executes an operation, reporting its outcome on the console logger
// found in ctx
func (r *OperationRunner) Run(ctx context.Context, op Operation) (*Summary, error) {
	ulog := log.FromContext(ctx)
	logger := r.logger
	if logger == nil {
		logger = zerolog.Ctx(ctx)
	}
	ctx = logger.With().Str("mode", string(op.Mode())).Logger().WithContext(ctx)

	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("operation cancelled: %w", err)
	}

	ulog.Header(string(op.Mode()))

	start := time.Now()
	summary, err := op.Execute(ctx)
	elapsed := time.Since(start)

	if err != nil {
		logger.Debug().Err(err).Dur("elapsed", elapsed).Str("mode", string(op.Mode())).Msg("operation failed")
		return summary, errors.Errorf("running %s: %w", op.Mode(), err)
	}

	logger.Debug().Dur("elapsed", elapsed).Str("mode", string(op.Mode())).Msg("operation finished")

	ulog.LogNewline()
	switch {
	case summary.DryRun:
		ulog.Warningf("Dry run: %s for '%s' made no changes", op.Mode(), summary.NewName)
	default:
		ulog.Successf("%s complete for '%s'", op.Mode(), summary.NewName)
	}

	return summary, nil
}
