package opts

import (
	"github.com/walteh/projrename/pkg/config"
	"github.com/walteh/projrename/pkg/operation"
	"github.com/walteh/projrename/pkg/status"
)

// RootOpts contains shared options used by all commands. It is filled in
// once flags are parsed, before any subcommand runs.
type RootOpts struct {
	Status *status.Manager
	Config *config.Config // nil unless --config was given
	Runner *operation.OperationRunner
}

// Options returns the operation options for a run
func (o *RootOpts) Options() operation.Options {
	return operation.Options{
		Status: o.Status,
		Config: o.Config,
	}
}
