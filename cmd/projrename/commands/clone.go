package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/walteh/projrename/cmd/projrename/opts"
	"github.com/walteh/projrename/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewCloneCmd creates a new clone command
func NewCloneCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clone <source> <target>",
		Short: "Copy a project folder and rename the copy",
		Long: `Clone copies <source> to <target>, then rewrites the copy so it is
named after the target folder. It will:
1. Copy the whole tree, keeping file modes
2. Rewrite namespaces, log tags and assembly metadata
3. Rename project and solution files

The target must not exist yet.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := filepath.Abs(args[0])
			if err != nil {
				return errors.Errorf("resolving source: %w", err)
			}
			target, err := filepath.Abs(args[1])
			if err != nil {
				return errors.Errorf("resolving target: %w", err)
			}

			_, err = ro.Runner.Run(cmd.Context(), operation.NewCloneOperation(ro.Options(), source, target))
			return err
		},
	}

	return cmd
}
