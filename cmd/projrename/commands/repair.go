package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/walteh/projrename/cmd/projrename/opts"
	"github.com/walteh/projrename/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewRepairCmd creates a new repair command
func NewRepairCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repair <folder>",
		Short: "Force namespaces, log tags and metadata to the folder name",
		Long: `Repair rewrites every namespace declaration, Debug.Log tag and assembly
metadata entry under <folder> to the folder's name, whatever they were
before. Project and solution files named after the previous assembly
name are renamed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := filepath.Abs(args[0])
			if err != nil {
				return errors.Errorf("resolving folder: %w", err)
			}

			_, err = ro.Runner.Run(cmd.Context(), operation.NewRepairOperation(ro.Options(), folder))
			return err
		},
	}

	return cmd
}
