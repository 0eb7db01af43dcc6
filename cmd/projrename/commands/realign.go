package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/walteh/projrename/cmd/projrename/opts"
	"github.com/walteh/projrename/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewRealignCmd creates a new realign command
func NewRealignCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "realign <folder>",
		Short: "Rename a project after the folder it lives in",
		Long: `Realign reads the current project name from the first <AssemblyName>
found in a .csproj under <folder>, then replaces it everywhere with the
folder's name, keeping the case of each occurrence. Files whose names
contain the old name are renamed too.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := filepath.Abs(args[0])
			if err != nil {
				return errors.Errorf("resolving folder: %w", err)
			}

			_, err = ro.Runner.Run(cmd.Context(), operation.NewRealignOperation(ro.Options(), folder))
			return err
		},
	}

	return cmd
}
