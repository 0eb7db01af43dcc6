package main

import (
	"context"
	"io"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/projrename/cmd/projrename/commands"
	"github.com/walteh/projrename/cmd/projrename/opts"
	"github.com/walteh/projrename/pkg/config"
	"github.com/walteh/projrename/pkg/log"
	"github.com/walteh/projrename/pkg/operation"
	"github.com/walteh/projrename/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// rootFlags are the persistent flags shared by every command
type rootFlags struct {
	configFile string
	debug      bool
	dryRun     bool
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "", "config file path (default: .projrename.* in the project root)")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, "report changes without writing them")
}

// setupLogging builds the structured logger. Only warnings reach stderr
// unless --debug is set, the console logger covers the rest.
func setupLogging(stderr io.Writer, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = stderr
	})).With().Timestamp().Logger().Level(level)
}

// newRootOpts creates the shared options once flags are known
func newRootOpts(ctx context.Context, flags *rootFlags, zlog *zerolog.Logger) (*opts.RootOpts, error) {
	fs := osfs.New("/")

	ro := &opts.RootOpts{
		Status: status.New(fs, flags.dryRun),
		Runner: operation.NewRunner(zlog),
	}

	if flags.configFile != "" {
		path, err := filepath.Abs(flags.configFile)
		if err != nil {
			return nil, errors.Errorf("resolving config path: %w", err)
		}
		cfg, err := config.LoadConfig(ctx, fs, path)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		ro.Config = cfg
	}

	return ro, nil
}

// newRootCmd wires the command tree. Console output goes to stdout.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}
	ro := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "projrename",
		Short: "Rename a C# project's identifier across its files",
		Long: `projrename propagates a project identifier through a project folder:
namespaces, Debug.Log tags, assembly metadata, manifest keys and the names
of project files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       readBuildVersion().Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zlog := setupLogging(stderr, flags.debug)

			ctx := zlog.WithContext(cmd.Context())
			ctx = log.NewContext(ctx, log.New(stdout, zlog))

			built, err := newRootOpts(ctx, flags, &zlog)
			if err != nil {
				return err
			}
			*ro = *built

			zlog.Debug().Bool("dry_run", flags.dryRun).Str("config", flags.configFile).Msg("options ready")
			cmd.SetContext(ctx)
			return nil
		},
	}
	rootCmd.SetVersionTemplate(versionTemplate(readBuildVersion()))
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	addRootFlags(rootCmd, flags)

	rootCmd.AddCommand(
		commands.NewCloneCmd(ro),
		commands.NewRealignCmd(ro),
		commands.NewRepairCmd(ro),
	)

	return rootCmd
}
