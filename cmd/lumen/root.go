package main

import (
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/lumen/internal/config"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	v := config.NewViper()
	app := &appContext{}

	cmd := &cobra.Command{
		Use:           "lumen",
		Short:         "Lumen composes dynamic desktop themes into render-ready style snapshots",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load(v, flags, cmd.ErrOrStderr())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Settings file (YAML); LUMEN_* environment variables override it")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringSlice("themes", nil, "Directories of theme documents to install")

	_ = v.BindPFlag("log_level", pf.Lookup("log-level"))
	_ = v.BindPFlag("theme_dirs", pf.Lookup("themes"))

	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newSnapshotCmd(app))
	cmd.AddCommand(newDiffCmd(app))
	cmd.AddCommand(newPreviewCmd(app))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
