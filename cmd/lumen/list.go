package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(app *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the themes found in the configured theme directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, names, err := app.newEngine()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, "No themes installed. Pass --themes <dir> or set theme_dirs.")
				return nil
			}

			for _, name := range eng.Registry().Names() {
				entry, err := eng.Registry().Lookup(name)
				if err != nil {
					return err
				}
				def := entry.Definition
				line := fmt.Sprintf("%-24s %-5s", def.Name, def.Mode)
				if def.Version != "" {
					line += " v" + def.Version
				}
				if def.Dynamic != nil {
					line += " (dynamic)"
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
}
