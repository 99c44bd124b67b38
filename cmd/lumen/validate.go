package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/lumen/internal/config"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <theme-file>...",
		Short: "Check theme documents without installing them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				def, err := config.ParseTheme(path)
				if err != nil {
					failed++
					fmt.Fprintf(out, "✗ %s\n  %v\n", path, err)
					continue
				}
				fmt.Fprintf(out, "✓ %s (%s, %s)\n", path, def.Name, def.Mode)
			}

			if failed > 0 {
				return newCommandError("validate themes", fmt.Sprintf("%d of %d documents", failed, len(args)),
					fmt.Errorf("%d invalid theme document(s)", failed), "Fix the fields reported above.")
			}
			return nil
		},
	}
}
