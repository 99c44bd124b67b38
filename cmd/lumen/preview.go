package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/lumen/internal/tui"
)

var termIsTerminal = func(fd int) bool {
	return term.IsTerminal(fd)
}

type previewOptions struct {
	ctx contextFlags
}

func newPreviewCmd(app *appContext) *cobra.Command {
	opts := previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview [theme|theme-file]...",
		Short: "Interactively switch between themes and watch them blend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !termIsTerminal(int(os.Stdout.Fd())) {
				return newCommandError("start preview", "stdout", fmt.Errorf("not a terminal"), "Use 'lumen snapshot' for non-interactive output.")
			}

			eng, names, err := app.newEngine()
			if err != nil {
				return err
			}
			for _, arg := range args {
				name, err := resolveTheme(eng, arg)
				if err != nil {
					return err
				}
				names = appendUnique(names, name)
			}
			if len(names) == 0 {
				return newCommandError("start preview", "no themes", fmt.Errorf("nothing to preview"), "Pass theme files or --themes <dir>.")
			}

			ctx, err := opts.ctx.context(now())
			if err != nil {
				return newCommandError("build context", "preview", err, "Use --at HH:MM and --month 1-12.")
			}
			if _, err := eng.ReevaluateDynamic(ctx); err != nil {
				return err
			}
			if err := eng.SetActiveTheme(names[0], nil); err != nil {
				return err
			}

			model := tui.NewModel(tui.Options{
				Engine:        eng,
				Themes:        names,
				FrameInterval: app.settings.FrameInterval,
				Weather:       opts.ctx.weather,
			})
			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	opts.ctx.register(cmd.Flags())
	return cmd
}
