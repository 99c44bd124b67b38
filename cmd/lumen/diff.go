package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/lumen/internal/dynamic"
	"github.com/alexisbeaulieu97/lumen/pkg/diff"
)

type diffOptions struct {
	ctx     contextFlags
	against contextFlags
	keys    bool
}

func newDiffCmd(app *appContext) *cobra.Command {
	opts := diffOptions{}

	cmd := &cobra.Command{
		Use:   "diff <theme> [other-theme]",
		Short: "Show how a snapshot changes between two themes or two contexts",
		Long: `With one theme, diff compares its snapshot at --at/--month/--weather against
--against-at/--against-month/--against-weather. With two themes both are
evaluated in the same context.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := app.newEngine()
			if err != nil {
				return err
			}

			current := now()
			left, err := opts.ctx.context(current)
			if err != nil {
				return newCommandError("build context", args[0], err, "Use --at HH:MM and --month 1-12.")
			}
			right := left
			if len(args) == 1 {
				right, err = opts.against.context(current)
				if err != nil {
					return newCommandError("build context", args[0], err, "Use --against-at HH:MM and --against-month 1-12.")
				}
			}

			first, err := resolveTheme(eng, args[0])
			if err != nil {
				return err
			}
			second := first
			if len(args) == 2 {
				if second, err = resolveTheme(eng, args[1]); err != nil {
					return err
				}
			}

			before, err := eng.Preview(first, left)
			if err != nil {
				return err
			}
			after, err := eng.Preview(second, right)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.keys {
				for _, c := range diff.ChangedKeys(before.Text(), after.Text()) {
					fmt.Fprintf(out, "%s: %s -> %s\n", c.Key, c.Before, c.After)
				}
				return nil
			}

			result := diff.GenerateUnifiedDiff([]byte(before.Text()), []byte(after.Text()),
				label(first, left, len(args) == 2), label(second, right, len(args) == 2))
			if result == "" {
				fmt.Fprintln(out, "Snapshots are identical.")
				return nil
			}
			fmt.Fprint(out, result)
			return nil
		},
	}

	opts.ctx.register(cmd.Flags())
	cmd.Flags().StringVar(&opts.against.at, "against-at", "", "Clock time (HH:MM) or RFC3339 timestamp to compare against")
	cmd.Flags().IntVar(&opts.against.month, "against-month", 0, "Month (1-12) to compare against")
	cmd.Flags().StringVar(&opts.against.weather, "against-weather", "", "Weather condition to compare against")
	cmd.Flags().BoolVar(&opts.keys, "keys", false, "Print only the changed keys with old and new values")

	return cmd
}

func label(name string, ctx dynamic.Context, byTheme bool) string {
	if byTheme {
		return name
	}
	l := fmt.Sprintf("%s@%s", name, ctx.Time.Format(time.RFC3339))
	if ctx.Weather != "" {
		l += "," + ctx.Weather
	}
	return l
}
