package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/lumen/internal/snapshot"
	"github.com/alexisbeaulieu97/lumen/internal/tui/components"
)

// now is replaced in tests.
var now = time.Now

type snapshotOptions struct {
	ctx      contextFlags
	json     bool
	swatches bool
}

func newSnapshotCmd(app *appContext) *cobra.Command {
	opts := snapshotOptions{}

	cmd := &cobra.Command{
		Use:   "snapshot <theme|theme-file>",
		Short: "Print the resolved style snapshot of a theme",
		Long: `Snapshot evaluates the theme's dynamic rules against the current time, or the
time given with --at, and prints every resolved value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := app.newEngine()
			if err != nil {
				return err
			}
			name, err := resolveTheme(eng, args[0])
			if err != nil {
				return err
			}
			ctx, err := opts.ctx.context(now())
			if err != nil {
				return newCommandError("build context", args[0], err, "Use --at HH:MM and --month 1-12.")
			}

			snap, err := eng.Preview(name, ctx)
			if err != nil {
				return newCommandError("compose snapshot", name, err, "Run 'lumen list' to see installed themes.")
			}
			return writeSnapshot(cmd.OutOrStdout(), snap, opts)
		},
	}

	opts.ctx.register(cmd.Flags())
	cmd.Flags().BoolVar(&opts.json, "json", false, "Output the snapshot as JSON")
	cmd.Flags().BoolVar(&opts.swatches, "swatches", false, "Render the palette as colour swatches")

	return cmd
}

func writeSnapshot(out io.Writer, snap snapshot.Snapshot, opts snapshotOptions) error {
	switch {
	case opts.json:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(newSnapshotDoc(snap))
	case opts.swatches:
		fmt.Fprintf(out, "%s (%s) %s\n", snap.Theme, snap.Mode, snap.Fingerprint)
		fmt.Fprintln(out, components.NewSwatches(snap).View())
		return nil
	default:
		_, err := io.WriteString(out, snap.Text())
		return err
	}
}

type snapshotDoc struct {
	Theme       string            `json:"theme"`
	Mode        string            `json:"mode"`
	Dark        bool              `json:"dark"`
	Fingerprint string            `json:"fingerprint"`
	Colors      map[string]string `json:"colors"`
	Fonts       fontsDoc          `json:"fonts"`
	WidgetStyle widgetsDoc        `json:"widget_style"`
	Display     displayDoc        `json:"display"`
	Animations  animationsDoc     `json:"animations"`
}

type fontsDoc struct {
	Family          string  `json:"family"`
	HeadingFamily   string  `json:"heading_family"`
	MonospaceFamily string  `json:"monospace_family"`
	BaseSize        float64 `json:"base_size"`
	Weight          int     `json:"weight"`
	LineHeight      float64 `json:"line_height"`
}

type widgetsDoc struct {
	ButtonRadius   float64 `json:"button_radius"`
	InputRadius    float64 `json:"input_radius"`
	CardRadius     float64 `json:"card_radius"`
	ShadowStrength float64 `json:"shadow_strength"`
	BorderWidth    float64 `json:"border_width"`
	FocusRingWidth float64 `json:"focus_ring_width"`
	ControlPadding float64 `json:"control_padding"`
}

type displayDoc struct {
	HiDPIMode     string  `json:"hidpi_mode"`
	Scale         float64 `json:"scale"`
	TextSharpness float64 `json:"text_sharpness"`
}

type animationsDoc struct {
	Enabled      bool    `json:"enabled"`
	SpeedFactor  float64 `json:"speed_factor"`
	TransitionMS int64   `json:"transition_ms"`
	Easing       string  `json:"easing"`
}

func newSnapshotDoc(s snapshot.Snapshot) snapshotDoc {
	colors := make(map[string]string)
	for _, entry := range s.Palette.Entries() {
		colors[entry.Name] = entry.Color.Hex()
	}

	return snapshotDoc{
		Theme:       s.Theme,
		Mode:        string(s.Mode),
		Dark:        s.IsDark,
		Fingerprint: s.Fingerprint.String(),
		Colors:      colors,
		Fonts: fontsDoc{
			Family:          s.Fonts.Family,
			HeadingFamily:   s.Fonts.HeadingFamily,
			MonospaceFamily: s.Fonts.MonospaceFamily,
			BaseSize:        s.Fonts.BaseSize,
			Weight:          s.Fonts.Weight,
			LineHeight:      s.Fonts.LineHeight,
		},
		WidgetStyle: widgetsDoc(s.Widgets),
		Display: displayDoc{
			HiDPIMode:     string(s.HiDPIMode),
			Scale:         s.Scale,
			TextSharpness: s.TextSharpness,
		},
		Animations: animationsDoc{
			Enabled:      s.Animations.Enabled,
			SpeedFactor:  s.Animations.SpeedFactor,
			TransitionMS: s.Animations.Transition.Milliseconds(),
			Easing:       s.Animations.Easing.String(),
		},
	}
}
