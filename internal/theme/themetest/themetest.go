// Package themetest builds valid theme definitions for tests.
package themetest

import (
	"github.com/alexisbeaulieu97/lumen/internal/easing"
	"github.com/alexisbeaulieu97/lumen/internal/theme"
)

// Definition returns a complete, valid definition with the given name and
// background colour. Every other palette colour is fixed.
func Definition(name, background string) *theme.Definition {
	mode := theme.ModeDark
	if background == "#ffffff" || background == "#fff" {
		mode = theme.ModeLight
	}

	return &theme.Definition{
		Name: name,
		Mode: mode,
		Colors: theme.Palette{
			Primary:    "#1a73e8",
			Secondary:  "#5f6368",
			Accent:     "#ff8800",
			Background: background,
			Foreground: "#e8eaed",
			Success:    "#34a853",
			Warning:    "#fbbc04",
			Error:      "#ea4335",
			Info:       "#4285f4",
			Disabled:   "#9aa0a6",
		},
		Fonts: theme.Fonts{Family: "Inter"},
		WidgetStyle: theme.WidgetStyle{
			ButtonRadius:   6,
			InputRadius:    4,
			CardRadius:     8,
			ShadowStrength: 0.3,
			BorderWidth:    1,
			FocusRingWidth: 2,
			ControlPadding: 8,
		},
		Animations: theme.Animations{
			Enabled:      theme.Bool(true),
			SpeedFactor:  1,
			TransitionMS: 200,
			Easing:       easing.Linear,
		},
	}
}

// WithDayNight attaches the day/night time-of-day rules used across tests:
// day [07:00,16:00) at 6500K and night [19:00,05:00) at 3200K.
func WithDayNight(def *theme.Definition) *theme.Definition {
	if def.Dynamic == nil {
		def.Dynamic = &theme.Dynamic{}
	}
	def.Dynamic.TimeOfDay = &theme.TimeOfDayRules{
		Strength: theme.Float(theme.DefaultStrength),
		Rules: []theme.TimeRule{
			{Name: "day", Start: "07:00", End: "16:00", Temperature: 6500, Brightness: 1},
			{Name: "night", Start: "19:00", End: "05:00", Temperature: 3200, Brightness: 0.8},
		},
	}
	return def
}
