// Package snapshot composes immutable, renderable style snapshots from theme
// definitions and dynamic modifiers, and caches them by fingerprint.
package snapshot

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/lumen/internal/colour"
	"github.com/alexisbeaulieu97/lumen/internal/easing"
	"github.com/alexisbeaulieu97/lumen/internal/theme"
)

// Fingerprint identifies the inputs a snapshot was computed from.
type Fingerprint uint64

func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x", uint64(f))
}

// Palette is the resolved colour set of a snapshot.
type Palette struct {
	Primary    colour.Color
	Secondary  colour.Color
	Accent     colour.Color
	Background colour.Color
	Foreground colour.Color
	Success    colour.Color
	Warning    colour.Color
	Error      colour.Color
	Info       colour.Color
	Disabled   colour.Color

	custom map[string]colour.Color
}

// NamedColour pairs a palette key with its resolved colour.
type NamedColour struct {
	Name  string
	Color colour.Color
}

// Custom returns a custom palette colour.
func (p Palette) Custom(name string) (colour.Color, bool) {
	c, ok := p.custom[name]
	return c, ok
}

// CustomNames returns the custom colour keys sorted.
func (p Palette) CustomNames() []string {
	names := make([]string, 0, len(p.custom))
	for name := range p.custom {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries lists the standard colours in document order followed by the
// custom colours sorted by name.
func (p Palette) Entries() []NamedColour {
	entries := []NamedColour{
		{Name: "primary", Color: p.Primary},
		{Name: "secondary", Color: p.Secondary},
		{Name: "accent", Color: p.Accent},
		{Name: "background", Color: p.Background},
		{Name: "foreground", Color: p.Foreground},
		{Name: "success", Color: p.Success},
		{Name: "warning", Color: p.Warning},
		{Name: "error", Color: p.Error},
		{Name: "info", Color: p.Info},
		{Name: "disabled", Color: p.Disabled},
	}
	for _, name := range p.CustomNames() {
		entries = append(entries, NamedColour{Name: name, Color: p.custom[name]})
	}
	return entries
}

// Lookup finds a standard or custom colour by key.
func (p Palette) Lookup(name string) (colour.Color, bool) {
	for _, entry := range p.Entries() {
		if entry.Name == name {
			return entry.Color, true
		}
	}
	return colour.Color{}, false
}

// standard returns pointers to the ten standard colours in document order.
func (p *Palette) standard() []*colour.Color {
	return []*colour.Color{
		&p.Primary, &p.Secondary, &p.Accent, &p.Background, &p.Foreground,
		&p.Success, &p.Warning, &p.Error, &p.Info, &p.Disabled,
	}
}

// Fonts are copied through from the definition with defaults applied.
type Fonts struct {
	Family          string
	HeadingFamily   string
	MonospaceFamily string
	BaseSize        float64
	Weight          int
	LineHeight      float64
}

// Widgets are widget shape metrics in logical pixels.
type Widgets struct {
	ButtonRadius   float64
	InputRadius    float64
	CardRadius     float64
	ShadowStrength float64
	BorderWidth    float64
	FocusRingWidth float64
	ControlPadding float64
}

// Animations are the resolved base animation settings.
type Animations struct {
	Enabled     bool
	SpeedFactor float64
	Transition  time.Duration
	Easing      easing.Easing
}

// Snapshot is a fully resolved style. It is never mutated after construction;
// the custom colour map is private and only read through accessors.
type Snapshot struct {
	Theme         string
	Mode          theme.Mode
	IsDark        bool
	Palette       Palette
	Fonts         Fonts
	Widgets       Widgets
	HiDPIMode     theme.HiDPIMode
	Scale         float64
	TextSharpness float64
	Animations    Animations
	Fingerprint   Fingerprint
}

// IsZero reports whether s is the zero Snapshot.
func (s Snapshot) IsZero() bool {
	return s.Theme == "" && s.Fingerprint == 0
}

// Text renders a stable line-oriented description, one value per line.
func (s Snapshot) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "theme: %s\n", s.Theme)
	fmt.Fprintf(&b, "mode: %s\n", s.Mode)
	fmt.Fprintf(&b, "dark: %t\n", s.IsDark)
	fmt.Fprintf(&b, "fingerprint: %s\n", s.Fingerprint)
	for _, entry := range s.Palette.Entries() {
		fmt.Fprintf(&b, "colors.%s: %s\n", entry.Name, entry.Color.Hex())
	}
	fmt.Fprintf(&b, "fonts.family: %s\n", s.Fonts.Family)
	fmt.Fprintf(&b, "fonts.heading_family: %s\n", s.Fonts.HeadingFamily)
	fmt.Fprintf(&b, "fonts.monospace_family: %s\n", s.Fonts.MonospaceFamily)
	fmt.Fprintf(&b, "fonts.base_size: %g\n", s.Fonts.BaseSize)
	fmt.Fprintf(&b, "fonts.weight: %d\n", s.Fonts.Weight)
	fmt.Fprintf(&b, "fonts.line_height: %g\n", s.Fonts.LineHeight)
	fmt.Fprintf(&b, "widget_style.button_radius: %g\n", s.Widgets.ButtonRadius)
	fmt.Fprintf(&b, "widget_style.input_radius: %g\n", s.Widgets.InputRadius)
	fmt.Fprintf(&b, "widget_style.card_radius: %g\n", s.Widgets.CardRadius)
	fmt.Fprintf(&b, "widget_style.shadow_strength: %g\n", s.Widgets.ShadowStrength)
	fmt.Fprintf(&b, "widget_style.border_width: %g\n", s.Widgets.BorderWidth)
	fmt.Fprintf(&b, "widget_style.focus_ring_width: %g\n", s.Widgets.FocusRingWidth)
	fmt.Fprintf(&b, "widget_style.control_padding: %g\n", s.Widgets.ControlPadding)
	fmt.Fprintf(&b, "display.hidpi_mode: %s\n", s.HiDPIMode)
	fmt.Fprintf(&b, "display.scale: %g\n", s.Scale)
	fmt.Fprintf(&b, "display.text_sharpness: %g\n", s.TextSharpness)
	fmt.Fprintf(&b, "animations.enabled: %t\n", s.Animations.Enabled)
	fmt.Fprintf(&b, "animations.speed_factor: %g\n", s.Animations.SpeedFactor)
	fmt.Fprintf(&b, "animations.transition: %s\n", s.Animations.Transition)
	fmt.Fprintf(&b, "animations.easing: %s\n", s.Animations.Easing)
	return b.String()
}

// WithCustom returns a copy of s whose custom colours are a copy of custom.
func (s Snapshot) WithCustom(custom map[string]colour.Color) Snapshot {
	out := s
	out.Palette.custom = make(map[string]colour.Color, len(custom))
	for k, v := range custom {
		out.Palette.custom[k] = v
	}
	return out
}
