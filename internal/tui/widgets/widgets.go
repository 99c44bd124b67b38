// Package widgets renders sample controls styled from a theme snapshot so the
// preview shows the palette and widget metrics applied together.
package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/lumen/internal/colour"
	"github.com/alexisbeaulieu97/lumen/internal/snapshot"
)

// logical pixels per terminal cell when mapping padding and radii
const pixelsPerCell = 8

// ButtonVariant selects the palette colour of a button.
type ButtonVariant int

const (
	ButtonPrimary ButtonVariant = iota
	ButtonSecondary
	ButtonAccent
)

// AlertVariant selects the status colour of an alert.
type AlertVariant int

const (
	AlertInfo AlertVariant = iota
	AlertSuccess
	AlertWarning
	AlertError
)

// ButtonOptions defines the configuration options for a button.
type ButtonOptions struct {
	Variant  ButtonVariant
	Disabled bool
	Focus    bool
}

// Motion offsets and dims rendered widgets while an effect runs. Zero means
// at rest.
type Motion struct {
	// Offset shifts widgets right by whole cells.
	Offset int
	// Faded renders widgets faint.
	Faded bool
}

// Kit builds lipgloss styles from one snapshot.
type Kit struct {
	snap   snapshot.Snapshot
	motion Motion
}

// New returns a kit for snap.
func New(snap snapshot.Snapshot) Kit {
	return Kit{snap: snap}
}

// WithMotion returns a copy of the kit that applies m to every widget.
func (k Kit) WithMotion(m Motion) Kit {
	k.motion = m
	return k
}

// Button renders a button with the given label.
func (k Kit) Button(label string, opts ButtonOptions) string {
	p := k.snap.Palette
	bg := p.Primary
	switch opts.Variant {
	case ButtonSecondary:
		bg = p.Secondary
	case ButtonAccent:
		bg = p.Accent
	}

	style := k.base(k.snap.Widgets.ButtonRadius).
		Background(lipgloss.Color(bg.Hex())).
		Foreground(lipgloss.Color(contrastOn(bg).Hex())).
		BorderForeground(lipgloss.Color(bg.Hex())).
		Padding(0, k.padding())

	switch {
	case opts.Disabled:
		style = style.
			Background(lipgloss.Color(p.Disabled.Hex())).
			BorderForeground(lipgloss.Color(p.Disabled.Hex())).
			Faint(true)
	case opts.Focus && k.snap.Widgets.FocusRingWidth > 0:
		style = style.
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(p.Accent.Hex()))
	}

	return k.place(style.Render(label))
}

// Input renders a text field showing value, or placeholder in the disabled
// colour when value is empty.
func (k Kit) Input(value, placeholder string, width int) string {
	p := k.snap.Palette
	fg := p.Foreground
	text := value
	if text == "" {
		fg = p.Disabled
		text = placeholder
	}

	style := k.base(k.snap.Widgets.InputRadius).
		Foreground(lipgloss.Color(fg.Hex())).
		BorderForeground(lipgloss.Color(p.Secondary.Hex())).
		Width(width).
		Padding(0, 1)
	return k.place(style.Render(text))
}

// Card renders a titled card with body text on the background colour.
func (k Kit) Card(title, body string) string {
	p := k.snap.Palette
	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Primary.Hex())).Render(title)

	style := k.base(k.snap.Widgets.CardRadius).
		Background(lipgloss.Color(p.Background.Hex())).
		Foreground(lipgloss.Color(p.Foreground.Hex())).
		BorderForeground(lipgloss.Color(shadow(p.Background, k.snap.Widgets.ShadowStrength).Hex())).
		Padding(k.padding()/2, k.padding())

	return k.place(style.Render(heading + "\n" + body))
}

// Alert renders a status message.
func (k Kit) Alert(message string, variant AlertVariant) string {
	p := k.snap.Palette
	c := p.Info
	switch variant {
	case AlertSuccess:
		c = p.Success
	case AlertWarning:
		c = p.Warning
	case AlertError:
		c = p.Error
	}

	style := k.base(0).
		Foreground(lipgloss.Color(c.Hex())).
		BorderForeground(lipgloss.Color(c.Hex())).
		BorderTop(false).BorderRight(false).BorderBottom(false).
		PaddingLeft(1)
	return k.place(style.Render(message))
}

// Gallery renders one of each widget.
func (k Kit) Gallery() string {
	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		k.Button("Primary", ButtonOptions{}), " ",
		k.Button("Secondary", ButtonOptions{Variant: ButtonSecondary}), " ",
		k.Button("Focused", ButtonOptions{Variant: ButtonAccent, Focus: true}), " ",
		k.Button("Disabled", ButtonOptions{Disabled: true}),
	)
	alerts := strings.Join([]string{
		k.Alert("Saved", AlertSuccess),
		k.Alert("Battery low", AlertWarning),
		k.Alert("Sync failed", AlertError),
	}, "\n")

	return lipgloss.JoinVertical(lipgloss.Left,
		buttons,
		k.Input("", "Search…", 24),
		k.Card(k.snap.Theme, k.snap.Fonts.Family),
		alerts,
	)
}

// base picks the border from radius and border width.
func (k Kit) base(radius float64) lipgloss.Style {
	border := lipgloss.NormalBorder()
	switch {
	case k.snap.Widgets.BorderWidth >= 2:
		border = lipgloss.ThickBorder()
	case radius > 0:
		border = lipgloss.RoundedBorder()
	}

	style := lipgloss.NewStyle()
	if k.snap.Widgets.BorderWidth > 0 {
		style = style.Border(border)
	}
	return style.Faint(k.motion.Faded)
}

func (k Kit) padding() int {
	cells := int(math.Round(k.snap.Widgets.ControlPadding / pixelsPerCell))
	return max(0, min(cells, 4))
}

func (k Kit) place(rendered string) string {
	if k.motion.Offset <= 0 {
		return rendered
	}
	return lipgloss.NewStyle().MarginLeft(k.motion.Offset).Render(rendered)
}

// contrastOn picks black or white text for bg.
func contrastOn(bg colour.Color) colour.Color {
	if bg.Luminance() > 0.4 {
		return colour.Black
	}
	return colour.White
}

// shadow darkens c by strength in [0,1].
func shadow(c colour.Color, strength float64) colour.Color {
	return colour.ScaleBrightness(c, 1-math.Max(0, math.Min(1, strength))*0.5)
}
