// Package colour provides the colour model used by the theme engine: parsing,
// RGB/HSL conversion, interpolation and the modifier primitives applied by
// dynamic adjustments. Every operation except Parse is total; out-of-range
// inputs are clamped rather than rejected.
package colour

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a straight (non-premultiplied) RGBA colour with channels in [0,1].
type Color struct {
	R, G, B, A float64
}

// Common colours.
var (
	Black = Color{0, 0, 0, 1}
	White = Color{1, 1, 1, 1}
)

// RGB returns an opaque colour from 8-bit channels.
func RGB(r, g, b uint8) Color {
	return Color{float64(r) / 255.0, float64(g) / 255.0, float64(b) / 255.0, 1}
}

// RGBA255 returns a colour from 8-bit channels and a [0,1] alpha.
func RGBA255(r, g, b uint8, a float64) Color {
	c := RGB(r, g, b)
	c.A = clamp01(a)
	return c
}

// FromHSL builds an opaque colour from hue (degrees), saturation and lightness.
func FromHSL(h, s, l float64) Color {
	return FromHSLA(h, s, l, 1)
}

// FromHSLA builds a colour from hue (degrees), saturation, lightness and alpha.
func FromHSLA(h, s, l, a float64) Color {
	c := colorful.Hsl(wrapHue(h), clamp01(s), clamp01(l)).Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: clamp01(a)}
}

// HSL returns hue in [0,360), saturation and lightness in [0,1].
func (c Color) HSL() (h, s, l float64) {
	h, s, l = c.colorful().Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return wrapHue(h), clamp01(s), clamp01(l)
}

// Hex formats the colour as #rrggbb, or #rrggbbaa when it is not fully opaque.
func (c Color) Hex() string {
	hex := c.colorful().Clamped().Hex()
	if c.A >= 1 {
		return hex
	}
	return fmt.Sprintf("%s%02x", hex, uint8(clamp01(c.A)*255.0+0.5))
}

// CSS formats the colour as an rgba() expression.
func (c Color) CSS() string {
	r, g, b := c.colorful().Clamped().RGB255()
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", r, g, b, formatFloat(clamp01(c.A)))
}

// Opaque returns the colour with alpha forced to 1.
func (c Color) Opaque() Color {
	c.A = 1
	return c
}

// Clamped returns the colour with every channel clamped to [0,1].
func (c Color) Clamped() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A)}
}

// RGBA implements image/color.Color with 16-bit premultiplied channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	cc := c.Clamped()
	a = uint32(cc.A*65535.0 + 0.5)
	r = uint32(cc.R*cc.A*65535.0 + 0.5)
	g = uint32(cc.G*cc.A*65535.0 + 0.5)
	b = uint32(cc.B*cc.A*65535.0 + 0.5)
	return r, g, b, a
}

// Luminance calculates the relative luminance according to WCAG 2.0.
func (c Color) Luminance() float64 {
	cc := c.Clamped()
	return 0.2126*linearize(cc.R) + 0.7152*linearize(cc.G) + 0.0722*linearize(cc.B)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// MarshalText encodes the colour as hex so snapshots serialise readably.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText accepts any form understood by Parse.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func linearize(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

func wrapHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func formatFloat(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	for len(s) > 1 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
