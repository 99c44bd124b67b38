package blend

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"time"

	"github.com/alexisbeaulieu97/lumen/internal/colour"
	"github.com/alexisbeaulieu97/lumen/internal/snapshot"
)

// switchPoint is the progress at which non-interpolable fields flip to the target.
const switchPoint = 0.5

// Interpolate blends two snapshots at progress t in [0,1]. Colours travel in
// HSL space, numeric fields linearly, and discrete fields such as names,
// modes and easing switch once t reaches one half. t is not eased here.
func Interpolate(from, to snapshot.Snapshot, t float64) snapshot.Snapshot {
	switch {
	case t <= 0 || math.IsNaN(t):
		return from
	case t >= 1:
		return to
	}

	discrete := from
	if t >= switchPoint {
		discrete = to
	}

	out := snapshot.Snapshot{
		Theme:     discrete.Theme,
		Mode:      discrete.Mode,
		IsDark:    discrete.IsDark,
		HiDPIMode: discrete.HiDPIMode,
		Palette: snapshot.Palette{
			Primary:    colour.LerpHSL(from.Palette.Primary, to.Palette.Primary, t),
			Secondary:  colour.LerpHSL(from.Palette.Secondary, to.Palette.Secondary, t),
			Accent:     colour.LerpHSL(from.Palette.Accent, to.Palette.Accent, t),
			Background: colour.LerpHSL(from.Palette.Background, to.Palette.Background, t),
			Foreground: colour.LerpHSL(from.Palette.Foreground, to.Palette.Foreground, t),
			Success:    colour.LerpHSL(from.Palette.Success, to.Palette.Success, t),
			Warning:    colour.LerpHSL(from.Palette.Warning, to.Palette.Warning, t),
			Error:      colour.LerpHSL(from.Palette.Error, to.Palette.Error, t),
			Info:       colour.LerpHSL(from.Palette.Info, to.Palette.Info, t),
			Disabled:   colour.LerpHSL(from.Palette.Disabled, to.Palette.Disabled, t),
		},
		Fonts: snapshot.Fonts{
			Family:          discrete.Fonts.Family,
			HeadingFamily:   discrete.Fonts.HeadingFamily,
			MonospaceFamily: discrete.Fonts.MonospaceFamily,
			BaseSize:        lerp(from.Fonts.BaseSize, to.Fonts.BaseSize, t),
			Weight:          int(math.Round(lerp(float64(from.Fonts.Weight), float64(to.Fonts.Weight), t))),
			LineHeight:      lerp(from.Fonts.LineHeight, to.Fonts.LineHeight, t),
		},
		Widgets: snapshot.Widgets{
			ButtonRadius:   lerp(from.Widgets.ButtonRadius, to.Widgets.ButtonRadius, t),
			InputRadius:    lerp(from.Widgets.InputRadius, to.Widgets.InputRadius, t),
			CardRadius:     lerp(from.Widgets.CardRadius, to.Widgets.CardRadius, t),
			ShadowStrength: lerp(from.Widgets.ShadowStrength, to.Widgets.ShadowStrength, t),
			BorderWidth:    lerp(from.Widgets.BorderWidth, to.Widgets.BorderWidth, t),
			FocusRingWidth: lerp(from.Widgets.FocusRingWidth, to.Widgets.FocusRingWidth, t),
			ControlPadding: lerp(from.Widgets.ControlPadding, to.Widgets.ControlPadding, t),
		},
		Scale:         lerp(from.Scale, to.Scale, t),
		TextSharpness: lerp(from.TextSharpness, to.TextSharpness, t),
		Animations: snapshot.Animations{
			Enabled:     discrete.Animations.Enabled,
			SpeedFactor: lerp(from.Animations.SpeedFactor, to.Animations.SpeedFactor, t),
			Transition:  time.Duration(math.Round(lerp(float64(from.Animations.Transition), float64(to.Animations.Transition), t))),
			Easing:      discrete.Animations.Easing,
		},
		Fingerprint: derivedFingerprint(from.Fingerprint, to.Fingerprint, t),
	}

	return out.WithCustom(lerpCustom(from.Palette, to.Palette, t))
}

// lerpCustom blends custom colours present on both sides; a colour present on
// one side only appears until, or from, the switch point.
func lerpCustom(from, to snapshot.Palette, t float64) map[string]colour.Color {
	out := make(map[string]colour.Color)
	for _, name := range from.CustomNames() {
		a, _ := from.Custom(name)
		if b, ok := to.Custom(name); ok {
			out[name] = colour.LerpHSL(a, b, t)
		} else if t < switchPoint {
			out[name] = a
		}
	}
	if t >= switchPoint {
		for _, name := range to.CustomNames() {
			if _, ok := from.Custom(name); !ok {
				out[name], _ = to.Custom(name)
			}
		}
	}
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func derivedFingerprint(from, to snapshot.Fingerprint, t float64) snapshot.Fingerprint {
	h := fnv.New64a()
	var buf [24]byte
	binary.BigEndian.PutUint64(buf[0:8], uint64(from))
	binary.BigEndian.PutUint64(buf[8:16], uint64(to))
	binary.BigEndian.PutUint64(buf[16:24], math.Float64bits(t))
	_, _ = h.Write(buf[:])
	return snapshot.Fingerprint(h.Sum64())
}
