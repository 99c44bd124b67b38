package snapshot

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/alexisbeaulieu97/lumen/internal/colour"
	"github.com/alexisbeaulieu97/lumen/internal/dynamic"
	"github.com/alexisbeaulieu97/lumen/internal/theme"
)

// Host carries what the host system reports about the display. It resolves
// hidpi_mode auto and mode auto. The zero value is a 1x light display.
type Host struct {
	Scale float64
	Dark  bool
}

// ComputeFingerprint hashes the inputs of Compose. digest is the content
// digest of the definition, so a reinstalled theme never aliases the old one.
func ComputeFingerprint(name string, digest uint64, mods dynamic.Modifiers, host Host) Fingerprint {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	_, _ = h.Write([]byte{0})

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], digest)
	_, _ = h.Write(buf[:])

	_, _ = h.Write([]byte(mods.Bucket))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(mods.Encode()))
	_, _ = fmt.Fprintf(h, ";scale=%.6f;dark=%t", host.Scale, host.Dark)
	return Fingerprint(h.Sum64())
}

// Compose applies mods to the palette of a validated, normalized definition
// and copies the remaining settings through, for the zero Host. Identical
// inputs produce identical snapshots.
func Compose(def *theme.Definition, mods dynamic.Modifiers) Snapshot {
	return ComposeWithDigest(def, def.Digest(), mods, Host{})
}

// ComposeWithDigest is Compose with a precomputed definition digest and an
// explicit host.
func ComposeWithDigest(def *theme.Definition, digest uint64, mods dynamic.Modifiers, host Host) Snapshot {
	snap := Snapshot{
		Theme:  def.Name,
		Mode:   def.Mode,
		IsDark: def.Mode.IsDark(host.Dark),
		Fonts: Fonts{
			Family:          def.Fonts.Family,
			HeadingFamily:   def.Fonts.HeadingFamily,
			MonospaceFamily: def.Fonts.MonospaceFamily,
			BaseSize:        def.Fonts.BaseSize,
			Weight:          def.Fonts.Weight,
			LineHeight:      def.Fonts.LineHeight,
		},
		Widgets: Widgets{
			ButtonRadius:   def.WidgetStyle.ButtonRadius,
			InputRadius:    def.WidgetStyle.InputRadius,
			CardRadius:     def.WidgetStyle.CardRadius,
			ShadowStrength: def.WidgetStyle.ShadowStrength,
			BorderWidth:    def.WidgetStyle.BorderWidth,
			FocusRingWidth: def.WidgetStyle.FocusRingWidth,
			ControlPadding: def.WidgetStyle.ControlPadding,
		},
		HiDPIMode:     def.Display.HiDPIMode,
		Scale:         def.Display.EffectiveScale(host.Scale),
		TextSharpness: def.Display.TextSharpness,
		Animations: Animations{
			Enabled:     def.Animations.IsEnabled(),
			SpeedFactor: def.Animations.SpeedFactor,
			Transition:  time.Duration(def.Animations.TransitionMS) * time.Millisecond,
			Easing:      def.Animations.Easing,
		},
		Fingerprint: ComputeFingerprint(def.Name, digest, mods, host),
	}

	base := def.Colors
	raw := []string{
		base.Primary, base.Secondary, base.Accent, base.Background, base.Foreground,
		base.Success, base.Warning, base.Error, base.Info, base.Disabled,
	}
	for i, target := range snap.Palette.standard() {
		*target = adjust(parseOrZero(raw[i]), mods)
	}
	if mods.Accent != nil {
		snap.Palette.Accent = adjust(*mods.Accent, mods)
	}

	if len(def.Colors.Custom) > 0 {
		snap.Palette.custom = make(map[string]colour.Color, len(def.Colors.Custom))
		for name, value := range def.Colors.Custom {
			snap.Palette.custom[name] = adjust(parseOrZero(value), mods)
		}
	}

	return snap
}

// adjust applies hue shift, saturation, brightness and temperature in order.
// Identity steps are skipped so unmodified colours stay exact.
func adjust(c colour.Color, mods dynamic.Modifiers) colour.Color {
	c = colour.ShiftHue(c, mods.HueShift)
	c = colour.ScaleSaturation(c, mods.Saturation)
	c = colour.ScaleBrightness(c, mods.Brightness)
	if mods.Temperature > 0 {
		c = colour.ApplyTemperature(c, mods.Temperature, mods.TemperatureWeight)
	}
	return c
}

func parseOrZero(raw string) colour.Color {
	c, err := colour.Parse(raw)
	if err != nil {
		return colour.Color{}
	}
	return c
}
