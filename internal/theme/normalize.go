package theme

import (
	"fmt"
	"hash/fnv"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/lumen/internal/colour"
)

// PaletteEntry pairs a palette key with its colour string.
type PaletteEntry struct {
	Key   string
	Value string
}

// Entries returns the ten standard palette keys in document order.
func (p Palette) Entries() []PaletteEntry {
	return []PaletteEntry{
		{Key: "primary", Value: p.Primary},
		{Key: "secondary", Value: p.Secondary},
		{Key: "accent", Value: p.Accent},
		{Key: "background", Value: p.Background},
		{Key: "foreground", Value: p.Foreground},
		{Key: "success", Value: p.Success},
		{Key: "warning", Value: p.Warning},
		{Key: "error", Value: p.Error},
		{Key: "info", Value: p.Info},
		{Key: "disabled", Value: p.Disabled},
	}
}

// Lookup returns the colour string for a standard or custom key.
func (p Palette) Lookup(key string) (string, bool) {
	for _, entry := range p.Entries() {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	v, ok := p.Custom[key]
	return v, ok
}

func defaultFonts() Fonts {
	return Fonts{MonospaceFamily: "monospace", BaseSize: 14, Weight: 400, LineHeight: 1.5}
}

func defaultDisplay() Display {
	return Display{ScaleFactor: 1, HiDPIMode: HiDPIAuto, TextSharpness: 1}
}

// Normalize returns a copy of a validated definition with every colour in
// canonical lower-case hex and omitted optional settings filled in.
func Normalize(def *Definition) (*Definition, error) {
	out := def.Clone()

	if err := normalizePalette(&out.Colors); err != nil {
		return nil, err
	}

	if out.Fonts.HeadingFamily == "" {
		out.Fonts.HeadingFamily = out.Fonts.Family
	}
	if err := mergo.Merge(&out.Fonts, defaultFonts()); err != nil {
		return nil, fmt.Errorf("apply font defaults: %w", err)
	}
	// Easing is left alone: the zero value is linear. Pointer switches are
	// set by hand since mergo treats a pointer to false as empty.
	if err := mergo.Merge(&out.Animations, Animations{SpeedFactor: 1, TransitionMS: 250}); err != nil {
		return nil, fmt.Errorf("apply animation defaults: %w", err)
	}
	if out.Animations.Enabled == nil {
		out.Animations.Enabled = Bool(true)
	}
	if err := mergo.Merge(&out.Display, defaultDisplay()); err != nil {
		return nil, fmt.Errorf("apply display defaults: %w", err)
	}

	if out.Dynamic != nil {
		if err := normalizeDynamic(out.Dynamic); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func normalizePalette(p *Palette) error {
	fields := []*string{
		&p.Primary, &p.Secondary, &p.Accent, &p.Background, &p.Foreground,
		&p.Success, &p.Warning, &p.Error, &p.Info, &p.Disabled,
	}
	for _, field := range fields {
		hex, err := colour.Normalize(*field)
		if err != nil {
			return err
		}
		*field = hex
	}
	for key, value := range p.Custom {
		hex, err := colour.Normalize(value)
		if err != nil {
			return fmt.Errorf("custom colour %q: %w", key, err)
		}
		p.Custom[key] = hex
	}
	return nil
}

func normalizeDynamic(d *Dynamic) error {
	if tod := d.TimeOfDay; tod != nil {
		if tod.Enabled == nil {
			tod.Enabled = Bool(true)
		}
		if tod.Strength == nil {
			tod.Strength = Float(DefaultStrength)
		}
	}
	if d.Seasons != nil && d.Seasons.Enabled == nil {
		d.Seasons.Enabled = Bool(true)
	}
	if d.Weather != nil && d.Weather.Enabled == nil {
		d.Weather.Enabled = Bool(true)
	}
	if d.Seasons != nil {
		for i := range d.Seasons.Rules {
			if err := normalizeAccent(&d.Seasons.Rules[i].Accent); err != nil {
				return err
			}
		}
	}
	if d.Weather != nil {
		for i := range d.Weather.Rules {
			if err := normalizeAccent(&d.Weather.Rules[i].Accent); err != nil {
				return err
			}
		}
	}
	return nil
}

func normalizeAccent(accent *string) error {
	if *accent == "" {
		return nil
	}
	hex, err := colour.Normalize(*accent)
	if err != nil {
		return err
	}
	*accent = hex
	return nil
}

// Clone returns a deep copy that shares no maps or slices with d.
func (d *Definition) Clone() *Definition {
	if d == nil {
		return nil
	}
	out := *d
	out.Animations.Enabled = clonePtr(d.Animations.Enabled)

	if d.Colors.Custom != nil {
		out.Colors.Custom = make(map[string]string, len(d.Colors.Custom))
		for k, v := range d.Colors.Custom {
			out.Colors.Custom[k] = v
		}
	}

	if d.Dynamic != nil {
		dyn := Dynamic{}
		if d.Dynamic.TimeOfDay != nil {
			tod := *d.Dynamic.TimeOfDay
			tod.Enabled = clonePtr(tod.Enabled)
			tod.Strength = clonePtr(tod.Strength)
			tod.Rules = append([]TimeRule(nil), tod.Rules...)
			dyn.TimeOfDay = &tod
		}
		if d.Dynamic.Seasons != nil {
			seasons := *d.Dynamic.Seasons
			seasons.Enabled = clonePtr(seasons.Enabled)
			seasons.Rules = make([]SeasonRule, len(d.Dynamic.Seasons.Rules))
			for i, rule := range d.Dynamic.Seasons.Rules {
				rule.Months = append([]int(nil), rule.Months...)
				rule.Saturation = clonePtr(rule.Saturation)
				seasons.Rules[i] = rule
			}
			dyn.Seasons = &seasons
		}
		if d.Dynamic.Weather != nil {
			weather := *d.Dynamic.Weather
			weather.Enabled = clonePtr(weather.Enabled)
			weather.Rules = make([]WeatherRule, len(d.Dynamic.Weather.Rules))
			for i, rule := range d.Dynamic.Weather.Rules {
				rule.Saturation = clonePtr(rule.Saturation)
				rule.Brightness = clonePtr(rule.Brightness)
				weather.Rules[i] = rule
			}
			dyn.Weather = &weather
		}
		out.Dynamic = &dyn
	}

	return &out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Digest fingerprints the content of the definition. Two definitions with the
// same digest produce the same snapshots for the same modifiers.
func (d *Definition) Digest() uint64 {
	h := fnv.New64a()
	data, err := yaml.Marshal(d)
	if err != nil {
		_, _ = fmt.Fprintf(h, "%#v", d)
		return h.Sum64()
	}
	_, _ = h.Write(data)
	return h.Sum64()
}

// EffectiveScale resolves the scale factor implied by the HiDPI mode. Auto
// takes the scale reported by the host system; a non-positive system scale
// means 1.
func (d Display) EffectiveScale(system float64) float64 {
	switch d.HiDPIMode {
	case HiDPINormal:
		return 1
	case HiDPIHigh:
		return 2
	case HiDPICustom:
		if d.ScaleFactor > 0 {
			return d.ScaleFactor
		}
		return 1
	default:
		if system > 0 {
			return system
		}
		return 1
	}
}

// IsDark resolves the mode to dark or light. Auto follows the host preference.
func (m Mode) IsDark(systemDark bool) bool {
	switch m {
	case ModeDark:
		return true
	case ModeLight:
		return false
	default:
		return systemDark
	}
}

// EffectiveTemperature treats an unset temperature as neutral.
func (r TimeRule) EffectiveTemperature() float64 {
	if r.Temperature <= 0 {
		return colour.NeutralTemperature
	}
	return r.Temperature
}

// EffectiveBrightness treats an unset brightness as unchanged.
func (r TimeRule) EffectiveBrightness() float64 {
	if r.Brightness <= 0 {
		return 1
	}
	return r.Brightness
}
