// Package theme describes static theme definitions and the semantic
// validation applied before a definition may be installed.
package theme

import (
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/lumen/internal/easing"
)

// Mode is the declared light/dark preference of a theme.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
	ModeAuto  Mode = "auto"
)

// HiDPIMode selects how the display scale factor is resolved.
type HiDPIMode string

const (
	HiDPIAuto   HiDPIMode = "auto"
	HiDPINormal HiDPIMode = "normal"
	HiDPIHigh   HiDPIMode = "hidpi"
	HiDPICustom HiDPIMode = "custom"
)

// Definition is the immutable static description of a theme.
type Definition struct {
	Name        string      `yaml:"name" validate:"required,max=100"`
	Version     string      `yaml:"version,omitempty" validate:"omitempty,semver"`
	Author      string      `yaml:"author,omitempty"`
	Description string      `yaml:"description,omitempty"`
	Mode        Mode        `yaml:"mode" validate:"required,oneof=light dark auto"`
	Colors      Palette     `yaml:"colors"`
	Fonts       Fonts       `yaml:"fonts"`
	WidgetStyle WidgetStyle `yaml:"widget_style" validate:"required"`
	Animations  Animations  `yaml:"animations,omitempty"`
	Display     Display     `yaml:"display,omitempty"`
	Dynamic     *Dynamic    `yaml:"dynamic,omitempty"`
}

// Palette holds the named colour strings of a theme.
type Palette struct {
	Primary    string            `yaml:"primary" validate:"required,colour"`
	Secondary  string            `yaml:"secondary" validate:"required,colour"`
	Accent     string            `yaml:"accent" validate:"required,colour"`
	Background string            `yaml:"background" validate:"required,colour"`
	Foreground string            `yaml:"foreground" validate:"required,colour"`
	Success    string            `yaml:"success" validate:"required,colour"`
	Warning    string            `yaml:"warning" validate:"required,colour"`
	Error      string            `yaml:"error" validate:"required,colour"`
	Info       string            `yaml:"info" validate:"required,colour"`
	Disabled   string            `yaml:"disabled" validate:"required,colour"`
	Custom     map[string]string `yaml:"custom,omitempty" validate:"omitempty,dive,keys,required,endkeys,colour"`
}

// Fonts describes typography settings. Only Family is mandatory.
type Fonts struct {
	Family          string  `yaml:"family" validate:"required"`
	HeadingFamily   string  `yaml:"heading_family,omitempty"`
	MonospaceFamily string  `yaml:"monospace_family,omitempty"`
	BaseSize        float64 `yaml:"base_size,omitempty" validate:"omitempty,gt=0,lte=200"`
	Weight          int     `yaml:"weight,omitempty" validate:"omitempty,min=100,max=900"`
	LineHeight      float64 `yaml:"line_height,omitempty" validate:"omitempty,gt=0,lte=5"`
}

// WidgetStyle carries widget shape metrics in logical pixels.
type WidgetStyle struct {
	ButtonRadius   float64 `yaml:"button_radius" validate:"gte=0"`
	InputRadius    float64 `yaml:"input_radius" validate:"gte=0"`
	CardRadius     float64 `yaml:"card_radius" validate:"gte=0"`
	ShadowStrength float64 `yaml:"shadow_strength" validate:"gte=0,lte=1"`
	BorderWidth    float64 `yaml:"border_width" validate:"gte=0"`
	FocusRingWidth float64 `yaml:"focus_ring_width" validate:"gte=0"`
	ControlPadding float64 `yaml:"control_padding" validate:"gte=0"`
}

// Animations holds the base animation settings used for dynamic re-blends.
// A nil Enabled means enabled.
type Animations struct {
	Enabled      *bool         `yaml:"enabled,omitempty"`
	SpeedFactor  float64       `yaml:"speed_factor,omitempty" validate:"omitempty,gt=0,lte=10"`
	TransitionMS int           `yaml:"transition_ms,omitempty" validate:"omitempty,min=0,max=60000"`
	Easing       easing.Easing `yaml:"easing,omitempty"`
}

// Display holds display-scaling settings.
type Display struct {
	ScaleFactor   float64   `yaml:"scale_factor,omitempty" validate:"omitempty,gt=0,lte=8"`
	HiDPIMode     HiDPIMode `yaml:"hidpi_mode,omitempty" validate:"omitempty,oneof=auto normal hidpi custom"`
	TextSharpness float64   `yaml:"text_sharpness,omitempty" validate:"omitempty,gte=0,lte=2"`
}

// Dynamic groups the optional rule families evaluated against the environment.
type Dynamic struct {
	TimeOfDay *TimeOfDayRules `yaml:"time_of_day,omitempty"`
	Seasons   *SeasonRules    `yaml:"seasons,omitempty"`
	Weather   *WeatherRules   `yaml:"weather,omitempty"`
}

// TimeOfDayRules are named clock intervals. Strength weights the colour
// temperature tint applied to the palette; nil means DefaultStrength. A nil
// Enabled means enabled.
type TimeOfDayRules struct {
	Enabled  *bool      `yaml:"enabled,omitempty"`
	Strength *float64   `yaml:"strength,omitempty" validate:"omitempty,gte=0,lte=1"`
	Rules    []TimeRule `yaml:"rules" validate:"dive"`
}

// TimeRule covers [Start, End) on a 24-hour clock; End < Start wraps past midnight.
// A zero Temperature means neutral and a zero Brightness means unchanged.
type TimeRule struct {
	Name        string  `yaml:"name" validate:"required"`
	Start       string  `yaml:"start" validate:"required,clock"`
	End         string  `yaml:"end" validate:"required,clock"`
	Temperature float64 `yaml:"temperature,omitempty" validate:"omitempty,gte=1000,lte=40000"`
	Brightness  float64 `yaml:"brightness,omitempty" validate:"omitempty,gt=0,lte=4"`
}

// SeasonRules map calendar months onto seasonal adjustments.
type SeasonRules struct {
	Enabled *bool        `yaml:"enabled,omitempty"`
	Rules   []SeasonRule `yaml:"rules" validate:"dive"`
}

// SeasonRule applies to every month it lists. A nil Saturation means unchanged.
type SeasonRule struct {
	Name       string  `yaml:"name" validate:"required"`
	Months     []int   `yaml:"months" validate:"required,min=1,dive,min=1,max=12"`
	HueShift   float64 `yaml:"hue_shift,omitempty" validate:"gte=-360,lte=360"`
	Saturation *float64 `yaml:"saturation,omitempty" validate:"omitempty,gte=0,lte=4"`
	Accent     string   `yaml:"accent,omitempty" validate:"omitempty,colour"`
}

// WeatherRules map condition tags onto adjustments.
type WeatherRules struct {
	Enabled *bool         `yaml:"enabled,omitempty"`
	Rules   []WeatherRule `yaml:"rules" validate:"dive"`
}

// WeatherRule is matched exactly against the context's condition tag. Nil
// multipliers leave the palette unchanged; zero is a valid multiplier.
type WeatherRule struct {
	Condition   string   `yaml:"condition" validate:"required"`
	HueShift    float64  `yaml:"hue_shift,omitempty" validate:"gte=-360,lte=360"`
	Saturation  *float64 `yaml:"saturation,omitempty" validate:"omitempty,gte=0,lte=4"`
	Brightness  *float64 `yaml:"brightness,omitempty" validate:"omitempty,gte=0,lte=4"`
	Temperature float64  `yaml:"temperature,omitempty" validate:"omitempty,gte=1000,lte=40000"`
	Accent      string   `yaml:"accent,omitempty" validate:"omitempty,colour"`
}

// DefaultStrength is the temperature weight used when a document omits strength.
const DefaultStrength = 0.5

// DefaultAnimations returns the animation settings used when a document omits them.
func DefaultAnimations() Animations {
	return Animations{Enabled: Bool(true), SpeedFactor: 1, TransitionMS: 250, Easing: easing.EaseOut}
}

// Bool returns a pointer to v, for optional switches such as Enabled.
func Bool(v bool) *bool {
	return &v
}

// Float returns a pointer to v, for optional multipliers.
func Float(v float64) *float64 {
	return &v
}

// IsEnabled reports whether animations are on. Nil means on.
func (a Animations) IsEnabled() bool {
	return a.Enabled == nil || *a.Enabled
}

// IsEnabled reports whether the family is evaluated. Nil means on.
func (r *TimeOfDayRules) IsEnabled() bool {
	return r != nil && (r.Enabled == nil || *r.Enabled)
}

// EffectiveStrength returns Strength, or DefaultStrength when unset.
func (r *TimeOfDayRules) EffectiveStrength() float64 {
	if r == nil || r.Strength == nil {
		return DefaultStrength
	}
	return *r.Strength
}

// IsEnabled reports whether the family is evaluated. Nil means on.
func (r *SeasonRules) IsEnabled() bool {
	return r != nil && (r.Enabled == nil || *r.Enabled)
}

// IsEnabled reports whether the family is evaluated. Nil means on.
func (r *WeatherRules) IsEnabled() bool {
	return r != nil && (r.Enabled == nil || *r.Enabled)
}

// UnmarshalYAML applies document defaults before decoding so that omitted
// sections behave like the defaults rather than zero values.
func (d *Definition) UnmarshalYAML(value *yaml.Node) error {
	type plain Definition
	decoded := plain{Animations: DefaultAnimations()}
	if err := value.Decode(&decoded); err != nil {
		return err
	}
	*d = Definition(decoded)
	return nil
}

// UnmarshalYAML defaults the easing to ease-out, which a zero Easing cannot express.
func (a *Animations) UnmarshalYAML(value *yaml.Node) error {
	type plain Animations
	decoded := plain(DefaultAnimations())
	if err := value.Decode(&decoded); err != nil {
		return err
	}
	*a = Animations(decoded)
	return nil
}
