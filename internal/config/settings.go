package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/lumen/internal/easing"
	lumenerrors "github.com/alexisbeaulieu97/lumen/pkg/errors"
)

// EnvPrefix prefixes environment overrides, e.g. LUMEN_CACHE_CAPACITY.
const EnvPrefix = "LUMEN"

// Settings holds the runtime configuration of the engine and its shells.
type Settings struct {
	LogLevel           string        `mapstructure:"log_level" validate:"required,log_level"`
	HumanReadable      bool          `mapstructure:"human_readable"`
	CacheCapacity      int           `mapstructure:"cache_capacity" validate:"min=1,max=4096"`
	ReevaluateInterval time.Duration `mapstructure:"reevaluate_interval" validate:"min=1s"`
	FrameInterval      time.Duration `mapstructure:"frame_interval" validate:"min=1ms,max=1s"`
	DefaultBlend       BlendSettings `mapstructure:"default_blend"`
	ThemeDirs          []string      `mapstructure:"theme_dirs" validate:"omitempty,dive,required"`
	// Appearance resolves themes declared with mode auto: light, dark, or
	// auto to ask the terminal.
	Appearance string `mapstructure:"appearance" validate:"oneof=auto light dark"`
	// SystemScale is the display scale used by hidpi_mode auto.
	SystemScale float64 `mapstructure:"system_scale" validate:"gt=0,lte=8"`
}

// BlendSettings describe the blend used when a theme is activated without
// explicit timing.
type BlendSettings struct {
	Duration time.Duration `mapstructure:"duration" validate:"min=0,max=1m"`
	Easing   string        `mapstructure:"easing" validate:"easing"`
}

// EasingFunc returns the parsed easing. Settings that passed validation
// always parse.
func (b BlendSettings) EasingFunc() easing.Easing {
	e, err := easing.Parse(b.Easing)
	if err != nil {
		return easing.EaseOut
	}
	return e
}

// DefaultSettings returns the values used when nothing overrides them.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:           "info",
		HumanReadable:      term.IsTerminal(int(os.Stdout.Fd())),
		CacheCapacity:      32,
		ReevaluateInterval: 300 * time.Second,
		FrameInterval:      16 * time.Millisecond,
		DefaultBlend: BlendSettings{
			Duration: 250 * time.Millisecond,
			Easing:   easing.EaseOut.String(),
		},
		Appearance:  "auto",
		SystemScale: 1,
	}
}

// NewViper returns a viper instance with defaults registered and LUMEN_
// environment overrides enabled. Callers may bind flags to it before Load.
func NewViper() *viper.Viper {
	v := viper.New()

	d := DefaultSettings()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("human_readable", d.HumanReadable)
	v.SetDefault("cache_capacity", d.CacheCapacity)
	v.SetDefault("reevaluate_interval", d.ReevaluateInterval)
	v.SetDefault("frame_interval", d.FrameInterval)
	v.SetDefault("default_blend.duration", d.DefaultBlend.Duration)
	v.SetDefault("default_blend.easing", d.DefaultBlend.Easing)
	v.SetDefault("theme_dirs", []string{})
	v.SetDefault("appearance", d.Appearance)
	v.SetDefault("system_scale", d.SystemScale)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the optional settings file at path into v, decodes and
// validates the result.
func Load(v *viper.Viper, path string) (*Settings, error) {
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
				return nil, lumenerrors.NewParseError(path, 0, err)
			}
			return nil, lumenerrors.NewParseError(path, extractLine(err), err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, lumenerrors.NewConfigurationError("settings", err.Error())
	}

	if err := ValidateSettings(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSettings loads settings from defaults, the optional file at path and
// the environment.
func LoadSettings(path string) (*Settings, error) {
	return Load(NewViper(), path)
}
