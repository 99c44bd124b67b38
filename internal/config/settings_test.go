package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/lumen/internal/easing"
	lumenerrors "github.com/alexisbeaulieu97/lumen/pkg/errors"
)

func TestLoadSettingsDefaults(t *testing.T) {
	t.Parallel()

	s, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, 32, s.CacheCapacity)
	assert.Equal(t, 300*time.Second, s.ReevaluateInterval)
	assert.Equal(t, 16*time.Millisecond, s.FrameInterval)
	assert.Equal(t, 250*time.Millisecond, s.DefaultBlend.Duration)
	assert.Equal(t, easing.EaseOut, s.DefaultBlend.EasingFunc())
	assert.Empty(t, s.ThemeDirs)
	assert.Equal(t, "auto", s.Appearance)
	assert.Equal(t, 1.0, s.SystemScale)
}

func TestLoadSettingsFile(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, t.TempDir(), "lumen.yaml", `log_level: debug
cache_capacity: 8
reevaluate_interval: 1m
default_blend:
  duration: 400ms
  easing: cubic-bezier(0.4, 0, 0.2, 1)
theme_dirs:
  - /usr/share/lumen/themes
appearance: dark
system_scale: 1.5
`)

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 8, s.CacheCapacity)
	assert.Equal(t, time.Minute, s.ReevaluateInterval)
	assert.Equal(t, 16*time.Millisecond, s.FrameInterval, "unset keys keep defaults")
	assert.Equal(t, 400*time.Millisecond, s.DefaultBlend.Duration)
	assert.Equal(t, easing.CubicBezier(0.4, 0, 0.2, 1), s.DefaultBlend.EasingFunc())
	assert.Equal(t, []string{"/usr/share/lumen/themes"}, s.ThemeDirs)
	assert.Equal(t, "dark", s.Appearance)
	assert.Equal(t, 1.5, s.SystemScale)
}

func TestLoadSettingsEnvOverride(t *testing.T) {
	t.Setenv("LUMEN_CACHE_CAPACITY", "64")
	t.Setenv("LUMEN_DEFAULT_BLEND_EASING", "linear")

	s, err := LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, 64, s.CacheCapacity)
	assert.Equal(t, easing.Linear, s.DefaultBlend.EasingFunc())
}

func TestLoadSettingsValidation(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, t.TempDir(), "lumen.yaml", `log_level: loud
cache_capacity: 0
default_blend:
  easing: wobble
appearance: sepia
system_scale: 0
`)

	_, err := LoadSettings(path)
	var validationErr *lumenerrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "log_level")
	assert.Contains(t, validationErr.Fields, "cache_capacity")
	assert.Contains(t, validationErr.Fields, "default_blend.easing")
	assert.Contains(t, validationErr.Fields, "appearance")
	assert.Contains(t, validationErr.Fields, "system_scale")
}

func TestLoadSettingsMalformedFile(t *testing.T) {
	t.Parallel()

	path := writeTempFile(t, t.TempDir(), "lumen.yaml", "log_level: [\n")

	_, err := LoadSettings(path)
	var parseErr *lumenerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, path, parseErr.Path)
}

func TestValidatorIsShared(t *testing.T) {
	t.Parallel()

	assert.Same(t, validatorInstance(), validatorInstance())
}
