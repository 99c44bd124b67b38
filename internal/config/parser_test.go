package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/lumen/internal/easing"
	"github.com/alexisbeaulieu97/lumen/internal/theme"
	lumenerrors "github.com/alexisbeaulieu97/lumen/pkg/errors"
)

const validTheme = `name: Midnight
version: 1.2.0
mode: dark
colors:
  primary: "#1a73e8"
  secondary: "#5f6368"
  accent: "#ff8800"
  background: "#121212"
  foreground: "#e8eaed"
  success: "#34a853"
  warning: "#fbbc04"
  error: "#ea4335"
  info: "#4285f4"
  disabled: "#9aa0a6"
  custom:
    sidebar: "#1e1e1e"
fonts:
  family: Inter
widget_style:
  button_radius: 6
  input_radius: 4
  card_radius: 8
  shadow_strength: 0.3
  border_width: 1
  focus_ring_width: 2
  control_padding: 8
dynamic:
  time_of_day:
    rules:
      - name: day
        start: "07:00"
        end: "16:00"
      - name: night
        start: "19:00"
        end: "05:00"
        temperature: 3200
        brightness: 0.8
`

func TestParseTheme(t *testing.T) {
	t.Parallel()

	invalidYAML := "name: Broken\ncolors: [1, 2\n"

	missingColours := `name: Partial
mode: dark
colors:
  primary: "#000000"
fonts:
  family: Inter
widget_style:
  button_radius: 1
`

	badVersion := validTheme[:len("name: Midnight\n")] + "version: beta\n" + validTheme[len("name: Midnight\nversion: 1.2.0\n"):]

	cases := []struct {
		name     string
		contents string
		assert   func(t *testing.T, def *theme.Definition, err error)
	}{
		{
			name:     "valid theme is parsed with defaults",
			contents: validTheme,
			assert: func(t *testing.T, def *theme.Definition, err error) {
				require.NoError(t, err)
				require.NotNil(t, def)
				require.Equal(t, "Midnight", def.Name)
				require.Equal(t, theme.ModeDark, def.Mode)
				require.Equal(t, "#1e1e1e", def.Colors.Custom["sidebar"])
				require.True(t, def.Animations.IsEnabled())
				require.Equal(t, easing.EaseOut, def.Animations.Easing)
				require.NotNil(t, def.Dynamic.TimeOfDay)
				require.True(t, def.Dynamic.TimeOfDay.IsEnabled())
				require.Equal(t, theme.DefaultStrength, def.Dynamic.TimeOfDay.EffectiveStrength())
				require.Len(t, def.Dynamic.TimeOfDay.Rules, 2)
			},
		},
		{
			name:     "invalid yaml returns parse error with line",
			contents: invalidYAML,
			assert: func(t *testing.T, def *theme.Definition, err error) {
				require.Error(t, err)
				var parseErr *lumenerrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Positive(t, parseErr.Line)
			},
		},
		{
			name:     "empty document returns parse error",
			contents: "",
			assert: func(t *testing.T, def *theme.Definition, err error) {
				var parseErr *lumenerrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Contains(t, parseErr.Message, "empty")
			},
		},
		{
			name:     "missing colours returns validation error",
			contents: missingColours,
			assert: func(t *testing.T, def *theme.Definition, err error) {
				var validationErr *lumenerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Contains(t, validationErr.Fields, "colors.background")
				require.Contains(t, validationErr.Fields, "colors.disabled")
			},
		},
		{
			name:     "version must be semver",
			contents: badVersion,
			assert: func(t *testing.T, def *theme.Definition, err error) {
				var validationErr *lumenerrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Contains(t, validationErr.Message, "version")
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeTempFile(t, t.TempDir(), "theme.yaml", tc.contents)
			def, err := ParseTheme(path)
			tc.assert(t, def, err)
		})
	}
}

func TestParseThemeMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ParseTheme(filepath.Join(t.TempDir(), "absent.yaml"))
	var parseErr *lumenerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Zero(t, parseErr.Line)
}

func TestLoadThemeDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTempFile(t, dir, "b.yml", validTheme)
	writeTempFile(t, dir, "a.yaml", "name: Aurora\n"+validTheme[len("name: Midnight\n"):])
	writeTempFile(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))

	defs, err := LoadThemeDir(dir)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	require.Equal(t, "Aurora", defs[0].Name)
	require.Equal(t, "Midnight", defs[1].Name)

	writeTempFile(t, dir, "c.yaml", "name: [")
	_, err = LoadThemeDir(dir)
	var parseErr *lumenerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, filepath.Join(dir, "c.yaml"), parseErr.Path)
}

func writeTempFile(t *testing.T, dir, name, contents string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}
