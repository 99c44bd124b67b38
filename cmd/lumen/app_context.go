package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/alexisbeaulieu97/lumen/internal/config"
	"github.com/alexisbeaulieu97/lumen/internal/engine"
	"github.com/alexisbeaulieu97/lumen/internal/logger"
	lumenerrors "github.com/alexisbeaulieu97/lumen/pkg/errors"
)

// appContext bundles the settings and logger created before any command runs.
type appContext struct {
	settings *config.Settings
	log      *logger.Logger
}

func (a *appContext) load(v *viper.Viper, flags *rootFlags, stderr io.Writer) error {
	settings, err := config.Load(v, flags.configPath)
	if err != nil {
		source := flags.configPath
		if source == "" {
			source = "defaults and environment"
		}
		return newCommandError("load settings", source, err, "Fix the reported setting or unset the LUMEN_* variable that sets it.")
	}
	if flags.verbose {
		settings.LogLevel = "debug"
	}

	log, err := logger.New(logger.Options{
		Level:         settings.LogLevel,
		HumanReadable: settings.HumanReadable,
		Writer:        stderr,
		Component:     "lumen",
	})
	if err != nil {
		return newCommandError("create logger", settings.LogLevel, err, "Use one of debug, info, warn or error.")
	}

	a.settings = settings
	a.log = log
	return nil
}

// newEngine builds an engine from the settings and installs every theme in
// the configured directories. It returns the installed names in load order.
func (a *appContext) newEngine() (*engine.Engine, []string, error) {
	eng := engine.New(engine.Options{
		CacheCapacity:      a.settings.CacheCapacity,
		ReevaluateInterval: a.settings.ReevaluateInterval,
		DefaultBlend: engine.Blend{
			Duration: a.settings.DefaultBlend.Duration,
			Easing:   a.settings.DefaultBlend.EasingFunc(),
		},
		Logger:      a.log.With("component", "engine"),
		SystemScale: func() float64 { return a.settings.SystemScale },
		DarkMode:    darkModeDetector(a.settings.Appearance),
	})

	var names []string
	for _, dir := range a.settings.ThemeDirs {
		defs, err := config.LoadThemeDir(dir)
		if err != nil {
			return nil, nil, newCommandError("load themes", dir, err, "Run 'lumen validate' on the failing document.")
		}
		for _, def := range defs {
			if _, err := eng.Install(def); err != nil {
				return nil, nil, newCommandError("install theme", def.Name, err, "Run 'lumen validate' on the failing document.")
			}
			names = appendUnique(names, def.Name)
		}
	}

	a.log.With("count", len(names)).Debug("themes installed")
	return eng, names, nil
}

// resolveTheme accepts either an installed theme name or a path to a theme
// document, which is parsed and installed first.
func resolveTheme(eng *engine.Engine, arg string) (string, error) {
	if !looksLikeThemeFile(arg) {
		if !eng.Registry().Has(arg) {
			return "", newCommandError("find theme", arg, lumenerrors.NewNotFoundError("theme", arg), "Pass --themes <dir> or a path to a theme document.")
		}
		return arg, nil
	}

	def, err := config.ParseTheme(arg)
	if err != nil {
		return "", newCommandError("parse theme", arg, err, "Run 'lumen validate "+arg+"' for details.")
	}
	if _, err := eng.Install(def); err != nil {
		return "", newCommandError("install theme", def.Name, err, "Run 'lumen validate "+arg+"' for details.")
	}
	return def.Name, nil
}

// darkModeDetector resolves the appearance setting. auto asks the terminal
// for its background colour.
func darkModeDetector(appearance string) func() bool {
	switch appearance {
	case "dark":
		return func() bool { return true }
	case "light":
		return func() bool { return false }
	default:
		return lipgloss.HasDarkBackground
	}
}

func looksLikeThemeFile(arg string) bool {
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".yaml", ".yml":
	default:
		return false
	}
	info, err := os.Stat(arg)
	return err == nil && !info.IsDir()
}

func appendUnique(names []string, name string) []string {
	for _, existing := range names {
		if existing == name {
			return names
		}
	}
	return append(names, name)
}
