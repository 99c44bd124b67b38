// Package tui implements the interactive theme preview: a palette view that
// follows the engine frame by frame while themes are switched and blended.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/lumen/internal/dynamic"
	"github.com/alexisbeaulieu97/lumen/internal/engine"
	"github.com/alexisbeaulieu97/lumen/internal/snapshot"
	"github.com/alexisbeaulieu97/lumen/internal/tui/components"
)

// DefaultFrameInterval is the preview refresh cadence.
const DefaultFrameInterval = 16 * time.Millisecond

// PreviewElement is the element identifier effects are applied to.
const PreviewElement = "preview"

// FrameMsg drives one engine tick. Time is the wall-clock frame time.
type FrameMsg struct {
	Time time.Time
}

// Options configures the preview model.
type Options struct {
	Engine        *engine.Engine
	Themes        []string
	FrameInterval time.Duration
	Weather       string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Model contains the Bubbletea state of the theme preview.
type Model struct {
	engine   *engine.Engine
	themes   []string
	selected int
	frame    time.Duration
	weather  string
	now      func() time.Time

	keys     keyMap
	spinner  spinner.Model
	progress components.Progress

	snapshot  snapshot.Snapshot
	lastFrame time.Time
	err       error
	quitting  bool
}

// NewModel constructs a preview over eng. The first theme that is already
// active is selected.
func NewModel(opts Options) Model {
	frame := opts.FrameInterval
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	m := Model{
		engine:   opts.Engine,
		themes:   append([]string(nil), opts.Themes...),
		frame:    frame,
		weather:  opts.Weather,
		now:      now,
		keys:     defaultKeyMap(),
		spinner:  s,
		progress: components.NewProgress(30),
	}

	active := opts.Engine.ActiveTheme()
	for i, name := range m.themes {
		if name == active {
			m.selected = i
		}
	}
	m.snapshot, _ = opts.Engine.CurrentSnapshot()
	return m
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.nextFrame(), m.spinner.Tick)
}

func (m Model) nextFrame() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return FrameMsg{Time: t} })
}

// Snapshot returns the snapshot rendered by the last frame.
func (m Model) Snapshot() snapshot.Snapshot {
	return m.snapshot
}

// Selected returns the name of the selected theme, or "".
func (m Model) Selected() string {
	if len(m.themes) == 0 {
		return ""
	}
	return m.themes[m.selected]
}

// Err returns the last engine error shown in the status line.
func (m Model) Err() error {
	return m.err
}

// Weather returns the weather condition fed to reevaluation.
func (m Model) Weather() string {
	return m.weather
}

// Quitting reports whether the user asked to leave.
func (m Model) Quitting() bool {
	return m.quitting
}

func (m Model) context() dynamic.Context {
	return dynamic.NewContext(m.now(), m.weather)
}
