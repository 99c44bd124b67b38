package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/lumen/internal/effect"
)

// Update handles Bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		dt := m.frame
		if !m.lastFrame.IsZero() {
			dt = msg.Time.Sub(m.lastFrame)
		}
		m.lastFrame = msg.Time
		m.snapshot = m.engine.Tick(dt)
		if m.engine.ReevaluationDue() {
			m.reevaluate()
		}
		if m.quitting {
			return m, nil
		}
		return m, m.nextFrame()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.QuitMsg:
		m.quitting = true
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.step(1)
	case key.Matches(msg, m.keys.Prev):
		m.step(-1)
	case key.Matches(msg, m.keys.Cancel):
		m.snapshot = m.engine.CancelTransition()
	case key.Matches(msg, m.keys.Reevaluate):
		m.reevaluate()
	case key.Matches(msg, m.keys.Fade):
		m.engine.ApplyEffect(PreviewElement, effect.KindFade, effect.Settings{})
	case key.Matches(msg, m.keys.Slide):
		m.engine.ApplyEffect(PreviewElement, effect.KindSlide, effect.Settings{
			Direction: effect.DirectionLeft,
			Params:    map[string]float64{"distance": 8},
		})
	case key.Matches(msg, m.keys.Weather):
		m.weather = nextWeather(m.weather)
		m.reevaluate()
	}
	return m, nil
}

// step activates the theme delta positions away from the selection.
func (m *Model) step(delta int) {
	if len(m.themes) == 0 {
		return
	}
	next := (m.selected + delta + len(m.themes)) % len(m.themes)
	if err := m.engine.SetActiveThemeDefault(m.themes[next]); err != nil {
		m.err = err
		return
	}
	m.selected = next
	m.err = nil
	m.snapshot, _ = m.engine.CurrentSnapshot()
}

func (m *Model) reevaluate() {
	if _, err := m.engine.ReevaluateDynamic(m.context()); err != nil {
		m.err = err
		return
	}
	m.err = nil
}

// weatherCycle is the order the weather key steps through. "" clears the condition.
var weatherCycle = []string{"", "clear", "cloudy", "rain", "snow", "storm"}

func nextWeather(current string) string {
	for i, w := range weatherCycle {
		if w == current {
			return weatherCycle[(i+1)%len(weatherCycle)]
		}
	}
	return weatherCycle[0]
}
