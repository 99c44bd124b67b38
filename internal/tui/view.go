package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/lumen/internal/blend"
	"github.com/alexisbeaulieu97/lumen/internal/effect"
	"github.com/alexisbeaulieu97/lumen/internal/theme"
	"github.com/alexisbeaulieu97/lumen/internal/tui/components"
	"github.com/alexisbeaulieu97/lumen/internal/tui/widgets"
)

// View renders the current state of the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, titleStyle.Render(fmt.Sprintf("Lumen • %s", m.title())))

	if len(m.themes) > 0 {
		sections = append(sections, sectionStyle.Render("Themes"), m.themeList())
	}

	if !m.snapshot.IsZero() {
		sections = append(sections,
			sectionStyle.Render("Palette"),
			components.NewSwatches(m.snapshot).View(),
			sectionStyle.Render("Widgets"),
			widgets.New(m.snapshot).WithMotion(m.motion()).Gallery(),
		)
	}

	sections = append(sections, sectionStyle.Render("Transition"), m.transitionLine())

	if summary := components.NewEffectSummary(m.engine.Effects().ForElement(PreviewElement)).View(); summary != "" {
		sections = append(sections, sectionStyle.Render("Effects"), summary)
	}

	if m.err != nil {
		sections = append(sections, errorStyle.Render(m.err.Error()))
	}

	sections = append(sections, helpStyle.Render(m.help()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) title() string {
	if m.snapshot.IsZero() {
		return "no active theme"
	}
	mode := string(m.snapshot.Mode)
	if m.snapshot.Mode == theme.ModeAuto {
		resolved := theme.ModeLight
		if m.snapshot.IsDark {
			resolved = theme.ModeDark
		}
		mode += ", " + string(resolved)
	}
	title := fmt.Sprintf("%s (%s)", m.snapshot.Theme, mode)
	if m.weather != "" {
		title += " • " + m.weather
	}
	return title
}

func (m Model) themeList() string {
	names := make([]string, 0, len(m.themes))
	for i, name := range m.themes {
		if i == m.selected {
			names = append(names, activeStyle.Render("["+name+"]"))
			continue
		}
		names = append(names, themeStyle.Render(name))
	}
	return " " + strings.Join(names, "  ")
}

func (m Model) transitionLine() string {
	tr := m.engine.TransitionState()
	line := m.progress.View(tr.State.String(), m.engine.TransitionProgress())
	if tr.State == blend.StateTransitioning {
		return m.spinner.View() + " " + line
	}
	return "  " + line
}

// motion folds the running preview effects into a widget offset and fade.
func (m Model) motion() widgets.Motion {
	var mo widgets.Motion
	for _, inst := range m.engine.Effects().ForElement(PreviewElement) {
		if inst.Status != effect.StatusRunning && inst.Status != effect.StatusPending {
			continue
		}
		switch inst.Kind {
		case effect.KindSlide:
			distance := inst.Settings.Params["distance"]
			mo.Offset += int(math.Round(distance * (1 - inst.Value())))
		case effect.KindFade:
			mo.Faded = mo.Faded || inst.Value() < 0.5
		}
	}
	return mo
}

func (m Model) help() string {
	parts := make([]string, 0, len(m.keys.bindings()))
	for _, b := range m.keys.bindings() {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
