package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Progress renders blend transition progress.
type Progress struct {
	bar progress.Model
}

// NewProgress creates a progress component of the given bar width.
func NewProgress(width int) Progress {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = width
	return Progress{bar: bar}
}

// View renders the bar for ratio in [0,1] with a state label.
func (p Progress) View(state string, ratio float64) string {
	ratio = math.Max(0, math.Min(1, ratio))
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%-13s %3.0f%%", state, ratio*100))
	return lipgloss.JoinHorizontal(lipgloss.Left, label, " ", p.bar.ViewAs(ratio))
}
