package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/lumen/internal/snapshot"
)

// Swatch is one rendered palette entry.
type Swatch struct {
	Name string
	Hex  string
}

// Swatches renders a snapshot palette as coloured blocks.
type Swatches struct {
	entries []Swatch
}

// NewSwatches collects the palette entries of snap in display order.
func NewSwatches(snap snapshot.Snapshot) Swatches {
	named := snap.Palette.Entries()
	entries := make([]Swatch, 0, len(named))
	for _, entry := range named {
		entries = append(entries, Swatch{Name: entry.Name, Hex: entry.Color.Hex()})
	}
	return Swatches{entries: entries}
}

// Entries returns the ordered swatches.
func (s Swatches) Entries() []Swatch {
	clone := make([]Swatch, len(s.entries))
	copy(clone, s.entries)
	return clone
}

// View renders one line per swatch: a colour block, the name and the hex.
func (s Swatches) View() string {
	lines := make([]string, 0, len(s.entries))
	for _, entry := range s.entries {
		block := lipgloss.NewStyle().Background(lipgloss.Color(entry.Hex)).Render("    ")
		lines = append(lines, fmt.Sprintf(" %s %-22s %s", block, entry.Name, entry.Hex))
	}
	return strings.Join(lines, "\n")
}
