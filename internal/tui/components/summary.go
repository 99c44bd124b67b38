package components

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/lumen/internal/effect"
)

// EffectSummary lists effect instances with their status and value.
type EffectSummary struct {
	instances []effect.Instance
}

// NewEffectSummary creates a summary over instances.
func NewEffectSummary(instances []effect.Instance) EffectSummary {
	return EffectSummary{instances: instances}
}

// View renders the summary, or an empty string when there are no effects.
func (s EffectSummary) View() string {
	if len(s.instances) == 0 {
		return ""
	}

	var running, done int
	lines := make([]string, 0, len(s.instances)+1)
	for _, inst := range s.instances {
		if inst.Status.Finished() {
			done++
		} else {
			running++
		}
		lines = append(lines, fmt.Sprintf(" #%d %s on %s: %s (%.2f)", inst.ID, inst.Kind, inst.Element, inst.Status, inst.Value()))
	}
	lines = append(lines, fmt.Sprintf("Effects: %d active, %d finished", running, done))
	return strings.Join(lines, "\n")
}
