package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/lumen/internal/dynamic"
	"github.com/alexisbeaulieu97/lumen/internal/snapshot"
	"github.com/alexisbeaulieu97/lumen/internal/theme/themetest"
)

func TestSwatches(t *testing.T) {
	t.Parallel()

	def := themetest.Definition("Dark", "#121212")
	def.Colors.Custom = map[string]string{"sidebar": "#1e1e1e"}
	snap := snapshot.Compose(def, dynamic.Identity())

	s := NewSwatches(snap)
	entries := s.Entries()
	require.Len(t, entries, 11)
	require.Equal(t, Swatch{Name: "primary", Hex: "#1a73e8"}, entries[0])
	require.Equal(t, "#121212", entries[3].Hex)

	view := s.View()
	require.Len(t, strings.Split(view, "\n"), 11)
	require.Contains(t, view, "#1e1e1e")

	entries[0].Hex = "#000000"
	require.Equal(t, "#1a73e8", s.Entries()[0].Hex)
}
