package widgets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/lumen/internal/colour"
	"github.com/alexisbeaulieu97/lumen/internal/dynamic"
	"github.com/alexisbeaulieu97/lumen/internal/snapshot"
	"github.com/alexisbeaulieu97/lumen/internal/theme/themetest"
)

func kit(t *testing.T, mutate func(w *snapshot.Widgets)) Kit {
	t.Helper()
	snap := snapshot.Compose(themetest.Definition("Dark", "#121212"), dynamic.Identity())
	if mutate != nil {
		mutate(&snap.Widgets)
	}
	return New(snap)
}

func TestButtonBorders(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(w *snapshot.Widgets)
		corner string
	}{
		{name: "rounded when radius is set", corner: "╭"},
		{name: "square without radius", mutate: func(w *snapshot.Widgets) { w.ButtonRadius = 0 }, corner: "┌"},
		{name: "thick for wide borders", mutate: func(w *snapshot.Widgets) { w.BorderWidth = 3 }, corner: "┏"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out := kit(t, tc.mutate).Button("OK", ButtonOptions{})
			assert.Contains(t, out, "OK")
			assert.Contains(t, out, tc.corner)
		})
	}

	out := kit(t, func(w *snapshot.Widgets) { w.BorderWidth = 0 }).Button("OK", ButtonOptions{})
	assert.NotContains(t, out, "╭")
	assert.Equal(t, 1, strings.Count(out, "\n")+1)
}

func TestFocusUsesThickRing(t *testing.T) {
	t.Parallel()

	k := kit(t, nil)
	assert.Contains(t, k.Button("Go", ButtonOptions{Focus: true}), "┏")

	noRing := kit(t, func(w *snapshot.Widgets) { w.FocusRingWidth = 0 })
	assert.NotContains(t, noRing.Button("Go", ButtonOptions{Focus: true}), "┏")
}

func TestPaddingFromControlPadding(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, kit(t, nil).padding())
	assert.Equal(t, 0, kit(t, func(w *snapshot.Widgets) { w.ControlPadding = 2 }).padding())
	assert.Equal(t, 4, kit(t, func(w *snapshot.Widgets) { w.ControlPadding = 200 }).padding())
}

func TestMotionOffsetsWidgets(t *testing.T) {
	t.Parallel()

	k := kit(t, nil)
	still := k.Alert("Saved", AlertSuccess)
	moved := k.WithMotion(Motion{Offset: 3}).Alert("Saved", AlertSuccess)

	require.Contains(t, still, "Saved")
	for _, line := range strings.Split(moved, "\n") {
		assert.True(t, strings.HasPrefix(line, "   "), "line %q", line)
	}
}

func TestInputPlaceholder(t *testing.T) {
	t.Parallel()

	k := kit(t, nil)
	assert.Contains(t, k.Input("", "Search", 20), "Search")
	assert.Contains(t, k.Input("query", "Search", 20), "query")
}

func TestGalleryShowsEveryWidget(t *testing.T) {
	t.Parallel()

	out := kit(t, nil).Gallery()
	for _, want := range []string{"Primary", "Secondary", "Focused", "Disabled", "Search", "Dark", "Inter", "Saved", "Battery low", "Sync failed"} {
		assert.Contains(t, out, want)
	}
}

func TestContrastAndShadow(t *testing.T) {
	t.Parallel()

	assert.Equal(t, colour.Black, contrastOn(colour.MustParse("#ffffff")))
	assert.Equal(t, colour.White, contrastOn(colour.MustParse("#121212")))

	bg := colour.MustParse("#808080")
	assert.Equal(t, bg, shadow(bg, 0))
	_, _, l := shadow(bg, 1).HSL()
	_, _, l0 := bg.HSL()
	assert.InDelta(t, l0*0.5, l, 1e-9)
}
