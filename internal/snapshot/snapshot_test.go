package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/lumen/internal/colour"
	"github.com/alexisbeaulieu97/lumen/internal/dynamic"
	"github.com/alexisbeaulieu97/lumen/internal/easing"
	"github.com/alexisbeaulieu97/lumen/internal/theme"
	"github.com/alexisbeaulieu97/lumen/internal/theme/themetest"
)

func normalized(t *testing.T, def *theme.Definition) *theme.Definition {
	t.Helper()
	require.NoError(t, theme.Validate(def))
	out, err := theme.Normalize(def)
	require.NoError(t, err)
	return out
}

func TestComposeIsIdempotent(t *testing.T) {
	t.Parallel()

	def := normalized(t, themetest.Definition("Dark", "#121212"))
	mods := dynamic.Identity()
	mods.HueShift = 12
	mods.Temperature = 3200
	mods.TemperatureWeight = 0.5

	a := Compose(def, mods)
	b := Compose(def, mods)

	assert.Equal(t, a, b)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)
}

func TestComposeIdentityKeepsColoursExact(t *testing.T) {
	t.Parallel()

	def := normalized(t, themetest.Definition("Dark", "#121212"))
	snap := Compose(def, dynamic.Identity())

	assert.Equal(t, colour.MustParse("#121212"), snap.Palette.Background)
	assert.Equal(t, "#1a73e8", snap.Palette.Primary.Hex())
	assert.Equal(t, "Dark", snap.Theme)
	assert.Equal(t, theme.ModeDark, snap.Mode)
	assert.Equal(t, "Inter", snap.Fonts.Family)
	assert.Equal(t, 400, snap.Fonts.Weight)
	assert.Equal(t, 6.0, snap.Widgets.ButtonRadius)
	assert.Equal(t, 1.0, snap.Scale)
	assert.Equal(t, 200*time.Millisecond, snap.Animations.Transition)
	assert.Equal(t, easing.Linear, snap.Animations.Easing)
}

func TestComposeAppliesModifiers(t *testing.T) {
	t.Parallel()

	def := themetest.Definition("Dark", "#121212")
	def.Colors.Primary = "hsl(100, 50%, 50%)"
	def.Colors.Custom = map[string]string{"brand": "hsl(10, 50%, 50%)"}
	def = normalized(t, def)

	accent := colour.MustParse("#00ff00")
	mods := dynamic.Identity()
	mods.HueShift = 20
	mods.Brightness = 0.5
	mods.Accent = &accent

	snap := Compose(def, mods)

	h, _, l := snap.Palette.Primary.HSL()
	assert.InDelta(t, 120, h, 1)
	assert.InDelta(t, 0.25, l, 0.01)

	ah, _, al := snap.Palette.Accent.HSL()
	assert.InDelta(t, 140, ah, 1)
	assert.InDelta(t, 0.25, al, 0.01)

	brand, ok := snap.Palette.Custom("brand")
	require.True(t, ok)
	bh, _, _ := brand.HSL()
	assert.InDelta(t, 30, bh, 1)

	// font and widget settings are not affected by dynamic rules
	plain := Compose(def, dynamic.Identity())
	assert.Equal(t, plain.Fonts, snap.Fonts)
	assert.Equal(t, plain.Widgets, snap.Widgets)
	assert.NotEqual(t, plain.Fingerprint, snap.Fingerprint)
}

func TestComposeWarmsWithTemperature(t *testing.T) {
	t.Parallel()

	def := normalized(t, themetest.Definition("Light", "#ffffff"))
	mods := dynamic.Identity()
	mods.Temperature = 3200
	mods.TemperatureWeight = 1

	snap := Compose(def, mods)
	assert.Less(t, snap.Palette.Background.B, snap.Palette.Background.R)
}

func TestComposeScale(t *testing.T) {
	t.Parallel()

	def := themetest.Definition("Dark", "#121212")
	def.Display = theme.Display{HiDPIMode: theme.HiDPIHigh}
	snap := Compose(normalized(t, def), dynamic.Identity())
	assert.Equal(t, 2.0, snap.Scale)

	def.Display = theme.Display{HiDPIMode: theme.HiDPICustom, ScaleFactor: 1.25}
	snap = Compose(normalized(t, def), dynamic.Identity())
	assert.Equal(t, 1.25, snap.Scale)
}

func TestComposeResolvesAutoFromHost(t *testing.T) {
	t.Parallel()

	def := themetest.Definition("Aurora", "#202020")
	def.Mode = theme.ModeAuto
	def.Display = theme.Display{HiDPIMode: theme.HiDPIAuto, ScaleFactor: 1.25}
	def = normalized(t, def)

	light := ComposeWithDigest(def, def.Digest(), dynamic.Identity(), Host{Scale: 1.5})
	assert.Equal(t, 1.5, light.Scale)
	assert.False(t, light.IsDark)

	dark := ComposeWithDigest(def, def.Digest(), dynamic.Identity(), Host{Scale: 2, Dark: true})
	assert.Equal(t, 2.0, dark.Scale)
	assert.True(t, dark.IsDark)
	assert.NotEqual(t, light.Fingerprint, dark.Fingerprint)

	plain := Compose(def, dynamic.Identity())
	assert.Equal(t, 1.0, plain.Scale)
	assert.False(t, plain.IsDark)

	def.Mode = theme.ModeDark
	assert.True(t, ComposeWithDigest(def, def.Digest(), dynamic.Identity(), Host{}).IsDark)
}

func TestFingerprintInputs(t *testing.T) {
	t.Parallel()

	mods := dynamic.Identity()
	base := ComputeFingerprint("Dark", 1, mods, Host{})

	assert.Equal(t, base, ComputeFingerprint("Dark", 1, mods, Host{}))
	assert.NotEqual(t, base, ComputeFingerprint("Light", 1, mods, Host{}))
	assert.NotEqual(t, base, ComputeFingerprint("Dark", 2, mods, Host{}))
	assert.NotEqual(t, base, ComputeFingerprint("Dark", 1, mods, Host{Scale: 2}))
	assert.NotEqual(t, base, ComputeFingerprint("Dark", 1, mods, Host{Dark: true}))

	bucketed := mods
	bucketed.Bucket = "time=night"
	assert.NotEqual(t, base, ComputeFingerprint("Dark", 1, bucketed, Host{}))

	def := normalized(t, themetest.Definition("Dark", "#121212"))
	assert.Equal(t, ComputeFingerprint("Dark", def.Digest(), mods, Host{}), Compose(def, mods).Fingerprint)
	assert.Len(t, base.String(), 16)
}

func TestSnapshotTextAndLookup(t *testing.T) {
	t.Parallel()

	def := themetest.Definition("Dark", "#121212")
	def.Colors.Custom = map[string]string{"zeta": "#000000", "alpha": "#ffffff"}
	snap := Compose(normalized(t, def), dynamic.Identity())

	text := snap.Text()
	assert.Contains(t, text, "colors.background: #121212\n")
	assert.Contains(t, text, "fonts.family: Inter\n")
	assert.Contains(t, text, "animations.easing: linear\n")

	entries := snap.Palette.Entries()
	require.Len(t, entries, 12)
	assert.Equal(t, "alpha", entries[10].Name)
	assert.Equal(t, "zeta", entries[11].Name)

	c, ok := snap.Palette.Lookup("error")
	require.True(t, ok)
	assert.Equal(t, "#ea4335", c.Hex())
	_, ok = snap.Palette.Lookup("nope")
	assert.False(t, ok)
}

func TestWithCustomCopiesMap(t *testing.T) {
	t.Parallel()

	custom := map[string]colour.Color{"brand": colour.Black}
	snap := Snapshot{Theme: "x"}.WithCustom(custom)
	custom["brand"] = colour.White

	got, ok := snap.Palette.Custom("brand")
	require.True(t, ok)
	assert.Equal(t, colour.Black, got)
}
