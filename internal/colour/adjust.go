package colour

import "math"

// NeutralTemperature is the white point, in kelvin, that leaves colours untouched.
const NeutralTemperature = 6500.0

const (
	minTemperature = 1000.0
	maxTemperature = 40000.0
)

// LerpHSL interpolates two colours in HSL space. Hue travels the shorter arc;
// saturation, lightness and alpha interpolate linearly. An achromatic endpoint
// takes the other endpoint's hue so greys do not sweep through red.
// t is clamped to [0,1]; the endpoints are returned exactly at 0 and 1.
func LerpHSL(a, b Color, t float64) Color {
	t = clamp01(t)
	if t == 0 {
		return a
	}
	if t == 1 {
		return b
	}

	h1, s1, l1 := a.HSL()
	h2, s2, l2 := b.HSL()
	switch {
	case s1 == 0 && s2 != 0:
		h1 = h2
	case s2 == 0 && s1 != 0:
		h2 = h1
	}

	return FromHSLA(
		lerpAngle(h1, h2, t),
		s1+(s2-s1)*t,
		l1+(l2-l1)*t,
		a.A+(b.A-a.A)*t,
	)
}

// LerpRGB interpolates channel-wise in RGB space.
func LerpRGB(a, b Color, t float64) Color {
	t = clamp01(t)
	if t == 0 {
		return a
	}
	if t == 1 {
		return b
	}
	return Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}.Clamped()
}

// ShiftHue rotates the hue by deg degrees, wrapping at 360.
func ShiftHue(c Color, deg float64) Color {
	if deg == 0 || math.IsNaN(deg) {
		return c
	}
	h, s, l := c.HSL()
	return FromHSLA(h+deg, s, l, c.A)
}

// ScaleSaturation multiplies saturation by factor and clamps to [0,1].
func ScaleSaturation(c Color, factor float64) Color {
	if factor == 1 || math.IsNaN(factor) {
		return c
	}
	h, s, l := c.HSL()
	return FromHSLA(h, s*math.Max(0, factor), l, c.A)
}

// ScaleBrightness multiplies lightness by factor and clamps to [0,1].
func ScaleBrightness(c Color, factor float64) Color {
	if factor == 1 || math.IsNaN(factor) {
		return c
	}
	h, s, l := c.HSL()
	return FromHSLA(h, s, l*math.Max(0, factor), c.A)
}

// KelvinToRGB approximates the colour of a black body at the given temperature
// (Tanner Helland's fit of the Planckian locus). Input is clamped to
// [1000K, 40000K].
func KelvinToRGB(kelvin float64) Color {
	if math.IsNaN(kelvin) {
		kelvin = NeutralTemperature
	}
	temp := math.Max(minTemperature, math.Min(maxTemperature, kelvin)) / 100.0

	var r, g, b float64
	if temp <= 66 {
		r = 255
		g = 99.4708025861*math.Log(temp) - 161.1195681661
	} else {
		r = 329.698727446 * math.Pow(temp-60, -0.1332047592)
		g = 288.1221695283 * math.Pow(temp-60, -0.0755148492)
	}

	switch {
	case temp >= 66:
		b = 255
	case temp <= 19:
		b = 0
	default:
		b = 138.5177312231*math.Log(temp-10) - 305.0447927307
	}

	return Color{R: clamp01(r / 255), G: clamp01(g / 255), B: clamp01(b / 255), A: 1}
}

// ApplyTemperature tints c toward the white point of kelvin by weight in [0,1].
// The tint is relative to NeutralTemperature, so 6500K is an identity.
func ApplyTemperature(c Color, kelvin, weight float64) Color {
	weight = clamp01(weight)
	if weight == 0 || kelvin <= 0 || math.IsNaN(kelvin) {
		return c
	}

	target := KelvinToRGB(kelvin)
	neutral := KelvinToRGB(NeutralTemperature)
	tint := Color{
		R: ratio(target.R, neutral.R),
		G: ratio(target.G, neutral.G),
		B: ratio(target.B, neutral.B),
	}

	tinted := Color{R: c.R * tint.R, G: c.G * tint.G, B: c.B * tint.B, A: c.A}
	return LerpRGB(c, tinted, weight)
}

func ratio(v, ref float64) float64 {
	if ref <= 0 {
		return 1
	}
	return clamp01(v / ref)
}

func lerpAngle(a, b, t float64) float64 {
	delta := math.Mod(b-a, 360)
	if delta > 180 {
		delta -= 360
	} else if delta < -180 {
		delta += 360
	}
	return wrapHue(a + delta*t)
}
