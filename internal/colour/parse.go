package colour

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Parse decodes a colour string in one of the forms accepted by theme documents:
// #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(), rgba(), hsl() and hsla().
func Parse(s string) (Color, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if raw == "" {
		return Color{}, fmt.Errorf("empty colour")
	}

	switch {
	case strings.HasPrefix(raw, "#"):
		return parseHex(raw)
	case strings.HasPrefix(raw, "rgba("), strings.HasPrefix(raw, "rgb("):
		return parseRGBFunc(raw)
	case strings.HasPrefix(raw, "hsla("), strings.HasPrefix(raw, "hsl("):
		return parseHSLFunc(raw)
	}

	return Color{}, fmt.Errorf("unsupported colour %q", s)
}

// MustParse is Parse for literals known to be valid; it panics otherwise.
func MustParse(s string) Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize rewrites a colour string into canonical lower-case hex.
func Normalize(s string) (string, error) {
	c, err := Parse(s)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

func parseHex(raw string) (Color, error) {
	alpha := 1.0
	switch len(raw) {
	case 4, 7:
	case 5:
		a, err := strconv.ParseUint(raw[4:5], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex colour %q", raw)
		}
		alpha = float64(a) / 15.0
		raw = raw[:4]
	case 9:
		a, err := strconv.ParseUint(raw[7:9], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex colour %q", raw)
		}
		alpha = float64(a) / 255.0
		raw = raw[:7]
	default:
		return Color{}, fmt.Errorf("invalid hex colour %q", raw)
	}

	c, err := colorful.Hex(raw)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex colour %q: %w", raw, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: alpha}, nil
}

func parseRGBFunc(raw string) (Color, error) {
	args, err := funcArgs(raw)
	if err != nil {
		return Color{}, err
	}
	if len(args) != 3 && len(args) != 4 {
		return Color{}, fmt.Errorf("rgb colour %q needs 3 or 4 components", raw)
	}

	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, err := parseChannel(args[i])
		if err != nil {
			return Color{}, fmt.Errorf("rgb colour %q: %w", raw, err)
		}
		ch[i] = v
	}

	alpha := 1.0
	if len(args) == 4 {
		if alpha, err = parseAlpha(args[3]); err != nil {
			return Color{}, fmt.Errorf("rgb colour %q: %w", raw, err)
		}
	}

	return Color{R: ch[0], G: ch[1], B: ch[2], A: alpha}.Clamped(), nil
}

func parseHSLFunc(raw string) (Color, error) {
	args, err := funcArgs(raw)
	if err != nil {
		return Color{}, err
	}
	if len(args) != 3 && len(args) != 4 {
		return Color{}, fmt.Errorf("hsl colour %q needs 3 or 4 components", raw)
	}

	h, err := strconv.ParseFloat(strings.TrimSuffix(args[0], "deg"), 64)
	if err != nil {
		return Color{}, fmt.Errorf("hsl colour %q: invalid hue", raw)
	}
	s, err := parsePercent(args[1])
	if err != nil {
		return Color{}, fmt.Errorf("hsl colour %q: %w", raw, err)
	}
	l, err := parsePercent(args[2])
	if err != nil {
		return Color{}, fmt.Errorf("hsl colour %q: %w", raw, err)
	}

	alpha := 1.0
	if len(args) == 4 {
		if alpha, err = parseAlpha(args[3]); err != nil {
			return Color{}, fmt.Errorf("hsl colour %q: %w", raw, err)
		}
	}

	return FromHSLA(h, s, l, alpha), nil
}

func funcArgs(raw string) ([]string, error) {
	open := strings.IndexByte(raw, '(')
	if open < 0 || !strings.HasSuffix(raw, ")") {
		return nil, fmt.Errorf("malformed colour function %q", raw)
	}
	parts := strings.Split(raw[open+1:len(raw)-1], ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

// parseChannel reads an 8-bit channel or a percentage.
func parseChannel(s string) (float64, error) {
	if strings.HasSuffix(s, "%") {
		return parsePercent(s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid channel %q", s)
	}
	return clamp01(v / 255.0), nil
}

func parsePercent(s string) (float64, error) {
	trimmed := strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q", s)
	}
	if trimmed == s && v <= 1 {
		return clamp01(v), nil
	}
	return clamp01(v / 100.0), nil
}

func parseAlpha(s string) (float64, error) {
	if strings.HasSuffix(s, "%") {
		return parsePercent(s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid alpha %q", s)
	}
	return clamp01(v), nil
}
