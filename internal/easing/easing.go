// Package easing holds the closed set of easing curves shared by theme
// transitions and element effects.
package easing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind enumerates the supported curve families.
type Kind int

const (
	KindLinear Kind = iota
	KindEaseIn
	KindEaseOut
	KindEaseInOut
	KindCubicBezier
)

// Easing maps normalised time to normalised progress. The zero value is linear.
// Control points are only meaningful for KindCubicBezier.
type Easing struct {
	Kind           Kind
	X1, Y1, X2, Y2 float64
}

var (
	Linear    = Easing{Kind: KindLinear}
	EaseIn    = Easing{Kind: KindEaseIn}
	EaseOut   = Easing{Kind: KindEaseOut}
	EaseInOut = Easing{Kind: KindEaseInOut}
)

// CubicBezier returns a CSS-style cubic Bézier curve through (0,0), (x1,y1),
// (x2,y2), (1,1). x1 and x2 are clamped to [0,1] so the curve stays a function
// of time. Non-monotonic y control points are accepted.
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	return Easing{
		Kind: KindCubicBezier,
		X1:   clamp01(x1),
		Y1:   y1,
		X2:   clamp01(x2),
		Y2:   y2,
	}
}

// Apply evaluates the curve at t. Input and output are clamped to [0,1].
func (e Easing) Apply(t float64) float64 {
	t = clamp01(t)
	switch e.Kind {
	case KindEaseIn:
		return t * t
	case KindEaseOut:
		return t * (2 - t)
	case KindEaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	case KindCubicBezier:
		return clamp01(e.bezier(t))
	default:
		return t
	}
}

// String renders the textual form accepted by Parse.
func (e Easing) String() string {
	switch e.Kind {
	case KindEaseIn:
		return "ease-in"
	case KindEaseOut:
		return "ease-out"
	case KindEaseInOut:
		return "ease-in-out"
	case KindCubicBezier:
		return fmt.Sprintf("cubic-bezier(%s,%s,%s,%s)", ftoa(e.X1), ftoa(e.Y1), ftoa(e.X2), ftoa(e.Y2))
	default:
		return "linear"
	}
}

// Parse decodes linear, ease-in, ease-out, ease-in-out or cubic-bezier(a,b,c,d).
func Parse(s string) (Easing, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	switch raw {
	case "", "linear":
		return Linear, nil
	case "ease-in", "ease_in", "easein":
		return EaseIn, nil
	case "ease-out", "ease_out", "easeout":
		return EaseOut, nil
	case "ease-in-out", "ease_in_out", "easeinout":
		return EaseInOut, nil
	}

	if !strings.HasPrefix(raw, "cubic-bezier(") || !strings.HasSuffix(raw, ")") {
		return Easing{}, fmt.Errorf("unknown easing %q", s)
	}

	parts := strings.Split(raw[len("cubic-bezier("):len(raw)-1], ",")
	if len(parts) != 4 {
		return Easing{}, fmt.Errorf("cubic-bezier needs 4 parameters, got %d", len(parts))
	}
	var p [4]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return Easing{}, fmt.Errorf("cubic-bezier parameter %d: %w", i+1, err)
		}
		p[i] = v
	}
	return CubicBezier(p[0], p[1], p[2], p[3]), nil
}

// MarshalText implements encoding.TextMarshaler.
func (e Easing) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Easing) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// UnmarshalYAML decodes the textual form from a theme document.
func (e *Easing) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	return e.UnmarshalText([]byte(raw))
}

// MarshalYAML encodes the textual form.
func (e Easing) MarshalYAML() (any, error) {
	return e.String(), nil
}

const (
	newtonIterations = 8
	newtonEpsilon    = 1e-7
	bisectIterations = 40
)

func (e Easing) bezier(x float64) float64 {
	if x == 0 || x == 1 {
		return x
	}
	s := e.solveX(x)
	return sampleCurve(e.Y1, e.Y2, s)
}

// solveX finds the curve parameter whose x coordinate equals x.
func (e Easing) solveX(x float64) float64 {
	s := x
	for i := 0; i < newtonIterations; i++ {
		diff := sampleCurve(e.X1, e.X2, s) - x
		if math.Abs(diff) < newtonEpsilon {
			return s
		}
		d := sampleDerivative(e.X1, e.X2, s)
		if math.Abs(d) < 1e-6 {
			break
		}
		s -= diff / d
	}

	lo, hi := 0.0, 1.0
	s = x
	for i := 0; i < bisectIterations; i++ {
		v := sampleCurve(e.X1, e.X2, s)
		if math.Abs(v-x) < newtonEpsilon {
			return s
		}
		if v < x {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return s
}

// sampleCurve evaluates one coordinate of the Bézier with fixed endpoints 0 and 1.
func sampleCurve(p1, p2, s float64) float64 {
	inv := 1 - s
	return 3*inv*inv*s*p1 + 3*inv*s*s*p2 + s*s*s
}

func sampleDerivative(p1, p2, s float64) float64 {
	inv := 1 - s
	return 3*inv*inv*p1 + 6*inv*s*(p2-p1) + 3*s*s*(1-p2)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
