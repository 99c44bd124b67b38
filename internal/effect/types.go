// Package effect tracks per-element visual effects such as fades and slides.
// Elements are referenced by identifier only; the manager never touches them.
package effect

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexisbeaulieu97/lumen/internal/easing"
)

// Kind is the closed set of effect types.
type Kind int

const (
	KindFade Kind = iota
	KindSlide
	KindBlur
	KindParticle
	KindReflection
)

var kindNames = map[Kind]string{
	KindFade:       "fade",
	KindSlide:      "slide",
	KindBlur:       "blur",
	KindParticle:   "particle",
	KindReflection: "reflection",
}

// Kinds lists every effect kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindFade, KindSlide, KindBlur, KindParticle, KindReflection}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind resolves a kind from its name.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for kind, known := range kindNames {
		if known == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown effect kind %q", s)
}

// Direction orients directional effects such as slides.
type Direction string

const (
	DirectionNone  Direction = "none"
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
	DirectionIn    Direction = "in"
	DirectionOut   Direction = "out"
)

// Settings parameterise one effect instance. Zero fields are filled from the
// defaults registered for the kind, so a zero Duration or Strength means
// "use the default". A negative Duration or Delay is clamped to zero; a
// negative Duration therefore completes the effect on its first tick.
type Settings struct {
	Duration  time.Duration
	Delay     time.Duration
	Easing    easing.Easing
	Strength  float64
	Direction Direction
	Params    map[string]float64
}

// Status is the lifecycle state of an instance.
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusCompleted
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return "pending"
	}
}

// Finished reports whether the status is terminal.
func (s Status) Finished() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ID identifies an instance. IDs increase monotonically per manager.
type ID uint64

// Instance is a copy of one effect's state.
type Instance struct {
	ID       ID
	Element  string
	Kind     Kind
	Settings Settings
	Elapsed  time.Duration
	Status   Status
}

// Progress returns the raw fraction of the effect's duration that has
// passed after its delay, in [0,1].
func (i Instance) Progress() float64 {
	if i.Status == StatusCompleted {
		return 1
	}
	active := i.Elapsed - i.Settings.Delay
	if active <= 0 {
		return 0
	}
	if i.Settings.Duration <= 0 || active >= i.Settings.Duration {
		return 1
	}
	return float64(active) / float64(i.Settings.Duration)
}

// Value returns the eased progress scaled by strength.
func (i Instance) Value() float64 {
	return i.Settings.Easing.Apply(i.Progress()) * i.Settings.Strength
}

// end is the elapsed time at which the instance completes.
func (i Instance) end() time.Duration {
	return i.Settings.Delay + i.Settings.Duration
}
