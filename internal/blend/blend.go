// Package blend animates the active snapshot between themes.
package blend

import (
	"sync"
	"time"

	"github.com/alexisbeaulieu97/lumen/internal/easing"
	"github.com/alexisbeaulieu97/lumen/internal/snapshot"
)

// State is the transition state of an Engine.
type State int

const (
	StateIdle State = iota
	StateTransitioning
)

func (s State) String() string {
	if s == StateTransitioning {
		return "transitioning"
	}
	return "idle"
}

// Transition describes the in-flight blend, if any.
type Transition struct {
	State    State
	From     snapshot.Snapshot
	To       snapshot.Snapshot
	Elapsed  time.Duration
	Duration time.Duration
	Easing   easing.Easing
}

// Engine owns the single whole-desktop transition. All methods are safe for
// concurrent use.
type Engine struct {
	mu sync.Mutex

	state     State
	active    snapshot.Snapshot
	hasActive bool

	from     snapshot.Snapshot
	to       snapshot.Snapshot
	elapsed  time.Duration
	duration time.Duration
	ease     easing.Easing
}

// New returns an idle engine with no active snapshot.
func New() *Engine {
	return &Engine{}
}

// Set makes s active immediately, abandoning any transition.
func (e *Engine) Set(s snapshot.Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.settle(s)
}

// Begin starts blending from the current snapshot toward target. Without an
// active snapshot, or with a non-positive duration, target becomes active at
// once. If a transition is running, the new one starts from the currently
// interpolated snapshot. It reports whether a timed transition started.
func (e *Engine) Begin(target snapshot.Snapshot, duration time.Duration, ease easing.Easing) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.hasActive || duration <= 0 {
		e.settle(target)
		return false
	}

	switch e.state {
	case StateIdle:
		if e.active.Fingerprint == target.Fingerprint {
			return false
		}
	case StateTransitioning:
		if e.to.Fingerprint == target.Fingerprint {
			return true
		}
	}

	e.state = StateTransitioning
	e.from = e.active
	e.to = target
	e.elapsed = 0
	e.duration = duration
	e.ease = ease
	return true
}

// Tick advances the transition by dt and returns the active snapshot.
func (e *Engine) Tick(dt time.Duration) snapshot.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateTransitioning {
		return e.active
	}
	if dt > 0 {
		e.elapsed += dt
	}

	if e.elapsed >= e.duration {
		e.settle(e.to)
		return e.active
	}

	e.active = Interpolate(e.from, e.to, e.ease.Apply(e.fraction()))
	return e.active
}

// Cancel stops a running transition and keeps the last interpolated
// snapshot active. The target is abandoned.
func (e *Engine) Cancel() snapshot.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateTransitioning {
		e.settle(e.active)
	}
	return e.active
}

// Current returns the active snapshot and whether one has been set.
func (e *Engine) Current() (snapshot.Snapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.active, e.hasActive
}

// State returns the current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

// Progress returns the eased progress of the running transition, or 1 when idle.
func (e *Engine) Progress() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateTransitioning {
		return 1
	}
	return e.ease.Apply(e.fraction())
}

// Transition returns a copy of the transition state.
func (e *Engine) Transition() Transition {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateTransitioning {
		return Transition{State: StateIdle}
	}
	return Transition{
		State:    e.state,
		From:     e.from,
		To:       e.to,
		Elapsed:  e.elapsed,
		Duration: e.duration,
		Easing:   e.ease,
	}
}

func (e *Engine) fraction() float64 {
	if e.duration <= 0 {
		return 1
	}
	return float64(e.elapsed) / float64(e.duration)
}

// settle makes s active and returns to idle. Callers hold e.mu.
func (e *Engine) settle(s snapshot.Snapshot) {
	e.state = StateIdle
	e.active = s
	e.hasActive = true
	e.from = snapshot.Snapshot{}
	e.to = snapshot.Snapshot{}
	e.elapsed = 0
	e.duration = 0
}
