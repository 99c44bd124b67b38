// Package engine exposes the entry points a desktop shell drives: theme
// activation, dynamic reevaluation, per-element effects and the frame tick.
package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/lumen/internal/blend"
	"github.com/alexisbeaulieu97/lumen/internal/dynamic"
	"github.com/alexisbeaulieu97/lumen/internal/easing"
	"github.com/alexisbeaulieu97/lumen/internal/effect"
	"github.com/alexisbeaulieu97/lumen/internal/logger"
	"github.com/alexisbeaulieu97/lumen/internal/registry"
	"github.com/alexisbeaulieu97/lumen/internal/snapshot"
	"github.com/alexisbeaulieu97/lumen/internal/theme"
)

// DefaultReevaluateInterval is how often dynamic rules should be reevaluated.
const DefaultReevaluateInterval = 300 * time.Second

// Blend requests an animated switch to a new snapshot.
type Blend struct {
	Duration time.Duration
	Easing   easing.Easing
}

// Options configures an Engine.
type Options struct {
	Registry           *registry.Registry
	CacheCapacity      int
	ReevaluateInterval time.Duration
	// DefaultBlend is used by SetActiveThemeDefault.
	DefaultBlend Blend
	Logger       *logger.Logger
	// SystemScale reports the display scale used by hidpi_mode auto. Nil
	// means 1.
	SystemScale func() float64
	// DarkMode reports whether the host prefers dark appearance, resolving
	// mode auto. Nil means light. Both are called on every recompute with
	// the engine lock held and must not call back into the engine.
	DarkMode func() bool
}

// Reason says why the active target changed.
type Reason string

const (
	ReasonActivate   Reason = "activate"
	ReasonReevaluate Reason = "reevaluate"
	ReasonRefresh    Reason = "refresh"
)

// ChangeEvent is delivered to subscribers when the target snapshot changes.
type ChangeEvent struct {
	Reason      Reason
	Previous    string
	Current     string
	ModeChanged bool
	Target      snapshot.Snapshot
	Animated    bool
}

// Engine wires the registry, dynamic rules, snapshot cache, blend engine and
// effect manager together. Every method is synchronous and safe for
// concurrent use.
type Engine struct {
	mu sync.Mutex

	registry *registry.Registry
	cache    *snapshot.Cache
	blend    *blend.Engine
	effects  *effect.Manager
	log      *logger.Logger

	active       string
	target       snapshot.Snapshot
	ctx          dynamic.Context
	hasContext   bool
	interval     time.Duration
	sinceEval    time.Duration
	defaultBlend Blend
	systemScale  func() float64
	darkMode     func() bool

	subscribers map[int]func(ChangeEvent)
	nextSub     int
}

// New creates an engine. A nil Registry gets a fresh one.
func New(opts Options) *Engine {
	reg := opts.Registry
	if reg == nil {
		reg = registry.New(registry.WithLogger(opts.Logger.With("component", "registry")))
	}

	capacity := opts.CacheCapacity
	if capacity <= 0 {
		capacity = snapshot.DefaultCapacity
	}

	interval := opts.ReevaluateInterval
	if interval <= 0 {
		interval = DefaultReevaluateInterval
	}

	return &Engine{
		registry:     reg,
		cache:        snapshot.NewCache(capacity),
		blend:        blend.New(),
		effects:      effect.NewManager(),
		log:          opts.Logger,
		interval:     interval,
		defaultBlend: opts.DefaultBlend,
		systemScale:  opts.SystemScale,
		darkMode:     opts.DarkMode,
		subscribers:  make(map[int]func(ChangeEvent)),
	}
}

// Registry returns the theme registry backing the engine.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Effects returns the effect manager.
func (e *Engine) Effects() *effect.Manager {
	return e.effects
}

// CacheStats reports snapshot cache counters.
func (e *Engine) CacheStats() snapshot.Stats {
	return e.cache.Stats()
}

// Install validates and stores a theme. Installing over the active theme
// does not change the current snapshot until Refresh is called.
func (e *Engine) Install(def *theme.Definition) (registry.Entry, error) {
	return e.registry.Install(def)
}

// SetActiveTheme activates the named theme evaluated against the last
// context. A nil blend switches immediately. An unknown name returns a
// NotFoundError and leaves the engine unchanged.
func (e *Engine) SetActiveTheme(name string, b *Blend) error {
	e.mu.Lock()
	snap, _, err := e.compute(name)
	if err != nil {
		e.mu.Unlock()
		e.log.With("theme", name).Warn("activation failed")
		return err
	}

	previous := e.active
	prevTarget := e.target
	e.active = name
	animated := e.switchTo(snap, b)
	e.mu.Unlock()

	e.log.WithFields(map[string]any{"theme": name, "previous": previous, "animated": animated}).Info("theme activated")
	e.emit(ChangeEvent{
		Reason:      ReasonActivate,
		Previous:    previous,
		Current:     name,
		ModeChanged: !prevTarget.IsZero() && modeChanged(prevTarget, snap),
		Target:      snap,
		Animated:    animated,
	})
	return nil
}

// SetActiveThemeDefault activates a theme using the configured default blend.
func (e *Engine) SetActiveThemeDefault(name string) error {
	b := e.defaultBlend
	if b.Duration <= 0 {
		return e.SetActiveTheme(name, nil)
	}
	return e.SetActiveTheme(name, &b)
}

// ReevaluateDynamic stores ctx, resets the reevaluation timer and recomputes
// the active theme. When the result differs it blends using the theme's own
// animation settings. It reports whether the target changed.
func (e *Engine) ReevaluateDynamic(ctx dynamic.Context) (bool, error) {
	e.mu.Lock()
	e.ctx = ctx
	e.hasContext = true
	e.sinceEval = 0
	e.mu.Unlock()

	return e.recompute(ReasonReevaluate)
}

// Refresh recomputes the active theme from the registry, e.g. after the
// active theme was reinstalled or the host scale or appearance changed.
func (e *Engine) Refresh() (bool, error) {
	return e.recompute(ReasonRefresh)
}

func (e *Engine) recompute(reason Reason) (bool, error) {
	e.mu.Lock()
	if e.active == "" {
		e.mu.Unlock()
		return false, nil
	}

	name := e.active
	snap, mods, err := e.compute(name)
	if err != nil {
		e.mu.Unlock()
		return false, err
	}
	if snap.Fingerprint == e.target.Fingerprint {
		e.mu.Unlock()
		return false, nil
	}

	prevTarget := e.target
	var b *Blend
	if snap.Animations.Enabled && snap.Animations.Transition > 0 {
		b = &Blend{Duration: themeDuration(snap.Animations), Easing: snap.Animations.Easing}
	}
	animated := e.switchTo(snap, b)
	e.mu.Unlock()

	e.log.WithFields(map[string]any{"theme": name, "bucket": mods.Bucket, "reason": string(reason)}).Debug("dynamic adjustment changed")
	e.emit(ChangeEvent{
		Reason:      reason,
		Previous:    name,
		Current:     name,
		ModeChanged: modeChanged(prevTarget, snap),
		Target:      snap,
		Animated:    animated,
	})
	return true, nil
}

func modeChanged(a, b snapshot.Snapshot) bool {
	return a.Mode != b.Mode || a.IsDark != b.IsDark
}

func themeDuration(a snapshot.Animations) time.Duration {
	if a.SpeedFactor <= 0 {
		return a.Transition
	}
	return time.Duration(float64(a.Transition) / a.SpeedFactor)
}

// Preview returns the snapshot name would have under ctx without touching
// the active theme, the stored context or the blend. Results share the
// snapshot cache.
func (e *Engine) Preview(name string, ctx dynamic.Context) (snapshot.Snapshot, error) {
	entry, err := e.registry.Lookup(name)
	if err != nil {
		return snapshot.Snapshot{}, err
	}

	e.mu.Lock()
	host := e.host()
	e.mu.Unlock()

	mods := dynamic.Evaluate(entry.Definition.Dynamic, ctx)
	fp := snapshot.ComputeFingerprint(name, entry.Digest, mods, host)
	return e.cache.GetOrCompute(fp, func() snapshot.Snapshot {
		return snapshot.ComposeWithDigest(entry.Definition, entry.Digest, mods, host)
	}), nil
}

// host samples the host detectors. Callers hold e.mu.
func (e *Engine) host() snapshot.Host {
	var h snapshot.Host
	if e.systemScale != nil {
		h.Scale = e.systemScale()
	}
	if e.darkMode != nil {
		h.Dark = e.darkMode()
	}
	return h
}

// compute resolves name and returns its snapshot for the stored context,
// going through the cache. Callers hold e.mu.
func (e *Engine) compute(name string) (snapshot.Snapshot, dynamic.Modifiers, error) {
	entry, err := e.registry.Lookup(name)
	if err != nil {
		return snapshot.Snapshot{}, dynamic.Modifiers{}, err
	}

	mods := dynamic.Identity()
	if e.hasContext {
		mods = dynamic.Evaluate(entry.Definition.Dynamic, e.ctx)
	}

	host := e.host()
	fp := snapshot.ComputeFingerprint(name, entry.Digest, mods, host)
	snap := e.cache.GetOrCompute(fp, func() snapshot.Snapshot {
		return snapshot.ComposeWithDigest(entry.Definition, entry.Digest, mods, host)
	})
	return snap, mods, nil
}

// switchTo hands snap to the blend engine. Callers hold e.mu.
func (e *Engine) switchTo(snap snapshot.Snapshot, b *Blend) bool {
	e.target = snap
	if b == nil {
		e.blend.Set(snap)
		return false
	}
	return e.blend.Begin(snap, b.Duration, b.Easing)
}

// Tick advances the blend and every effect by dt and returns the snapshot
// to render. It never logs and never fails.
func (e *Engine) Tick(dt time.Duration) snapshot.Snapshot {
	e.mu.Lock()
	if dt > 0 {
		e.sinceEval += dt
	}
	e.mu.Unlock()

	e.effects.Tick(dt)
	return e.blend.Tick(dt)
}

// ReevaluationDue reports whether the reevaluation interval has elapsed
// since the last ReevaluateDynamic. Scheduling stays with the caller.
func (e *Engine) ReevaluationDue() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.sinceEval >= e.interval
}

// CurrentSnapshot returns the snapshot to render, interpolated while a
// transition runs.
func (e *Engine) CurrentSnapshot() (snapshot.Snapshot, bool) {
	return e.blend.Current()
}

// CancelTransition abandons the running transition, keeping the last
// interpolated snapshot.
func (e *Engine) CancelTransition() snapshot.Snapshot {
	snap := e.blend.Cancel()

	e.mu.Lock()
	e.target = snap
	e.mu.Unlock()
	return snap
}

// TransitionState returns the blend engine's transition state.
func (e *Engine) TransitionState() blend.Transition {
	return e.blend.Transition()
}

// TransitionProgress returns eased transition progress, 1 when idle.
func (e *Engine) TransitionProgress() float64 {
	return e.blend.Progress()
}

// ActiveTheme returns the name of the active theme, or "".
func (e *Engine) ActiveTheme() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.active
}

// Context returns the last context passed to ReevaluateDynamic.
func (e *Engine) Context() (dynamic.Context, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.ctx, e.hasContext
}

// ApplyEffect starts an effect on element and returns its instance ID.
func (e *Engine) ApplyEffect(element string, kind effect.Kind, settings effect.Settings) effect.ID {
	return e.effects.Apply(element, kind, settings)
}

// CancelEffect cancels an effect; unknown or finished effects are ignored.
func (e *Engine) CancelEffect(id effect.ID) bool {
	return e.effects.Cancel(id)
}

// Effect returns the state of an effect instance.
func (e *Engine) Effect(id effect.ID) (effect.Instance, bool) {
	return e.effects.Get(id)
}

// Subscribe registers fn for change events and returns a function that
// removes it. fn runs synchronously outside the engine lock.
func (e *Engine) Subscribe(fn func(ChangeEvent)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextSub
	e.nextSub++
	e.subscribers[id] = fn

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.subscribers, id)
	}
}

func (e *Engine) emit(ev ChangeEvent) {
	e.mu.Lock()
	ids := make([]int, 0, len(e.subscribers))
	for id := range e.subscribers {
		ids = append(ids, id)
	}
	fns := make([]func(ChangeEvent), 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		fns = append(fns, e.subscribers[id])
	}
	e.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
