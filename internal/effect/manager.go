package effect

import (
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"

	"github.com/alexisbeaulieu97/lumen/internal/easing"
)

// DefaultSettings apply to kinds without registered defaults.
var DefaultSettings = Settings{
	Duration:  300 * time.Millisecond,
	Easing:    easing.EaseOut,
	Strength:  1,
	Direction: DirectionNone,
}

// Manager owns every effect instance in an arena ordered by ID. All methods
// are safe for concurrent use and none of them fail.
type Manager struct {
	mu       sync.Mutex
	arena    *treemap.Map
	nextID   ID
	defaults map[Kind]Settings
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{
		arena:    treemap.NewWith(utils.UInt64Comparator),
		defaults: make(map[Kind]Settings),
	}
}

// SetDefaults registers the settings used to fill zero fields for kind.
func (m *Manager) SetDefaults(kind Kind, settings Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()

	settings.Params = cloneParams(settings.Params)
	m.defaults[kind] = settings
}

// Defaults returns the settings used to fill zero fields for kind.
func (m *Manager) Defaults(kind Kind) Settings {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.defaultsFor(kind)
}

func (m *Manager) defaultsFor(kind Kind) Settings {
	if s, ok := m.defaults[kind]; ok {
		s.Params = cloneParams(s.Params)
		return s
	}
	return DefaultSettings
}

// Apply creates a Pending instance for element and returns its ID. Several
// instances may target the same element at once.
func (m *Manager) Apply(element string, kind Kind, settings Settings) ID {
	m.mu.Lock()
	defer m.mu.Unlock()

	resolved := m.resolve(kind, settings)

	m.nextID++
	inst := &Instance{
		ID:       m.nextID,
		Element:  element,
		Kind:     kind,
		Settings: resolved,
		Status:   StatusPending,
	}
	m.arena.Put(uint64(inst.ID), inst)
	return inst.ID
}

// resolve fills zero fields from the kind defaults. The default easing only
// applies when neither duration nor easing was given, since the zero easing
// is linear.
func (m *Manager) resolve(kind Kind, settings Settings) Settings {
	defaults := m.defaultsFor(kind)
	timingUnset := settings.Duration <= 0 && settings.Easing == (easing.Easing{})

	fill := defaults
	fill.Easing = easing.Easing{}
	settings.Params = cloneParams(settings.Params)
	// Merge only fails for mismatched or non-struct arguments; both are Settings.
	_ = mergo.Merge(&settings, fill)

	if timingUnset {
		settings.Easing = defaults.Easing
	}
	settings.Duration = max(settings.Duration, 0)
	settings.Delay = max(settings.Delay, 0)
	return settings
}

// Tick advances every live instance by dt. Pending instances start running
// on their first tick; an instance whose elapsed time reaches its delay plus
// duration completes and is retained.
func (m *Manager) Tick(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.arena.Each(func(_ interface{}, value interface{}) {
		inst := value.(*Instance)
		switch inst.Status {
		case StatusPending:
			inst.Status = StatusRunning
		case StatusRunning:
		default:
			return
		}

		inst.Elapsed += dt
		if inst.Elapsed >= inst.end() {
			inst.Elapsed = inst.end()
			inst.Status = StatusCompleted
		}
	})
}

// Cancel moves a Pending or Running instance to Cancelled. Unknown and
// finished instances are left alone. It reports whether anything changed.
func (m *Manager) Cancel(id ID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.lookup(id)
	if !ok || inst.Status.Finished() {
		return false
	}
	inst.Status = StatusCancelled
	return true
}

// Get returns a copy of the instance.
func (m *Manager) Get(id ID) (Instance, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.lookup(id)
	if !ok {
		return Instance{}, false
	}
	return inst.snapshot(), true
}

// Value returns the eased, strength-scaled progress of an instance.
func (m *Manager) Value(id ID) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.lookup(id)
	if !ok {
		return 0, false
	}
	return inst.Value(), true
}

// Param scales the named parameter by the instance's current value, e.g. a
// slide "distance" of 40 at value 0.5 yields 20.
func (m *Manager) Param(id ID, name string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.lookup(id)
	if !ok {
		return 0, false
	}
	p, ok := inst.Settings.Params[name]
	if !ok {
		return 0, false
	}
	return p * inst.Value(), true
}

// ForElement returns copies of the element's instances ordered by ID.
func (m *Manager) ForElement(element string) []Instance {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Instance
	m.arena.Each(func(_ interface{}, value interface{}) {
		inst := value.(*Instance)
		if inst.Element == element {
			out = append(out, inst.snapshot())
		}
	})
	return out
}

// All returns copies of every instance ordered by ID.
func (m *Manager) All() []Instance {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Instance, 0, m.arena.Size())
	for _, value := range m.arena.Values() {
		out = append(out, value.(*Instance).snapshot())
	}
	return out
}

// Len returns the number of retained instances.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.arena.Size()
}

// Clear drops every instance of element and returns how many were removed.
func (m *Manager) Clear(element string) int {
	return m.removeWhere(func(inst *Instance) bool { return inst.Element == element })
}

// ClearFinished drops Completed and Cancelled instances.
func (m *Manager) ClearFinished() int {
	return m.removeWhere(func(inst *Instance) bool { return inst.Status.Finished() })
}

func (m *Manager) removeWhere(match func(*Instance) bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var doomed []interface{}
	m.arena.Each(func(key interface{}, value interface{}) {
		if match(value.(*Instance)) {
			doomed = append(doomed, key)
		}
	})
	for _, key := range doomed {
		m.arena.Remove(key)
	}
	return len(doomed)
}

func (m *Manager) lookup(id ID) (*Instance, bool) {
	value, ok := m.arena.Get(uint64(id))
	if !ok {
		return nil, false
	}
	return value.(*Instance), true
}

func (i *Instance) snapshot() Instance {
	out := *i
	out.Settings.Params = cloneParams(i.Settings.Params)
	return out
}

func cloneParams(params map[string]float64) map[string]float64 {
	if params == nil {
		return nil
	}
	out := make(map[string]float64, len(params))
	for k, v := range params {
		out[k] = v
	}
	return out
}
