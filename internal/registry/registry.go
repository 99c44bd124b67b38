// Package registry holds validated theme definitions keyed by name.
package registry

import (
	"sort"
	"sync"
	"time"

	"github.com/alexisbeaulieu97/lumen/internal/logger"
	"github.com/alexisbeaulieu97/lumen/internal/theme"
	lumenerrors "github.com/alexisbeaulieu97/lumen/pkg/errors"
)

// Registry stores installed themes. Reads may run concurrently; installs and
// removals take the write lock.
type Registry struct {
	mu       sync.RWMutex
	themes   map[string]Entry
	revision uint64
	now      func() time.Time
	log      *logger.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger attaches a logger.
func WithLogger(log *logger.Logger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// WithClock overrides the install timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		themes: make(map[string]Entry),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Install validates def and stores a normalized copy under its name,
// replacing any previous definition with that name. On failure the previous
// definition, if any, stays installed.
func (r *Registry) Install(def *theme.Definition) (Entry, error) {
	if err := theme.Validate(def); err != nil {
		name := ""
		if def != nil {
			name = def.Name
		}
		r.log.WithFields(map[string]any{"theme": name, "error": err.Error()}).Warn("theme rejected")
		return Entry{}, err
	}

	normalized, err := theme.Normalize(def)
	if err != nil {
		return Entry{}, lumenerrors.NewValidationError("colors", err.Error(), err)
	}
	digest := normalized.Digest()

	r.mu.Lock()
	defer r.mu.Unlock()

	_, replaced := r.themes[normalized.Name]
	r.revision++
	entry := Entry{
		Definition:  normalized,
		Digest:      digest,
		Revision:    r.revision,
		InstalledAt: r.now(),
	}
	r.themes[normalized.Name] = entry

	msg := "theme installed"
	if replaced {
		msg = "theme replaced"
	}
	r.log.WithFields(map[string]any{"theme": normalized.Name, "revision": entry.Revision}).Info(msg)

	return entry, nil
}

// Resolve returns a private copy of the named definition.
func (r *Registry) Resolve(name string) (*theme.Definition, error) {
	entry, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return entry.Definition.Clone(), nil
}

// Lookup returns the installed entry without copying the definition.
func (r *Registry) Lookup(name string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.themes[name]
	if !ok {
		return Entry{}, lumenerrors.NewNotFoundError("theme", name)
	}
	return entry, nil
}

// Has reports whether a theme with the given name is installed.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.themes[name]
	return ok
}

// Names returns the installed theme names sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.themes))
	for name := range r.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of installed themes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.themes)
}

// Remove uninstalls a theme. Snapshots already computed from it stay valid.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.themes[name]; !ok {
		return lumenerrors.NewNotFoundError("theme", name)
	}
	delete(r.themes, name)
	r.log.With("theme", name).Info("theme removed")
	return nil
}
