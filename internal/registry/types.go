package registry

import (
	"time"

	"github.com/alexisbeaulieu97/lumen/internal/theme"
)

// Entry is an installed theme. Definition is normalized and shared; callers
// must treat it as read-only.
type Entry struct {
	Definition *theme.Definition
	// Digest fingerprints the definition content and changes on every
	// reinstall with different content.
	Digest      uint64
	Revision    uint64
	InstalledAt time.Time
}

// Name returns the theme name of the entry.
func (e Entry) Name() string {
	if e.Definition == nil {
		return ""
	}
	return e.Definition.Name
}
