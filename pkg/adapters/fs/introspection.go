package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path            string     `json:"path"`
	Extension       string     `json:"extension"`
	ReadOnly        bool       `json:"read_only"`
	TruncateCorrupt bool       `json:"truncate_corrupt"`
	WatcherActive   bool       `json:"watcher_active"`
	Recoveries      int        `json:"corrupt_recoveries"`
	LastLoad        *time.Time `json:"last_load,omitempty"`
	LastSave        *time.Time `json:"last_save,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return RepositoryState{
		Path:            r.config.Path,
		Extension:       r.serializer.Extension(),
		ReadOnly:        r.config.ReadOnly,
		TruncateCorrupt: r.config.TruncateCorrupt,
		WatcherActive:   r.watcherActive,
		Recoveries:      r.recoveries,
		LastLoad:        r.lastLoad,
		LastSave:        r.lastSave,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs-repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}

func (r *Repository) recordLoad() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastLoad = &now
}

func (r *Repository) recordSave() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastSave = &now
}
