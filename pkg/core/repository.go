package core

import "context"

// Repository defines the contract for loading and persisting a single store document.
// Adhering to this interface keeps the store independent of the underlying
// storage mechanism and encoding.
type Repository interface {
	// Load reads the whole document. A missing or corrupt backing file yields
	// an empty, non-nil document and no error.
	Load(ctx context.Context) (Document, error)

	// Save replaces the whole persisted document.
	Save(ctx context.Context, doc Document) error

	// Path returns the location of the backing file.
	Path() string
}

// Watchable defines an interface for repositories that can report external changes.
type Watchable interface {
	// Watch emits an event whenever the backing file is created, modified or removed.
	Watch(ctx context.Context) (<-chan Event, error)
}
