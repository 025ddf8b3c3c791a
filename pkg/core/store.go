package core

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/configstore/pkg/dotpath"
)

// Store exposes a dictionary-like view over a Repository.
// It keeps no state between calls: every read loads the whole document and
// every mutation persists the whole document before returning.
type Store struct {
	id   string
	repo Repository
}

// NewStore creates a new Store for the given id.
func NewStore(id string, repo Repository) (*Store, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if repo == nil {
		return nil, errors.New("store repository cannot be nil")
	}
	return &Store{id: id, repo: repo}, nil
}

// ID returns the store identifier.
func (s *Store) ID() string {
	return s.id
}

// Path returns the location of the backing file. It never creates it.
func (s *Store) Path() string {
	return s.repo.Path()
}

// ApplyDefaults merges defaults under the persisted top-level keys and
// persists the result. Persisted values win.
func (s *Store) ApplyDefaults(ctx context.Context, defaults Document) error {
	current, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	merged := defaults.Clone()
	for k, v := range current {
		merged[k] = v
	}
	return s.repo.Save(ctx, merged)
}

// LoadAll returns the full document. It is never nil.
func (s *Store) LoadAll(ctx context.Context) (Document, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

// SaveAll replaces the persisted document with doc.
func (s *Store) SaveAll(ctx context.Context, doc Document) error {
	if doc == nil {
		doc = Document{}
	}
	return s.repo.Save(ctx, doc)
}

// Get returns the value at path, or nil when it is absent.
func (s *Store) Get(ctx context.Context, path string) (any, error) {
	doc, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	v, _ := dotpath.Get(doc, path)
	return v, nil
}

// Lookup is like Get but also reports whether the path exists.
func (s *Store) Lookup(ctx context.Context, path string) (any, bool, error) {
	doc, err := s.LoadAll(ctx)
	if err != nil {
		return nil, false, err
	}
	v, ok := dotpath.Get(doc, path)
	return v, ok, nil
}

// Has reports whether path exists.
func (s *Store) Has(ctx context.Context, path string) (bool, error) {
	_, ok, err := s.Lookup(ctx, path)
	return ok, err
}

// Set assigns value at path and persists the document.
// Mapping values are copied, so later writes never alias the caller's map.
func (s *Store) Set(ctx context.Context, path string, value any) error {
	return s.update(ctx, func(doc Document) {
		dotpath.Set(doc, path, cloneValue(value))
	})
}

// SetAll treats every top-level key of values as a dotted path and sets it,
// persisting the document once. Paths are applied in lexical order.
func (s *Store) SetAll(ctx context.Context, values map[string]any) error {
	paths := make([]string, 0, len(values))
	for path := range values {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	return s.update(ctx, func(doc Document) {
		for _, path := range paths {
			dotpath.Set(doc, path, cloneValue(values[path]))
		}
	})
}

// Delete removes the value at path and persists the document.
// Deleting a missing path is not an error.
func (s *Store) Delete(ctx context.Context, path string) error {
	return s.update(ctx, func(doc Document) {
		dotpath.Delete(doc, path)
	})
}

// Clear persists an empty document.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Save(ctx, Document{})
}

// Size returns the number of top-level keys.
func (s *Store) Size(ctx context.Context) (int, error) {
	doc, err := s.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(doc), nil
}

// Keys returns the sorted dotted paths of every leaf value matching pattern.
// An empty pattern returns all of them.
func (s *Store) Keys(ctx context.Context, pattern string) ([]string, error) {
	doc, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return dotpath.Match(doc, pattern)
}

// Watch observes changes of the backing file if the repository supports it.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, ErrNotWatchable
	}
	return w.Watch(ctx)
}

func (s *Store) update(ctx context.Context, fn func(doc Document)) error {
	doc, err := s.LoadAll(ctx)
	if err != nil {
		return err
	}
	fn(doc)
	if err := s.repo.Save(ctx, doc); err != nil {
		return fmt.Errorf("failed to persist %s: %w", s.id, err)
	}
	return nil
}
