// Package typed provides type-safe access to store values.
//
// Values are converted between Go types and the generic document tree with a
// JSON round trip, so `json` struct tags decide the key names.
package typed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/configstore/pkg/core"
)

// Decode converts a generic value (as found in a core.Document) into T.
func Decode[T any](v any) (T, error) {
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("failed to marshal value: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to decode into %T: %w", out, err)
	}
	return out, nil
}

// Encode converts a Go value into the generic tree understood by the dotted path accessor.
func Encode(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnserializable, err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to convert typed value: %w", err)
	}
	return out, nil
}

// Get reads the value at path and decodes it into T.
// The boolean reports whether the path exists; T's zero value is returned when it does not.
func Get[T any](ctx context.Context, s *core.Store, path string) (T, bool, error) {
	var zero T
	v, ok, err := s.Lookup(ctx, path)
	if err != nil || !ok {
		return zero, false, err
	}
	out, err := Decode[T](v)
	if err != nil {
		return zero, true, fmt.Errorf("%s: %w", path, err)
	}
	return out, true, nil
}

// Set encodes value and stores it at path.
func Set[T any](ctx context.Context, s *core.Store, path string, value T) error {
	v, err := Encode(value)
	if err != nil {
		return err
	}
	return s.Set(ctx, path, v)
}

// Store is a typed view of a whole store document, or of the subtree at Path.
type Store[T any] struct {
	store *core.Store
	path  string
}

// NewStore wraps s. An empty path addresses the whole document.
func NewStore[T any](s *core.Store, path string) *Store[T] {
	return &Store[T]{store: s, path: path}
}

// Load decodes the document (or subtree) into T.
func (s *Store[T]) Load(ctx context.Context) (T, error) {
	if s.path == "" {
		doc, err := s.store.LoadAll(ctx)
		if err != nil {
			var zero T
			return zero, err
		}
		return Decode[T](map[string]any(doc))
	}
	v, _, err := Get[T](ctx, s.store, s.path)
	return v, err
}

// Save replaces the document (or subtree) with value.
func (s *Store[T]) Save(ctx context.Context, value T) error {
	if s.path != "" {
		return Set(ctx, s.store, s.path, value)
	}

	v, err := Encode(value)
	if err != nil {
		return err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("%T does not encode to an object", value)
	}
	return s.store.SaveAll(ctx, core.Document(m))
}

// Watch observes changes of the backing file.
func (s *Store[T]) Watch(ctx context.Context) (<-chan core.Event, error) {
	return s.store.Watch(ctx)
}
