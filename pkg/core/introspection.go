package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	ID             string `json:"id"`
	Path           string `json:"path"`
	RepositoryType string `json:"repository_type"`
	Repository     any    `json:"repository,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	repoType := "repository"
	if comp, ok := s.repo.(introspection.Component); ok {
		repoType = comp.ComponentType()
	}

	var repoState any
	if in, ok := s.repo.(introspection.Introspectable); ok {
		repoState = in.State()
	}

	return StoreState{
		ID:             s.id,
		Path:           s.repo.Path(),
		RepositoryType: repoType,
		Repository:     repoState,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
