package platform

import (
	"context"

	"github.com/aretw0/configstore/pkg/core"
)

// defaultsRepository overlays defaults on every load without persisting them.
// It backs read-only stores, which cannot write their defaults to disk.
type defaultsRepository struct {
	core.Repository
	defaults core.Document
}

func (r *defaultsRepository) Load(ctx context.Context) (core.Document, error) {
	doc, err := r.Repository.Load(ctx)
	if err != nil {
		return nil, err
	}

	merged := r.defaults.Clone()
	for k, v := range doc {
		merged[k] = v
	}
	return merged, nil
}

// Watch forwards to the wrapped repository so overlaying does not hide it.
func (r *defaultsRepository) Watch(ctx context.Context) (<-chan core.Event, error) {
	w, ok := r.Repository.(core.Watchable)
	if !ok {
		return nil, core.ErrNotWatchable
	}
	return w.Watch(ctx)
}
