// Package lifecycle exposes store change notifications as a lifecycle.Source.
package lifecycle

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/configstore/pkg/core"
)

// Watcher is anything that can stream change events for a settings file.
// *core.Store satisfies it.
type Watcher interface {
	Watch(ctx context.Context) (<-chan core.Event, error)
}

type storeSource struct {
	watcher Watcher
	out     chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that subscribes to w when started.
func NewSource(w Watcher) lifecycle.Source {
	return &storeSource{
		watcher: w,
		out:     make(chan lifecycle.Event),
	}
}

func (s *storeSource) Events() <-chan lifecycle.Event {
	return s.out
}

// Start subscribes to the watcher and forwards its events until ctx is done
// or the watcher closes its channel. The output channel is closed afterwards.
func (s *storeSource) Start(ctx context.Context) error {
	events, err := s.watcher.Watch(ctx)
	if err != nil {
		close(s.out)
		return fmt.Errorf("failed to start store source: %w", err)
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				// core.Event satisfies lifecycle.Event through String().
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
