package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/configstore/pkg/core"
)

// Watch observes the store file and emits an event for every change made to it,
// by this process or another one. The channel is closed when ctx is done.
//
// The parent directory is watched rather than the file, because atomic saves
// replace the file's inode. It is created if missing unless the repository is read-only.
func (r *Repository) Watch(ctx context.Context) (<-chan core.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Dir(r.config.Path)
	if !r.config.ReadOnly {
		if err := os.MkdirAll(dir, DirMode); err != nil {
			return nil, r.wrapErr(fmt.Errorf("failed to create directories: %w", err))
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, r.wrapErr(fmt.Errorf("failed to watch %s: %w", dir, err))
	}

	w := &watchWorker{
		repo:    r,
		target:  filepath.Clean(r.config.Path),
		watcher: watcher,
		events:  make(chan core.Event, 16),
	}
	_, statErr := os.Stat(w.target)
	w.exists = statErr == nil

	r.setWatcherActive(true)
	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		r.logger.Error("watcher stopped", "error", err)
		if r.config.ErrorHandler != nil {
			r.config.ErrorHandler(fmt.Errorf("watcher stopped: %w", err))
		}
	}))

	return w.events, nil
}

type watchWorker struct {
	repo    *Repository
	target  string
	watcher *fsnotify.Watcher
	events  chan core.Event
	exists  bool
}

// run is the main event loop; it owns the watcher and the events channel.
func (w *watchWorker) run(ctx context.Context) error {
	defer close(w.events)
	defer w.repo.setWatcherActive(false)
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if e, ok := w.translate(event); ok {
				select {
				case w.events <- e:
				case <-ctx.Done():
					return nil
				}
			}

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.repo.logger.Error("fsnotify error", "error", wErr)
			if w.repo.config.ErrorHandler != nil {
				w.repo.config.ErrorHandler(wErr)
			}
		}
	}
}

// translate maps a raw directory event to a store event, ignoring other files
// (including the temp files used by atomic writes).
func (w *watchWorker) translate(event fsnotify.Event) (core.Event, bool) {
	if filepath.Clean(event.Name) != w.target {
		return core.Event{}, false
	}
	w.repo.logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	var eType core.EventType
	switch {
	case event.Has(fsnotify.Create):
		eType = core.EventCreate
		if w.exists {
			eType = core.EventModify
		}
		w.exists = true
	case event.Has(fsnotify.Write):
		eType = core.EventModify
		w.exists = true
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		eType = core.EventDelete
		w.exists = false
	default:
		return core.Event{}, false
	}

	return core.Event{
		Type:      eType,
		Path:      w.target,
		Timestamp: time.Now().Unix(),
	}, true
}
