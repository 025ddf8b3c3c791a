package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/configstore/pkg/adapters/fs"
	"github.com/aretw0/configstore/pkg/core"
)

// New opens the store identified by id.
//
//	store, err := platform.New("my-app", core.Document{"theme": "dark"}, platform.WithGlobalConfigPath(true))
//
// When defaults is non-nil it is merged under the persisted top-level keys and
// written back immediately (or overlaid in memory in read-only mode).
func New(id string, defaults core.Document, opts ...Option) (*core.Store, error) {
	if id == "" {
		return nil, core.ErrEmptyID
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	repo, err := initRepository(id, o, logger)
	if err != nil {
		return nil, err
	}

	if defaults != nil && o.readOnly {
		repo = &defaultsRepository{Repository: repo, defaults: defaults.Clone()}
	}

	store, err := core.NewStore(id, repo)
	if err != nil {
		return nil, err
	}

	if defaults != nil && !o.readOnly {
		if err := store.ApplyDefaults(context.Background(), defaults); err != nil {
			return nil, fmt.Errorf("failed to apply defaults: %w", err)
		}
	}

	logger.Debug("store opened", "id", id, "path", store.Path(), "read_only", o.readOnly)
	return store, nil
}

// initRepository builds the filesystem repository unless one was injected.
func initRepository(id string, o *options, logger *slog.Logger) (core.Repository, error) {
	if o.repository != nil {
		return o.repository, nil
	}

	serializer := o.serializer
	if serializer == nil {
		var ok bool
		serializer, ok = fs.DefaultSerializers(o.strict, o.lenient)[o.format]
		if !ok {
			return nil, fmt.Errorf("unknown format: %s", o.format)
		}
	}

	path, err := resolve(id, o, serializer.Extension())
	if err != nil {
		return nil, err
	}

	return fs.NewRepository(fs.Config{
		Path:            path,
		Serializer:      serializer,
		ReadOnly:        o.readOnly,
		TruncateCorrupt: o.truncateCorrupt,
		Logger:          logger,
		ErrorHandler:    o.errorHandler,
	}), nil
}

func resolve(id string, o *options, ext string) (string, error) {
	if o.configPath != "" {
		return o.configPath, nil
	}

	base := o.baseDir
	if base == "" {
		var err error
		if base, err = BaseDir(o.getenv); err != nil {
			return "", err
		}
	}
	return ResolvePath(base, id, ext, o.globalConfigPath), nil
}
