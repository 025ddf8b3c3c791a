package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/configstore/pkg/core"
)

const (
	// DirMode is used when creating the ancestors of a store file.
	DirMode os.FileMode = 0o700
	// FileMode is used for the store file itself.
	FileMode os.FileMode = 0o600
)

// Repository implements core.Repository on top of a single file.
type Repository struct {
	config     Config
	serializer Serializer
	logger     *slog.Logger

	mu            sync.RWMutex
	watcherActive bool
	lastLoad      *time.Time
	lastSave      *time.Time
	recoveries    int
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path       string
	Serializer Serializer // defaults to JSON
	ReadOnly   bool
	// TruncateCorrupt empties a file that fails to parse as soon as it is read,
	// so later reads are consistent instead of failing on the same garbage.
	TruncateCorrupt bool
	Logger          *slog.Logger
	ErrorHandler    func(error) // receives asynchronous watcher failures
}

// NewRepository creates a new file-backed repository.
func NewRepository(config Config) *Repository {
	if config.Serializer == nil {
		config.Serializer = NewJSONSerializer(false, false)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Repository{
		config:     config,
		serializer: config.Serializer,
		logger:     logger,
	}
}

// Path returns the location of the store file.
func (r *Repository) Path() string {
	return r.config.Path
}

// Load reads and parses the store file.
//
// Recovery policy:
//   - missing file: empty document, nothing is created.
//   - permission denied: *core.PermissionError.
//   - unparseable content: empty document (file truncated if TruncateCorrupt).
//   - anything else: returned as is.
func (r *Repository) Load(ctx context.Context) (core.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.config.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Debug("store file missing, using empty document", "path", r.config.Path)
			r.recordLoad()
			return core.Document{}, nil
		}
		return nil, r.wrapErr(err)
	}

	// Parsing an in-memory buffer cannot fail on I/O, so every error here
	// is about the content, whatever serializer is configured.
	doc, err := r.serializer.Parse(bytes.NewReader(data))
	if err != nil {
		if !errors.Is(err, core.ErrCorrupt) {
			err = fmt.Errorf("%w: %v", core.ErrCorrupt, err)
		}
		r.recoverCorrupt(err)
		return core.Document{}, nil
	}
	if doc == nil {
		doc = core.Document{}
	}

	r.recordLoad()
	return doc, nil
}

func (r *Repository) recoverCorrupt(cause error) {
	r.mu.Lock()
	r.recoveries++
	r.mu.Unlock()

	if !r.config.TruncateCorrupt || r.config.ReadOnly {
		r.logger.Warn("store file is corrupt, using empty document", "path", r.config.Path, "error", cause)
		return
	}

	r.logger.Warn("store file is corrupt, truncating", "path", r.config.Path, "error", cause)
	if err := writeFileAtomic(r.config.Path, nil, FileMode); err != nil {
		r.logger.Warn("failed to truncate corrupt store file", "path", r.config.Path, "error", err)
	}
}

// Save serializes doc and atomically replaces the store file with it,
// creating missing parent directories first.
func (r *Repository) Save(ctx context.Context, doc core.Document) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := r.serializer.Serialize(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.config.Path), DirMode); err != nil {
		return r.wrapErr(fmt.Errorf("failed to create directories: %w", err))
	}

	if err := writeFileAtomic(r.config.Path, data, FileMode); err != nil {
		return r.wrapErr(fmt.Errorf("failed to write file: %w", err))
	}

	r.logger.Debug("store file saved", "path", r.config.Path, "keys", len(doc))
	r.recordSave()
	return nil
}

// wrapErr adds the access hint to permission failures and leaves the rest untouched.
func (r *Repository) wrapErr(err error) error {
	if errors.Is(err, os.ErrPermission) {
		return &core.PermissionError{Path: r.config.Path, Err: err}
	}
	return err
}

var _ core.Repository = (*Repository)(nil)
var _ core.Watchable = (*Repository)(nil)
