package configstore

import (
	"context"
	"log/slog"

	"github.com/aretw0/configstore/internal/platform"
	"github.com/aretw0/configstore/pkg/adapters/fs"
	"github.com/aretw0/configstore/pkg/core"
	"github.com/aretw0/configstore/pkg/typed"
)

// --- Types ---

// Store is the handle returned by New.
type Store = core.Store

// Document is the full value tree of a store.
type Document = core.Document

// Event reports a change of the store file.
type Event = core.Event

// Serializer defines how a store document is encoded on disk.
type Serializer = fs.Serializer

// TypedStore is a typed view of a store document or subtree.
type TypedStore[T any] = typed.Store[T]

// Errors surfaced by store operations.
var (
	ErrEmptyID        = core.ErrEmptyID
	ErrReadOnly       = core.ErrReadOnly
	ErrPermission     = core.ErrPermission
	ErrCorrupt        = core.ErrCorrupt
	ErrUnserializable = core.ErrUnserializable
	ErrNotWatchable   = core.ErrNotWatchable
)

// --- Configuration ---

// Option defines a functional option for configuring a store.
type Option = platform.Option

// WithConfigPath uses path verbatim as the store file.
func WithConfigPath(path string) Option {
	return platform.WithConfigPath(path)
}

// WithGlobalConfigPath stores the file at <base>/<id>/config.<ext>.
func WithGlobalConfigPath(global bool) Option {
	return platform.WithGlobalConfigPath(global)
}

// WithBaseDir sets the configuration base directory, skipping the environment lookup.
func WithBaseDir(dir string) Option {
	return platform.WithBaseDir(dir)
}

// WithFormat selects a built-in serializer ("json" or "yaml").
func WithFormat(format string) Option {
	return platform.WithFormat(format)
}

// WithSerializer registers a custom serializer.
func WithSerializer(s Serializer) Option {
	return platform.WithSerializer(s)
}

// WithStrict parses numbers as json.Number.
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithLenient skips values the format cannot represent instead of failing.
func WithLenient(lenient bool) Option {
	return platform.WithLenient(lenient)
}

// WithReadOnly rejects every write with ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithTruncateCorrupt controls whether an unparseable file is emptied on read.
func WithTruncateCorrupt(enabled bool) Option {
	return platform.WithTruncateCorrupt(enabled)
}

// WithWatcherErrorHandler registers a callback for errors of the Watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// --- Factory ---

// New opens the store identified by id. Non-nil defaults are merged under the
// persisted top-level keys and written back immediately.
func New(id string, defaults Document, opts ...Option) (*Store, error) {
	return platform.New(id, defaults, opts...)
}

// --- Typed Access ---

// GetAs reads the value at path and decodes it into T.
func GetAs[T any](ctx context.Context, s *Store, path string) (T, bool, error) {
	return typed.Get[T](ctx, s, path)
}

// SetAs encodes value and stores it at path.
func SetAs[T any](ctx context.Context, s *Store, path string, value T) error {
	return typed.Set(ctx, s, path, value)
}

// NewTyped returns a typed view of the document (empty path) or of a subtree.
func NewTyped[T any](s *Store, path string) *TypedStore[T] {
	return typed.NewStore[T](s, path)
}
