package platform

import (
	"log/slog"

	"github.com/aretw0/configstore/pkg/adapters/fs"
	"github.com/aretw0/configstore/pkg/core"
)

// options holds the internal configuration of a store.
type options struct {
	configPath       string
	globalConfigPath bool
	baseDir          string
	getenv           func(string) string
	format           string
	serializer       fs.Serializer
	strict           bool
	lenient          bool
	readOnly         bool
	truncateCorrupt  bool
	errorHandler     func(error)
	repository       core.Repository
	logger           *slog.Logger
}

// Option defines a functional option for configuring a store.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		format:          fs.FormatJSON,
		truncateCorrupt: true,
	}
}

// WithConfigPath uses path verbatim as the store file, bypassing id based resolution.
func WithConfigPath(path string) Option {
	return func(o *options) {
		o.configPath = path
	}
}

// WithGlobalConfigPath stores the file at <base>/<id>/config.<ext>
// instead of <base>/configstore/<id>.<ext>.
func WithGlobalConfigPath(global bool) Option {
	return func(o *options) {
		o.globalConfigPath = global
	}
}

// WithBaseDir sets the configuration base directory, skipping the environment lookup.
func WithBaseDir(dir string) Option {
	return func(o *options) {
		o.baseDir = dir
	}
}

// WithEnv replaces os.Getenv for the base directory lookup (useful for testing).
func WithEnv(getenv func(string) string) Option {
	return func(o *options) {
		o.getenv = getenv
	}
}

// WithFormat selects a built-in serializer by name ("json" or "yaml").
// Defaults to "json".
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithSerializer registers a custom serializer. Its Extension() decides the file extension.
// It takes precedence over WithFormat.
func WithSerializer(s fs.Serializer) Option {
	return func(o *options) {
		o.serializer = s
	}
}

// WithStrict enables strict mode for the built-in serializers.
// When enabled, numbers are parsed as json.Number to preserve the precision of large integers.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithLenient makes the built-in serializers skip values the format cannot
// represent instead of failing the write.
func WithLenient(lenient bool) Option {
	return func(o *options) {
		o.lenient = lenient
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Write operations (Set, Delete, Clear, SaveAll) return core.ErrReadOnly.
// 2. Defaults are overlaid in memory instead of persisted.
// 3. Corrupt files are never truncated.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.readOnly = enabled
	}
}

// WithTruncateCorrupt controls whether an unparseable file is emptied on read.
// Enabled by default; when disabled it is only replaced by the next write.
func WithTruncateCorrupt(enabled bool) Option {
	return func(o *options) {
		o.truncateCorrupt = enabled
	}
}

// WithWatcherErrorHandler registers a callback for errors occurring inside the Watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.errorHandler = fn
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. mock, remote).
// If provided, path resolution and the filesystem adapter are skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
