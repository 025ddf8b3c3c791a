package core

import "errors"

// PermissionHint is appended to the message of permission failures.
const PermissionHint = "You don't have access to this file."

// Common errors.
var (
	ErrEmptyID        = errors.New("store id cannot be empty")
	ErrReadOnly       = errors.New("store is in read-only mode")
	ErrPermission     = errors.New("insufficient access to store file")
	ErrCorrupt        = errors.New("store file content is corrupt")
	ErrUnserializable = errors.New("value cannot be serialized")
	ErrNotWatchable   = errors.New("repository does not support watching")
)

// PermissionError decorates a permission failure with an actionable hint.
// It unwraps to both ErrPermission and the underlying OS error, so
// errors.Is(err, fs.ErrPermission) keeps working.
type PermissionError struct {
	Path string
	Err  error
}

func (e *PermissionError) Error() string {
	return e.Err.Error() + "\n" + PermissionHint + "\n"
}

func (e *PermissionError) Unwrap() []error {
	return []error{ErrPermission, e.Err}
}
