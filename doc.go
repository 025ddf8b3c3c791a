// Package configstore is a small persistent settings store.
//
// A store maps an application id to a single file, by default
// $XDG_CONFIG_HOME/configstore/<id>.json, and exposes dictionary-like access
// with dotted paths into nested values.
//
// The store is stateless: every read loads the whole file and every write
// replaces it atomically (temp file + rename). A missing file reads as an
// empty document and is only created by the first write. Unparseable content
// is discarded and read as empty. Permission failures surface with a hint.
//
// There is no locking: when two handles write the same file, the last write wins.
//
// Usage:
//
//	store, err := configstore.New("my-app", configstore.Document{"theme": "dark"})
//
//	// Nested values
//	err = store.Set(ctx, "window.width", 800)
//	width, err := store.Get(ctx, "window.width")
package configstore
