// Package dotpath addresses nested values of a map[string]any tree with
// delimiter-separated paths such as "foo.bar.baz".
//
// A literal key containing the delimiter cannot be addressed: "a.b" always
// means key "b" inside key "a".
package dotpath

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Delimiter separates path segments.
const Delimiter = "."

// Segments splits a path into its keys.
func Segments(path string) []string {
	return strings.Split(path, Delimiter)
}

// Get descends into doc segment by segment. It reports false when any
// intermediate segment is missing or not a mapping, or the terminal key is absent.
func Get(doc map[string]any, path string) (any, bool) {
	parent, key, ok := lookupParent(doc, path)
	if !ok {
		return nil, false
	}
	v, ok := parent[key]
	return v, ok
}

// Has reports whether the terminal key of path exists, even if it holds nil.
func Has(doc map[string]any, path string) bool {
	_, ok := Get(doc, path)
	return ok
}

// Set assigns value at path, creating intermediate mappings as needed.
// An intermediate value that is not a mapping is replaced by one.
func Set(doc map[string]any, path string, value any) {
	segments := Segments(path)
	current := doc
	for _, seg := range segments[:len(segments)-1] {
		next, ok := AsMap(current[seg])
		if !ok {
			next = make(map[string]any)
			current[seg] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = value
}

// Delete removes the terminal key of path. It reports whether anything was removed;
// a missing segment anywhere along the path is not an error.
func Delete(doc map[string]any, path string) bool {
	parent, key, ok := lookupParent(doc, path)
	if !ok {
		return false
	}
	if _, exists := parent[key]; !exists {
		return false
	}
	delete(parent, key)
	return true
}

func lookupParent(doc map[string]any, path string) (map[string]any, string, bool) {
	if doc == nil {
		return nil, "", false
	}
	segments := Segments(path)
	current := doc
	for _, seg := range segments[:len(segments)-1] {
		next, ok := AsMap(current[seg])
		if !ok {
			return nil, "", false
		}
		current = next
	}
	return current, segments[len(segments)-1], true
}

var mapType = reflect.TypeOf(map[string]any(nil))

// AsMap reports whether v is a mapping node. Named types whose underlying
// type is map[string]any (such as a document type) count as well; the
// returned map shares storage with v.
func AsMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.IsNil() || !rv.Type().ConvertibleTo(mapType) {
		return nil, false
	}
	return rv.Convert(mapType).Interface().(map[string]any), true
}

// Flatten returns every leaf of doc keyed by its dotted path.
// Empty mappings are kept as leaves so they stay visible.
func Flatten(doc map[string]any) map[string]any {
	out := make(map[string]any)
	flatten("", doc, out)
	return out
}

func flatten(prefix string, m map[string]any, out map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + Delimiter + k
		}
		if nested, ok := AsMap(v); ok && len(nested) > 0 {
			flatten(key, nested, out)
			continue
		}
		out[key] = v
	}
}

// Keys returns the sorted dotted paths of every leaf of doc.
func Keys(doc map[string]any) []string {
	flat := Flatten(doc)
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Match returns the sorted leaf paths of doc matching a glob pattern.
// Segments are matched like path components: "*" matches one segment and
// "**" matches any number of them (e.g. "ui.*", "**.enabled").
// An empty pattern matches everything.
func Match(doc map[string]any, pattern string) ([]string, error) {
	keys := Keys(doc)
	if pattern == "" {
		return keys, nil
	}

	glob := toSlashes(pattern)
	if !doublestar.ValidatePattern(glob) {
		return nil, fmt.Errorf("invalid key pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	matched := make([]string, 0, len(keys))
	for _, k := range keys {
		ok, err := doublestar.Match(glob, toSlashes(k))
		if err != nil {
			return nil, fmt.Errorf("invalid key pattern %q: %w", pattern, err)
		}
		if ok {
			matched = append(matched, k)
		}
	}
	return matched, nil
}

func toSlashes(path string) string {
	return strings.ReplaceAll(path, Delimiter, "/")
}
