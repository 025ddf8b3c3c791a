// Package core holds the domain types and the store orchestration for configstore.
package core

// Document is the full value tree persisted in a store file.
// Values are nil, bool, string, float64 (or json.Number in strict mode),
// []any or map[string]any.
type Document map[string]any

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case Document:
		return map[string]any(val.Clone())
	case map[string]any:
		return map[string]any(Document(val).Clone())
	case []any:
		l := make([]any, len(val))
		for i, item := range val {
			l[i] = cloneValue(item)
		}
		return l
	default:
		return v
	}
}

// EventType represents the type of change observed on a store file.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of the store file on disk.
type Event struct {
	Type      EventType
	Path      string
	Timestamp int64 // Unix timestamp
}

// String implements fmt.Stringer.
func (e Event) String() string {
	return string(e.Type) + " " + e.Path
}
