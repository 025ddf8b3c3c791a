package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"

	"github.com/aretw0/configstore/pkg/core"
	"gopkg.in/yaml.v3"
)

// Serializer defines how a store document is encoded on disk.
type Serializer interface {
	// Parse reads from r and returns a Document.
	// Empty input yields an empty document. Content that is not a valid
	// document should be reported with an error wrapping core.ErrCorrupt.
	// The repository hands Parse an in-memory reader, so it treats any
	// Parse error as corrupt content.
	Parse(r io.Reader) (core.Document, error)
	// Serialize converts the Document to bytes.
	Serialize(doc core.Document) ([]byte, error)
	// Extension is the file extension (without dot) used for this format.
	Extension() string
}

// Format names of the built-in serializers.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultSerializers returns the built-in serializers keyed by format name.
func DefaultSerializers(strict, lenient bool) map[string]Serializer {
	return map[string]Serializer{
		FormatJSON: NewJSONSerializer(strict, lenient),
		FormatYAML: NewYAMLSerializer(strict, lenient),
	}
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing JSON files.
type JSONSerializer struct {
	// Strict enables strict number parsing (as json.Number) to avoid precision loss.
	Strict bool
	// Lenient drops values JSON cannot represent instead of failing.
	Lenient bool
}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer(strict, lenient bool) *JSONSerializer {
	return &JSONSerializer{Strict: strict, Lenient: lenient}
}

func (s *JSONSerializer) Extension() string { return "json" }

func (s *JSONSerializer) Parse(r io.Reader) (core.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return core.Document{}, nil
	}

	var payload map[string]any
	decoder := json.NewDecoder(bytes.NewReader(data))
	if s.Strict {
		decoder.UseNumber()
	}
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", core.ErrCorrupt, err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: invalid json: trailing data after document", core.ErrCorrupt)
	}
	if payload == nil {
		// top-level "null"
		return nil, fmt.Errorf("%w: json document is not an object", core.ErrCorrupt)
	}

	return core.Document(payload), nil
}

func (s *JSONSerializer) Serialize(doc core.Document) ([]byte, error) {
	var payload any = map[string]any(doc)
	if s.Lenient {
		payload, _ = dropInvalid(payload, true)
	}
	if payload == nil || doc == nil {
		payload = map[string]any{}
	}

	data, err := json.MarshalIndent(payload, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnserializable, err)
	}
	return data, nil
}

// --- YAML Serializer ---

// YAMLSerializer handles reading and writing YAML files.
type YAMLSerializer struct {
	// Strict enables strict number parsing (as json.Number) to avoid precision loss.
	Strict bool
	// Lenient drops values YAML cannot represent instead of failing.
	Lenient bool
}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer(strict, lenient bool) *YAMLSerializer {
	return &YAMLSerializer{Strict: strict, Lenient: lenient}
}

func (s *YAMLSerializer) Extension() string { return "yml" }

func (s *YAMLSerializer) Parse(r io.Reader) (core.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: invalid yaml: %v", core.ErrCorrupt, err)
	}
	var extra any
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: invalid yaml: more than one document", core.ErrCorrupt)
	}
	if payload == nil {
		return core.Document{}, nil
	}

	doc := normalizeYAML(payload).(map[string]any)
	if s.Strict {
		doc = recursiveNormalize(doc).(map[string]any)
	}
	return core.Document(doc), nil
}

func (s *YAMLSerializer) Serialize(doc core.Document) (data []byte, err error) {
	var payload any = map[string]any(doc)
	if s.Lenient {
		payload, _ = dropInvalid(payload, false)
	}
	if payload == nil || doc == nil {
		payload = map[string]any{}
	}

	// yaml.v3 panics on some unsupported kinds instead of returning an error.
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("%w: %v", core.ErrUnserializable, r)
		}
	}()

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(payload); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnserializable, err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrUnserializable, err)
	}
	return buf.Bytes(), nil
}

// --- Helpers ---

// normalizeYAML converts nested map[any]any (non-string keys) into map[string]any
// so the dotted path accessor sees a uniform tree.
func normalizeYAML(val any) any {
	switch v := val.(type) {
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, item := range v {
			m[k] = normalizeYAML(item)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, item := range v {
			m[fmt.Sprint(k)] = normalizeYAML(item)
		}
		return m
	case []any:
		l := make([]any, len(v))
		for i, item := range v {
			l[i] = normalizeYAML(item)
		}
		return l
	default:
		return v
	}
}

// recursiveNormalize traverses the map/slice and converts numeric types to json.Number.
// This ensures consistency with JSON Strict mode.
func recursiveNormalize(val any) any {
	switch v := val.(type) {
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, item := range v {
			m[k] = recursiveNormalize(item)
		}
		return m
	case []any:
		l := make([]any, len(v))
		for i, item := range v {
			l[i] = recursiveNormalize(item)
		}
		return l
	case int:
		return json.Number(fmt.Sprintf("%d", v))
	case int64:
		return json.Number(fmt.Sprintf("%d", v))
	case uint64:
		return json.Number(fmt.Sprintf("%d", v))
	case float64:
		return json.Number(fmt.Sprintf("%v", v))
	default:
		return v
	}
}

// dropInvalid removes values the encoders cannot represent (functions,
// channels, complex numbers, unsafe pointers) and reports whether val is kept.
// Typed maps with string keys and slices are rebuilt as map[string]any and
// []any so their elements are checked too. With jsonNulls, NaN and ±Inf
// become nil, which JSON writes as null.
func dropInvalid(val any, jsonNulls bool) (any, bool) {
	if val == nil {
		return nil, true
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Func, reflect.Chan, reflect.Complex64, reflect.Complex128, reflect.UnsafePointer:
		return nil, false
	case reflect.Float32, reflect.Float64:
		if f := rv.Float(); jsonNulls && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return nil, true
		}
	case reflect.Interface, reflect.Pointer:
		if rv.IsNil() {
			return nil, true
		}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return val, true
		}
		if rv.IsNil() {
			return nil, true
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			if clean, ok := dropInvalid(iter.Value().Interface(), jsonNulls); ok {
				m[iter.Key().String()] = clean
			}
		}
		return m, true
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			// []byte is encoded as a string/binary scalar.
			return val, true
		}
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, true
		}
		l := make([]any, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if clean, ok := dropInvalid(rv.Index(i).Interface(), jsonNulls); ok {
				l = append(l, clean)
			}
		}
		return l, true
	}
	return val, true
}
