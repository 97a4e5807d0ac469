package schema

import (
	"encoding/json"
	"reflect"
)

// JSONValuer lets domain values describe their own JSON projection. Upload
// descriptors implement it so file-typed widget values can flow through
// Validate and guide output unchanged.
type JSONValuer interface {
	JSONValue() any
}

// Normalize projects a Go value onto the JSON shapes schema validation
// understands: nil, bool, string, float64, []any and map[string]any. Typed
// slices and string-keyed maps are converted element by element; values
// implementing JSONValuer are asked for their projection first. Values with
// no JSON shape are returned unchanged.
func Normalize(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case JSONValuer:
		return Normalize(v.JSONValue())
	case bool, string, float64:
		return v
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = Normalize(item)
		}
		return out
	case []string:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = item
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = Normalize(item)
		}
		return out
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return Normalize(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return value
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = Normalize(iter.Value().Interface())
		}
		return out
	}
	return value
}
