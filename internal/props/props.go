// Package props normalizes caller-supplied component configuration.
//
// Components are configured with a partial key/value object. Normalization
// merges it over the component's documented defaults: top-level keys replace,
// nested objects merge one level deep, lists replace.
package props

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/ericfisherdev/happyplace/internal/domain"
)

// TagName is the struct tag read when decoding props into typed structs.
const TagName = "prop"

// Map is a component configuration object as received from callers.
type Map map[string]any

// Merge returns defaults overlaid with args. When both sides hold a nested
// object for the same key, the nested objects are merged key by key.
// Neither input is modified.
func Merge(defaults, args Map) Map {
	out := make(Map, len(defaults)+len(args))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range args {
		base, baseIsMap := asMap(out[k])
		over, overIsMap := asMap(v)
		if baseIsMap && overIsMap {
			nested := make(Map, len(base)+len(over))
			for nk, nv := range base {
				nested[nk] = nv
			}
			for nk, nv := range over {
				nested[nk] = nv
			}
			out[k] = nested
			continue
		}
		out[k] = v
	}
	return out
}

// Result reports how args were applied by Normalize.
type Result struct {
	// Unused lists arg keys that matched no prop, sorted.
	Unused []string
}

// Normalize decodes args over a copy of defaults into out. Values are weakly
// typed ("1", "true" and 1 all decode into a true bool). Nested structs merge
// field by field; slices and maps are replaced.
func Normalize[T any](defaults T, args Map, out *T) (Result, error) {
	*out = defaults
	if len(args) == 0 {
		return Result{}, nil
	}

	var meta mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          TagName,
		WeaklyTypedInput: true,
		ZeroFields:       true,
		Metadata:         &meta,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToSliceHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return Result{}, domain.NewInternalError("PROPS_DECODER", "Failed to build props decoder", err)
	}

	if err := decoder.Decode(map[string]any(args)); err != nil {
		*out = defaults
		return Result{}, domain.NewValidationError("INVALID_PROPS", "Props could not be applied", map[string]interface{}{
			"error": err.Error(),
		})
	}

	unused := append([]string(nil), meta.Unused...)
	sort.Strings(unused)
	return Result{Unused: unused}, nil
}

// stringToSliceHook lets a comma separated string fill a []string prop,
// which is how list props arrive from query strings and the CLI.
func stringToSliceHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice || to.Elem().Kind() != reflect.String {
		return data, nil
	}
	raw, _ := data.(string)
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

// Enum returns value when it is one of allowed, otherwise fallback.
func Enum[T ~string](value T, fallback T, allowed ...T) T {
	for _, a := range allowed {
		if value == a {
			return value
		}
	}
	return fallback
}

// String returns the string at key, formatting scalars, or "".
func (m Map) String(key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case bool, int, int64, float64, float32, int32, uint, uint64:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

// Bool returns the boolean at key using loose truthiness.
func (m Map) Bool(key string) bool {
	switch v := m[key].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			return true
		}
		return false
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}

// Int returns the integer at key, or fallback when missing or not numeric.
func (m Map) Int(key string, fallback int) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

// Float returns the number at key, or fallback.
func (m Map) Float(key string, fallback float64) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return fallback
}

// Strings returns the list of strings at key. A single string is split on commas.
func (m Map) Strings(key string) []string {
	switch v := m[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	default:
		return nil
	}
}

// Maps returns the list of objects at key, skipping non-object entries.
func (m Map) Maps(key string) []Map {
	items, ok := m[key].([]any)
	if !ok {
		if typed, ok := m[key].([]Map); ok {
			return typed
		}
		return nil
	}
	out := make([]Map, 0, len(items))
	for _, item := range items {
		if nested, ok := asMap(item); ok {
			out = append(out, nested)
		}
	}
	return out
}

// Has reports whether key was supplied.
func (m Map) Has(key string) bool {
	_, ok := m[key]
	return ok
}

func asMap(v any) (Map, bool) {
	switch t := v.(type) {
	case Map:
		return t, true
	case map[string]any:
		return Map(t), true
	case map[any]any:
		out := make(Map, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}
