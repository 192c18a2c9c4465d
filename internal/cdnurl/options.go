package cdnurl

import (
	"encoding/json"
	"reflect"

	"github.com/spf13/cast"
)

// Options is an unordered map from option name to value.
//
// Values may be strings, any integer or floating point type, json.Number,
// bools, slices (for "effect" and "transformation" only), nested maps (for
// "transformation" only), or a Transformation. A nil value is treated as if
// the key were absent.
//
// Functions in this package never modify an Options value they receive.
type Options map[string]any

// has reports whether key is set to a non-nil value.
func (o Options) has(key string) bool {
	v, ok := o[key]
	return ok && v != nil
}

// lookup returns the scalar value of key rendered as a string.
func (o Options) lookup(key string) (string, bool, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return "", false, nil
	}
	s, err := formatScalar(key, v)
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

// clone returns a shallow copy.
func (o Options) clone() Options {
	c := make(Options, len(o))
	for k, v := range o {
		c[k] = v
	}
	return c
}

// formatScalar renders a scalar option value. Floats use the shortest
// decimal representation, so 0.4 stays "0.4" and 100.0 becomes "100".
func formatScalar(key string, v any) (string, error) {
	if _, ok := asList(v); ok {
		return "", invalidOption(key, v, "a list is not accepted here")
	}
	if isMap(v) {
		return "", invalidOption(key, v, "a map is not accepted here")
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", invalidOption(key, v, "unsupported value type %T", v)
	}
	return s, nil
}

// asList returns the elements of a slice or array value. Strings and byte
// slices are not lists.
func asList(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	case []byte, string, nil:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func isMap(v any) bool {
	switch v.(type) {
	case Options, map[string]any:
		return true
	}
	return v != nil && reflect.ValueOf(v).Kind() == reflect.Map
}

// truthy follows the loose rules callers expect from flags such as
// "secure": false, zero, "", "0" and "false" are false, anything else set
// is true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != "" && t != "0" && t != "false"
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Slice, reflect.Map:
		return rv.Len() > 0
	}
	return true
}
