package encoder

import (
	"fmt"
	"reflect"
	"sort"
)

// MapEntry is the per-iteration value produced when a for-loop ranges over
// a map: it lets a two-name pattern (`for k, v in opts`) bind both the key
// and the value, the way Go's own range statement does, while a one-name
// pattern still receives something sensible if it type-switches on it.
type MapEntry struct {
	Key   reflect.Value
	Value reflect.Value
}

// iterate expands v (the evaluated EvalFor iterable expression) into the
// sequence of values a for-loop body will bind one at a time. Binding data
// in this system originates from YAML-decoded template arguments (see
// cmd/gencode), so the supported shapes are the ones yaml.v3 actually
// produces: slices, arrays, maps, and strings (iterated rune by rune).
func iterate(v reflect.Value) ([]reflect.Value, error) {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]reflect.Value, v.Len())
		for i := range out {
			out[i] = v.Index(i)
		}
		return out, nil
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		out := make([]reflect.Value, len(keys))
		for i, k := range keys {
			out[i] = reflect.ValueOf(MapEntry{Key: k, Value: v.MapIndex(k)})
		}
		return out, nil
	case reflect.String:
		runes := []rune(v.String())
		out := make([]reflect.Value, len(runes))
		for i, r := range runes {
			out[i] = reflect.ValueOf(r)
		}
		return out, nil
	case reflect.Invalid:
		return nil, nil
	default:
		return nil, fmt.Errorf("encoder: cannot iterate over value of kind %s", v.Kind())
	}
}
