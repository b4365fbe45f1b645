package matching

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/getmockd/mockhttp/pkg/mock"
)

// Normalize converts a JSON-like Go value into canonical form: nil, bool,
// float64, string, []any or map[string]any. Every numeric kind becomes
// float64 so that 1, int64(1) and 1.0 compare equal. Structs and other
// marshalable types go through encoding/json. A value that contains itself
// yields mock.ErrCyclicBody.
func Normalize(v any) (any, error) {
	return normalize(reflect.ValueOf(v), make(map[uintptr]bool))
}

func normalize(rv reflect.Value, visiting map[uintptr]bool) (any, error) {
	if !rv.IsValid() {
		return nil, nil
	}

	// Handled before the kind switch because json.Number is a string kind.
	if n, ok := rv.Interface().(json.Number); ok {
		f, err := n.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %q: %v", mock.ErrUnsupportedBody, n, err)
		}
		return f, nil
	}

	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return normalize(rv.Elem(), visiting)

	case reflect.Pointer:
		if rv.IsNil() {
			return nil, nil
		}
		ptr := rv.Pointer()
		if visiting[ptr] {
			return nil, mock.ErrCyclicBody
		}
		visiting[ptr] = true
		defer delete(visiting, ptr)
		return normalize(rv.Elem(), visiting)

	case reflect.Bool:
		return rv.Bool(), nil

	case reflect.String:
		return rv.String(), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), nil

	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil

	case reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
		if rv.Type().Key().Kind() != reflect.String {
			return marshalRoundTrip(rv, visiting)
		}
		ptr := rv.Pointer()
		if visiting[ptr] {
			return nil, mock.ErrCyclicBody
		}
		visiting[ptr] = true
		defer delete(visiting, ptr)

		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			val, err := normalize(iter.Value(), visiting)
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = val
		}
		return out, nil

	case reflect.Slice:
		if rv.IsNil() {
			return nil, nil
		}
		// []byte marshals as base64 in encoding/json; keep that behavior.
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return marshalRoundTrip(rv, visiting)
		}
		if rv.Len() > 0 {
			ptr := rv.Pointer()
			if visiting[ptr] {
				return nil, mock.ErrCyclicBody
			}
			visiting[ptr] = true
			defer delete(visiting, ptr)
		}
		return normalizeList(rv, visiting)

	case reflect.Array:
		return normalizeList(rv, visiting)

	default:
		return marshalRoundTrip(rv, visiting)
	}
}

func normalizeList(rv reflect.Value, visiting map[uintptr]bool) (any, error) {
	out := make([]any, rv.Len())
	for i := range rv.Len() {
		val, err := normalize(rv.Index(i), visiting)
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}

// marshalRoundTrip normalizes values without a direct JSON shape (structs,
// maps with non-string keys, byte slices) by encoding and decoding them.
func marshalRoundTrip(rv reflect.Value, visiting map[uintptr]bool) (any, error) {
	data, err := json.Marshal(rv.Interface())
	if err != nil {
		var unsupported *json.UnsupportedValueError
		if errors.As(err, &unsupported) && strings.Contains(unsupported.Str, "cycle") {
			return nil, fmt.Errorf("%w: %v", mock.ErrCyclicBody, err)
		}
		return nil, fmt.Errorf("%w: %v", mock.ErrUnsupportedBody, err)
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", mock.ErrUnsupportedBody, err)
	}
	return normalize(reflect.ValueOf(decoded), visiting)
}

// Equal reports whether two values are JSON-deep-equal. Objects compare by
// key and value regardless of order, arrays by position, numbers by value,
// and nil equals only nil. Values that cannot be normalized are never equal.
func Equal(a, b any) bool {
	na, err := Normalize(a)
	if err != nil {
		return false
	}
	nb, err := Normalize(b)
	if err != nil {
		return false
	}
	return equalNormalized(na, nb)
}

func equalNormalized(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !equalNormalized(x[i], y[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !equalNormalized(xv, yv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
