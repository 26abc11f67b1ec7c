package changelog

import (
	"encoding/json"
	"reflect"
)

// Equal reports whether two snapshot values are structurally equal.
//
// Unlike comparing serialized JSON, this is insensitive to key order in
// nested objects: objects compare per key, arrays elementwise, and
// numbers by numeric value across Go numeric kinds and json.Number, so a
// re-marshalled row never shows as a false change.
func Equal(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case string:
		bv, ok := b.(string)

		return ok && av == bv
	case bool:
		bv, ok := b.(bool)

		return ok && av == bv
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}

		for k, v := range av {
			bvv, present := bv[k]
			if !present || !Equal(v, bvv) {
				return false
			}
		}

		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}

		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}

		return true
	}

	if af, ok := toFloat(a); ok {
		bf, bok := toFloat(b)

		return bok && af == bf
	}

	// Values that did not come from JSON decoding (time.Time in tests,
	// custom types from callers) fall back to reflection.
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()

		return f, err == nil
	}

	return 0, false
}
