// Package canonical provides deterministic JSON canonicalization for
// signature payloads. Two structurally equal values always produce the same
// canonical string, regardless of object key order in the input.
package canonical

import (
	"encoding/json"
)

// Canonicalize normalizes an arbitrary JSON-compatible value into the plain
// map/slice/scalar form produced by encoding/json. Arrays keep their order,
// object values are canonicalized recursively, and scalars pass through
// unchanged. Struct inputs are flattened through their JSON encoding so that
// json tags are respected.
func Canonicalize(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case bool, string, float64, json.Number:
		return val, nil
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			c, err := Canonicalize(elem)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			c, err := Canonicalize(elem)
			if err != nil {
				return nil, err
			}
			out[k] = c
		}
		return out, nil
	default:
		// Anything else (structs, ints, typed slices) is round-tripped
		// through its JSON encoding into the canonical shape.
		data, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		var decoded any
		if err := json.Unmarshal(data, &decoded); err != nil {
			return nil, err
		}
		if decoded == nil {
			return nil, nil
		}
		return Canonicalize(decoded)
	}
}

// Stringify returns the canonical string form of a value. A nil value
// stringifies to the empty string; everything else is canonicalized and
// JSON-encoded. encoding/json emits map keys in ascending code-point order,
// which gives the deterministic key ordering the signature scheme relies on.
func Stringify(v any) (string, error) {
	c, err := Canonicalize(v)
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", nil
	}
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
