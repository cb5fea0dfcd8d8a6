package finn

import (
	"strconv"
	"strings"

	"github.com/fwojciec/tomtejakt"
)

// maxRefDepth bounds reference resolution. The arena-style resolver follows
// indices rather than pointers, so a malformed or cyclic payload would
// otherwise recurse forever.
const maxRefDepth = 15

// resolveGraph deserializes the flat indexed-reference array into a plain
// nested tree. Objects arrive as {"_<keyIndex>": <valueRef>} maps where
// keyIndex addresses the array slot holding the property name; arrays are
// plain ref arrays; a negative ref denotes an absent value and resolves to
// nil. The tree root is the value at index 0.
func resolveGraph(refs []any) (any, error) {
	return resolveIndex(refs, 0, 0)
}

func resolveIndex(refs []any, idx, depth int) (any, error) {
	if idx < 0 {
		return nil, nil
	}
	if depth > maxRefDepth {
		return nil, tomtejakt.Errorf(tomtejakt.EDECODE, "reference graph exceeds depth %d", maxRefDepth)
	}
	if idx >= len(refs) {
		return nil, tomtejakt.Errorf(tomtejakt.EDECODE, "reference index %d out of range", idx)
	}
	return resolveValue(refs, refs[idx], depth)
}

func resolveValue(refs []any, v any, depth int) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, ref := range t {
			name, err := keyName(refs, k)
			if err != nil {
				return nil, err
			}
			val, err := deref(refs, ref, depth+1)
			if err != nil {
				return nil, err
			}
			out[name] = val
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, ref := range t {
			val, err := deref(refs, ref, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = val
		}
		return out, nil
	default:
		return v, nil
	}
}

// deref resolves a single value ref: numbers are array indices (negative
// meaning absent), anything else is an inline literal.
func deref(refs []any, ref any, depth int) (any, error) {
	n, ok := ref.(float64)
	if !ok {
		return resolveValue(refs, ref, depth)
	}
	if n < 0 {
		return nil, nil
	}
	return resolveIndex(refs, int(n), depth)
}

// keyName resolves an "_<keyIndex>" object key to the property name stored
// at that index.
func keyName(refs []any, k string) (string, error) {
	idx, err := strconv.Atoi(strings.TrimPrefix(k, "_"))
	if !strings.HasPrefix(k, "_") || err != nil {
		return "", tomtejakt.Errorf(tomtejakt.EDECODE, "malformed object key %q in reference graph", k)
	}
	if idx < 0 || idx >= len(refs) {
		return "", tomtejakt.Errorf(tomtejakt.EDECODE, "object key index %d out of range", idx)
	}
	name, ok := refs[idx].(string)
	if !ok {
		return "", tomtejakt.Errorf(tomtejakt.EDECODE, "object key index %d does not hold a string", idx)
	}
	return name, nil
}
