package tree

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

func splitPath(path string) ([]string, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	segs := strings.Split(trimmed, "/")
	for _, seg := range segs {
		if seg == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
	}
	return segs, nil
}

// Join builds a path from segments.
func Join(segs ...string) string {
	return strings.Join(segs, "/")
}

// lookup walks segs from root. Numeric segments index into arrays.
func lookup(root any, segs []string) any {
	cur := root
	for _, seg := range segs {
		switch node := cur.(type) {
		case map[string]any:
			cur = node[seg]
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil
			}
			cur = node[i]
		default:
			return nil
		}
	}
	return cur
}

// assign stores value under segs inside root and returns the new root.
// root may be modified in place; callers pass a private copy.
// Arrays only take numeric segments up to their length, and scalars cannot
// hold children: both report ErrNotObject instead of being overwritten.
func assign(root any, segs []string, value any) (any, error) {
	if len(segs) == 0 {
		return value, nil
	}
	seg, rest := segs[0], segs[1:]

	switch node := root.(type) {
	case nil:
		if value == nil {
			return nil, nil
		}
		child, err := assign(nil, rest, value)
		if err != nil {
			return nil, err
		}
		return map[string]any{seg: child}, nil
	case map[string]any:
		child, err := assign(node[seg], rest, value)
		if err != nil {
			return nil, err
		}
		if child == nil {
			delete(node, seg)
		} else {
			node[seg] = child
		}
		return node, nil
	case []any:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i > len(node) {
			if value == nil {
				return node, nil
			}
			return nil, fmt.Errorf("%w: %q is not an index of a list of %d", ErrNotObject, seg, len(node))
		}
		if i == len(node) {
			child, err := assign(nil, rest, value)
			if err != nil || child == nil {
				return node, err
			}
			return append(node, child), nil
		}
		child, err := assign(node[i], rest, value)
		if err != nil {
			return nil, err
		}
		if child == nil {
			return append(node[:i:i], node[i+1:]...), nil
		}
		node[i] = child
		return node, nil
	default:
		if value == nil {
			return root, nil
		}
		return nil, fmt.Errorf("%w: cannot set %q inside a %T", ErrNotObject, seg, root)
	}
}

// normalize converts any Go value into plain JSON values (maps, slices, float64, string, bool, nil).
func normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode value: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode value: %w", err)
	}
	return out, nil
}

// clone deep copies a plain JSON value.
func clone(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[k] = clone(child)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = clone(child)
		}
		return out
	default:
		return v
	}
}
