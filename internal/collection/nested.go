package collection

import (
	"context"

	"github.com/mauv0809/torneios/internal/apperr"
	"github.com/mauv0809/torneios/internal/ident"
	"github.com/mauv0809/torneios/internal/tree"
)

// ReadField reads the whole parent record at parentPath and returns its field.
// missing is returned when the parent does not exist.
func ReadField(ctx context.Context, store tree.Store, parentPath, field string, missing error) (any, error) {
	parent, err := store.Get(ctx, parentPath)
	if err != nil {
		return nil, apperr.Read(err)
	}
	rec, ok := parent.(map[string]any)
	if !ok {
		return nil, missing
	}
	return rec[field], nil
}

// MutateField replaces one field of the parent record at parentPath with the
// result of fn, inside a single transaction. Sibling fields are written back
// unchanged. A nil result removes the field.
func MutateField(ctx context.Context, store tree.Store, parentPath, field string, missing error, fn func(current any) (any, error)) (any, error) {
	var out any
	_, err := store.Transaction(ctx, parentPath, func(parent any) (any, error) {
		rec, ok := parent.(map[string]any)
		if !ok {
			return nil, missing
		}
		next, err := fn(rec[field])
		if err != nil {
			return nil, err
		}
		if next == nil {
			delete(rec, field)
		} else {
			rec[field] = next
		}
		out = next
		return rec, nil
	})
	if err != nil {
		return nil, apperr.Write(err)
	}
	return out, nil
}

// AsArray reads a nested list field. Absent fields are empty; object-shaped
// lists (keyed by index or id) are flattened in key order.
func AsArray(v any) []any {
	switch node := v.(type) {
	case []any:
		return node
	case map[string]any:
		out := make([]any, 0, len(node))
		for _, key := range SortedKeys(node) {
			out = append(out, node[key])
		}
		return out
	}
	return []any{}
}

// AsObject reads a nested mapping field. Absent fields are empty.
func AsObject(v any) map[string]any {
	if node, ok := v.(map[string]any); ok {
		return node
	}
	return map[string]any{}
}

// FindBy returns the first item whose key field equals value, and its index.
func FindBy(items []any, key, value string) (Record, int) {
	for i, item := range items {
		if rec, ok := item.(map[string]any); ok && ident.FormatID(rec[key]) == value {
			return rec, i
		}
	}
	return nil, -1
}

// UpsertBy replaces the first item whose key field matches item's, or appends item.
func UpsertBy(items []any, key string, item Record) []any {
	if _, i := FindBy(items, key, ident.FormatID(item[key])); i >= 0 {
		items[i] = item
		return items
	}
	return append(items, item)
}

// RemoveBy drops every item whose key field equals value and reports whether any was dropped.
func RemoveBy(items []any, key, value string) ([]any, bool) {
	out := make([]any, 0, len(items))
	removed := false
	for _, item := range items {
		if rec, ok := item.(map[string]any); ok && ident.FormatID(rec[key]) == value {
			removed = true
			continue
		}
		out = append(out, item)
	}
	return out, removed
}
