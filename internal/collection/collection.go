package collection

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/torneios/internal/apperr"
	"github.com/mauv0809/torneios/internal/ident"
	"github.com/mauv0809/torneios/internal/tree"
)

// Record is a schema-less stored entity.
type Record = map[string]any

// Collection guards a set of records stored at one path, either as an object
// keyed by id or as a flat array of records carrying an "id" field.
type Collection struct {
	store     tree.Store
	path      string
	notFound  string
	duplicate string
}

// New creates a Collection. notFound and duplicate are the user facing messages
// for missing ids and id clashes.
func New(store tree.Store, path, notFound, duplicate string) *Collection {
	return &Collection{
		store:     store,
		path:      path,
		notFound:  notFound,
		duplicate: duplicate,
	}
}

func (c *Collection) Path() string {
	return c.path
}

// NotFound returns the error reported for a missing id.
func (c *Collection) NotFound() error {
	return apperr.New(apperr.NotFound, c.notFound)
}

// RecordPath returns the store path of the record with id. Ids that are not a
// single path segment cannot name a record and report NotFound.
func (c *Collection) RecordPath(id string) (string, error) {
	if !ident.ValidKey(id) {
		return "", c.NotFound()
	}
	return tree.Join(c.path, id), nil
}

// List returns every record, never nil.
func (c *Collection) List(ctx context.Context) ([]Record, error) {
	v, err := c.store.Get(ctx, c.path)
	if err != nil {
		return nil, apperr.Read(err)
	}
	return Records(v), nil
}

// Find returns the record with id or a NotFound error.
func (c *Collection) Find(ctx context.Context, id string) (Record, error) {
	v, err := c.store.Get(ctx, c.path)
	if err != nil {
		return nil, apperr.Read(err)
	}
	rec, _, ok := locate(v, id)
	if !ok {
		return nil, c.NotFound()
	}
	return rec, nil
}

// Exists reports whether a record with id is stored.
func (c *Collection) Exists(ctx context.Context, id string) (bool, error) {
	_, err := c.Find(ctx, id)
	if err == nil {
		return true, nil
	}
	if apperr.KindOf(err) == apperr.NotFound {
		return false, nil
	}
	return false, err
}

// Insert stores rec under id. The existence check and the write happen in the
// same transaction, so two concurrent inserts of the same id cannot both succeed.
func (c *Collection) Insert(ctx context.Context, id string, rec Record) (Record, error) {
	if rec == nil {
		rec = Record{}
	}
	rec["id"] = id
	_, err := c.store.Transaction(ctx, c.path, func(current any) (any, error) {
		if _, _, ok := locate(current, id); ok {
			return nil, apperr.New(apperr.DuplicateName, c.duplicate)
		}
		switch node := current.(type) {
		case []any:
			return append(node, rec), nil
		case map[string]any:
			node[id] = rec
			return node, nil
		case nil:
			return map[string]any{id: rec}, nil
		default:
			return nil, Malformed(c.path, current)
		}
	})
	if err != nil {
		return nil, apperr.Write(err)
	}
	log.Debug("Inserted record", "path", c.path, "id", id)
	return rec, nil
}

// Patch merges partial into the record with id. A nil field value removes the field.
// The id field cannot be changed.
func (c *Collection) Patch(ctx context.Context, id string, partial Record) (Record, error) {
	var updated Record
	_, err := c.store.Transaction(ctx, c.path, func(current any) (any, error) {
		rec, pos, ok := locate(current, id)
		if !ok {
			return nil, c.NotFound()
		}
		for k, v := range partial {
			if k == "id" {
				continue
			}
			if v == nil {
				delete(rec, k)
				continue
			}
			rec[k] = v
		}
		updated = rec
		return put(current, pos, rec), nil
	})
	if err != nil {
		return nil, apperr.Write(err)
	}
	return updated, nil
}

// Replace overwrites the record with id entirely, keeping its id.
func (c *Collection) Replace(ctx context.Context, id string, rec Record) (Record, error) {
	if rec == nil {
		rec = Record{}
	}
	rec["id"] = id
	_, err := c.store.Transaction(ctx, c.path, func(current any) (any, error) {
		_, pos, ok := locate(current, id)
		if !ok {
			return nil, c.NotFound()
		}
		return put(current, pos, rec), nil
	})
	if err != nil {
		return nil, apperr.Write(err)
	}
	return rec, nil
}

// Delete removes the record with id, then attempts to remove every secondary
// reference path. Only the primary removal decides success; secondary failures
// are logged.
func (c *Collection) Delete(ctx context.Context, id string, secondary ...string) error {
	_, err := c.store.Transaction(ctx, c.path, func(current any) (any, error) {
		_, pos, ok := locate(current, id)
		if !ok {
			return nil, c.NotFound()
		}
		switch node := current.(type) {
		case []any:
			return append(node[:pos.index:pos.index], node[pos.index+1:]...), nil
		case map[string]any:
			delete(node, pos.key)
			return node, nil
		}
		return current, nil
	})
	if err != nil {
		return apperr.Write(err)
	}
	log.Debug("Deleted record", "path", c.path, "id", id)

	for _, ref := range secondary {
		if err := c.store.Remove(ctx, ref); err != nil {
			log.Warn("Failed to remove secondary reference", "path", ref, "id", id, "error", err)
		}
	}
	return nil
}

// MaxID returns the largest numeric id stored in the collection.
func (c *Collection) MaxID(ctx context.Context) (int64, error) {
	v, err := c.store.Get(ctx, c.path)
	if err != nil {
		return 0, apperr.Read(err)
	}
	return HighestID(v), nil
}

// HighestID returns the largest numeric id in an object or array collection,
// 0 when there is none. Keys of an object collection count as ids.
func HighestID(v any) int64 {
	var highest int64
	consider := func(id string) {
		if n, err := strconv.ParseInt(id, 10, 64); err == nil && n > highest {
			highest = n
		}
	}
	switch node := v.(type) {
	case map[string]any:
		for key, child := range node {
			consider(key)
			if rec, ok := child.(map[string]any); ok {
				consider(ident.FormatID(rec["id"]))
			}
		}
	case []any:
		for _, child := range node {
			if rec, ok := child.(map[string]any); ok {
				consider(ident.FormatID(rec["id"]))
			}
		}
	}
	return highest
}

// position is where a record sits inside its collection.
type position struct {
	key   string
	index int
}

// locate finds the record with id in an object or array collection.
// The returned record is the stored value itself.
func locate(v any, id string) (Record, position, bool) {
	switch node := v.(type) {
	case map[string]any:
		if rec, ok := node[id].(map[string]any); ok {
			if _, has := rec["id"]; !has {
				rec["id"] = id
			}
			return rec, position{key: id}, true
		}
		// Objects keyed by something other than the id still count.
		for key, child := range node {
			if rec, ok := child.(map[string]any); ok && ident.FormatID(rec["id"]) == id {
				return rec, position{key: key}, true
			}
		}
	case []any:
		for i, child := range node {
			if rec, ok := child.(map[string]any); ok && ident.FormatID(rec["id"]) == id {
				return rec, position{index: i}, true
			}
		}
	}
	return nil, position{}, false
}

func put(collection any, pos position, rec Record) any {
	switch node := collection.(type) {
	case []any:
		node[pos.index] = rec
		return node
	case map[string]any:
		node[pos.key] = rec
		return node
	}
	return collection
}

// Records flattens an object or array collection into its records.
// Object collections are ordered by key, numeric keys numerically.
func Records(v any) []Record {
	out := []Record{}
	switch node := v.(type) {
	case map[string]any:
		for _, key := range SortedKeys(node) {
			if rec, ok := node[key].(map[string]any); ok {
				if _, has := rec["id"]; !has {
					rec["id"] = key
				}
				out = append(out, rec)
			}
		}
	case []any:
		for _, child := range node {
			if rec, ok := child.(map[string]any); ok {
				out = append(out, rec)
			}
		}
	}
	return out
}

// SortedKeys returns the keys of m, numeric keys first in numeric order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
	return keys
}

// Malformed reports a collection node that is neither an object nor an array.
func Malformed(path string, v any) error {
	return apperr.Wrap(apperr.MalformedStoredJSON, apperr.InternalMessage, fmt.Errorf("%s holds an unexpected %T", path, v))
}
