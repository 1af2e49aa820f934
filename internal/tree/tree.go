package tree

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/sethvargo/go-retry"
)

var _ Store = (*Tree)(nil)

// New creates a Tree over backend.
func New(backend Backend, opts ...Option) *Tree {
	t := &Tree{
		backend:    backend,
		locks:      newKeyedMutex(),
		observer:   noopObserver{},
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
		maxDelay:   defaultMaxDelay,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Close releases the backend.
func (t *Tree) Close() error {
	return t.backend.Close()
}

func (t *Tree) Get(ctx context.Context, path string) (any, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	doc, err := t.backend.Load(ctx, segs[0])
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", segs[0], err)
	}
	if !doc.Exists {
		return nil, nil
	}
	return lookup(doc.Value, segs[1:]), nil
}

func (t *Tree) Set(ctx context.Context, path string, value any) error {
	_, err := t.Transaction(ctx, path, func(any) (any, error) {
		return value, nil
	})
	return err
}

func (t *Tree) Update(ctx context.Context, path string, partial map[string]any) error {
	_, err := t.Transaction(ctx, path, func(current any) (any, error) {
		var obj map[string]any
		switch node := current.(type) {
		case nil:
			obj = make(map[string]any, len(partial))
		case map[string]any:
			obj = node
		default:
			return nil, fmt.Errorf("%w: %s", ErrNotObject, path)
		}
		for k, v := range partial {
			if v == nil {
				delete(obj, k)
				continue
			}
			obj[k] = v
		}
		return obj, nil
	})
	return err
}

func (t *Tree) Create(ctx context.Context, path string, value any) error {
	_, err := t.Transaction(ctx, path, func(current any) (any, error) {
		if current != nil {
			return nil, ErrExists
		}
		return value, nil
	})
	return err
}

func (t *Tree) Remove(ctx context.Context, path string) error {
	_, err := t.Transaction(ctx, path, func(any) (any, error) {
		return nil, nil
	})
	return err
}

// Transaction reads the document holding path, applies fn and writes it back
// only if the document version did not move in between. Conflicts are retried
// with exponential backoff.
func (t *Tree) Transaction(ctx context.Context, path string, fn TransactionFunc) (any, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	key, rest := segs[0], segs[1:]

	unlock := t.locks.lock(key)
	defer unlock()

	backoff := retry.WithMaxRetries(t.maxRetries, retry.WithCappedDuration(t.maxDelay, retry.NewExponential(t.baseDelay)))

	var result any
	attempt := 0
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		doc, err := t.backend.Load(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", key, err)
		}
		var root any
		if doc.Exists {
			root = doc.Value
		}

		next, err := fn(lookup(root, rest))
		if err != nil {
			return err
		}
		next, err = normalize(next)
		if err != nil {
			return err
		}

		newRoot, err := assign(root, rest, next)
		if err != nil {
			return err
		}
		if _, err := t.backend.Save(ctx, key, newRoot, doc.Version); err != nil {
			if errors.Is(err, ErrConflict) {
				t.observer.IncTxConflicts()
				log.Debug("Transaction conflict, retrying", "path", path, "attempt", attempt)
				return retry.RetryableError(err)
			}
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
		result = next
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			log.Error("Transaction gave up after conflicts", "path", path, "attempts", attempt)
			return nil, fmt.Errorf("%w: %s", ErrTooManyRetries, path)
		}
		return nil, err
	}
	return result, nil
}
