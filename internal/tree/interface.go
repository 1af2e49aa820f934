package tree

import "context"

// Store is the storage port every collection goes through.
// Paths are '/'-separated keys, e.g. "rankings/Open_2024/jogadores".
type Store interface {
	// Get returns the value at path, or nil when nothing is stored there.
	Get(ctx context.Context, path string) (any, error)
	// Set replaces the value at path. A nil value removes it.
	Set(ctx context.Context, path string, value any) error
	// Update merges partial into the object at path without touching other fields.
	Update(ctx context.Context, path string, partial map[string]any) error
	// Transaction atomically replaces the value at path with fn's result.
	// fn may run more than once and must not keep references to its argument.
	Transaction(ctx context.Context, path string, fn TransactionFunc) (any, error)
	// Create writes value only if nothing is stored at path yet, otherwise it returns ErrExists.
	Create(ctx context.Context, path string, value any) error
	// Remove deletes the value at path. Removing an absent path is not an error.
	Remove(ctx context.Context, path string) error
}

// Backend persists one versioned JSON document per top-level key.
type Backend interface {
	Load(ctx context.Context, key string) (Document, error)
	// Save writes value for key if the stored version still equals prev and returns the new version.
	// A prev of 0 means the key has never been written. A nil value marks the key as absent.
	Save(ctx context.Context, key string, value any, prev int64) (int64, error)
	Close() error
}

// Observer receives transaction conflict notifications.
type Observer interface {
	IncTxConflicts()
}
