package tree

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mauv0809/torneios/internal/apperr"
)

var _ Backend = (*SQLBackend)(nil)

// SQLBackend stores each top-level key as a row of tree_nodes.
// Rows are never deleted: removing a key stores JSON null so versions keep growing.
type SQLBackend struct {
	db *sql.DB
}

func NewSQL(db *sql.DB) *SQLBackend {
	return &SQLBackend{db: db}
}

func (b *SQLBackend) Load(ctx context.Context, key string) (Document, error) {
	var raw string
	var version int64
	err := b.db.QueryRowContext(ctx, "SELECT value, version FROM tree_nodes WHERE key = ?", key).Scan(&raw, &version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, nil
		}
		return Document{}, apperr.Wrap(apperr.BackingStoreReadFailure, apperr.InternalMessage, err)
	}
	return decodeDocument(key, raw, version)
}

func (b *SQLBackend) Save(ctx context.Context, key string, value any, prev int64) (int64, error) {
	raw, err := encodeValue(value)
	if err != nil {
		return 0, err
	}

	var res sql.Result
	if prev == 0 {
		if value == nil {
			return 0, nil
		}
		res, err = b.db.ExecContext(ctx, `
			INSERT INTO tree_nodes (key, value, version) VALUES (?, ?, 1)
			ON CONFLICT(key) DO NOTHING;
		`, key, raw)
	} else {
		res, err = b.db.ExecContext(ctx, `
			UPDATE tree_nodes SET value = ?, version = version + 1
			WHERE key = ? AND version = ?;
		`, raw, key, prev)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows for %s: %w", key, err)
	}
	if n == 0 {
		return 0, ErrConflict
	}
	return prev + 1, nil
}

// Close is a no-op; the *sql.DB is owned by whoever opened it.
func (b *SQLBackend) Close() error {
	return nil
}

func encodeValue(value any) (string, error) {
	if value == nil {
		return "null", nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed to encode value: %w", err)
	}
	return string(raw), nil
}

func decodeDocument(key, raw string, version int64) (Document, error) {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return Document{}, apperr.Wrap(apperr.MalformedStoredJSON, apperr.InternalMessage, fmt.Errorf("stored value for %s: %w", key, err))
	}
	return Document{Value: value, Version: version, Exists: value != nil}, nil
}
