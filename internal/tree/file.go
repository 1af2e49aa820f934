package tree

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/torneios/internal/apperr"
)

var _ Backend = (*FileBackend)(nil)

// FileBackend keeps the whole tree in a single JSON document on disk.
// An empty path keeps everything in memory.
type FileBackend struct {
	path     string
	mu       sync.Mutex
	data     map[string]any
	versions map[string]int64
	seq      int64
}

// OpenFile loads the document at path, starting empty when the file does not exist.
func OpenFile(path string) (*FileBackend, error) {
	b := &FileBackend{
		path:     path,
		data:     make(map[string]any),
		versions: make(map[string]int64),
	}
	if path == "" {
		log.Info("Using in-memory tree store")
		return b, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Info("Data file not found, starting empty", "path", path)
			return b, nil
		}
		return nil, apperr.Wrap(apperr.BackingStoreReadFailure, apperr.InternalMessage, fmt.Errorf("failed to read %s: %w", path, err))
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &b.data); err != nil {
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				return nil, apperr.Wrap(apperr.MalformedStoredJSON, apperr.InternalMessage, fmt.Errorf("%s at offset %d: %w", path, syntaxErr.Offset, err))
			}
			return nil, apperr.Wrap(apperr.BackingStoreReadFailure, apperr.InternalMessage, fmt.Errorf("failed to decode %s: %w", path, err))
		}
		if b.data == nil {
			b.data = make(map[string]any)
		}
	}
	for key := range b.data {
		b.seq++
		b.versions[key] = b.seq
	}
	log.Info("Loaded data file", "path", path, "keys", len(b.data))
	return b, nil
}

func (b *FileBackend) Load(_ context.Context, key string) (Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	value, ok := b.data[key]
	return Document{
		Value:   clone(value),
		Version: b.versions[key],
		Exists:  ok,
	}, nil
}

func (b *FileBackend) Save(_ context.Context, key string, value any, prev int64) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.versions[key] != prev {
		return 0, ErrConflict
	}
	_, existed := b.data[key]
	if value == nil && !existed {
		return prev, nil
	}

	next := make(map[string]any, len(b.data)+1)
	for k, v := range b.data {
		next[k] = v
	}
	if value == nil {
		delete(next, key)
	} else {
		next[key] = clone(value)
	}

	if err := b.persist(next); err != nil {
		return 0, err
	}

	b.data = next
	b.seq++
	b.versions[key] = b.seq
	return b.seq, nil
}

// persist rewrites the file through a temp file so readers never see a partial document.
func (b *FileBackend) persist(data map[string]any) error {
	if b.path == "" {
		return nil
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode data file: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(b.path), filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), b.path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}

func (b *FileBackend) Close() error {
	return nil
}
