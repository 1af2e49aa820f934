package tree

import (
	"errors"
	"time"
)

var (
	// ErrConflict is returned by a Backend when the stored version moved since it was read.
	ErrConflict = errors.New("tree: version conflict")
	// ErrExists is returned by Create when the path already holds a value.
	ErrExists = errors.New("tree: value already exists")
	// ErrTooManyRetries is returned when a transaction kept conflicting.
	ErrTooManyRetries = errors.New("tree: transaction retries exhausted")
	ErrInvalidPath    = errors.New("tree: invalid path")
	ErrNotObject      = errors.New("tree: value at path is not an object")
)

// TransactionFunc computes the next value from the current one. Returning an error aborts.
type TransactionFunc func(current any) (any, error)

// Document is a top-level value together with the version it was read at.
type Document struct {
	Value   any
	Version int64
	Exists  bool
}

const (
	defaultMaxRetries = 25
	defaultBaseDelay  = 2 * time.Millisecond
	defaultMaxDelay   = 250 * time.Millisecond
)

// Tree implements Store on top of a Backend.
type Tree struct {
	backend    Backend
	locks      *keyedMutex
	observer   Observer
	maxRetries uint64
	baseDelay  time.Duration
	maxDelay   time.Duration
}

type Option func(*Tree)

func WithObserver(o Observer) Option {
	return func(t *Tree) {
		t.observer = o
	}
}

func WithRetries(max uint64, base time.Duration) Option {
	return func(t *Tree) {
		t.maxRetries = max
		t.baseDelay = base
	}
}

type noopObserver struct{}

func (noopObserver) IncTxConflicts() {}
