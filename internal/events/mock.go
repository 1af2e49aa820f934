package events

import (
	"context"
	"sync"
)

// Mock is a mock implementation of Publisher for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	PublishFunc func(change Change) error

	PublishCalls []Change
	closed       bool
}

// NewMock creates a new mock Publisher.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = nil
}

// Publish records the call and executes the mock function if provided.
func (m *Mock) Publish(_ context.Context, change Change) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = append(m.PublishCalls, change)
	if m.PublishFunc != nil {
		return m.PublishFunc(change)
	}
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Changes returns a copy of every published change.
func (m *Mock) Changes() []Change {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Change, len(m.PublishCalls))
	copy(out, m.PublishCalls)
	return out
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
