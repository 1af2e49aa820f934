package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu            sync.Mutex
	requests      []Request
	idsAllocated  map[string]int
	txConflicts   int
	storeFailures map[string]int
	startupTime   float64
}

// Request is one observed HTTP request.
type Request struct {
	Route    string
	Method   string
	Code     int
	Duration float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		requests:      make([]Request, 0),
		idsAllocated:  make(map[string]int),
		storeFailures: make(map[string]int),
	}
}

func (m *Mock) ObserveRequest(route, method string, code int, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, Request{Route: route, Method: method, Code: code, Duration: duration})
}

func (m *Mock) IncIDsAllocated(scope string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.idsAllocated[scope]++
}

func (m *Mock) IncTxConflicts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txConflicts++
}

func (m *Mock) IncStoreFailures(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeFailures[kind]++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Requests returns a copy of the observed requests.
func (m *Mock) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

// IDsAllocated returns the number of ids allocated for scope.
func (m *Mock) IDsAllocated(scope string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.idsAllocated[scope]
}

// TxConflicts returns the number of times IncTxConflicts was called.
func (m *Mock) TxConflicts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.txConflicts
}

// StoreFailures returns the number of store failures recorded for kind.
func (m *Mock) StoreFailures(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeFailures[kind]
}

// StartupTime returns the last value passed to SetStartupTime.
func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}
