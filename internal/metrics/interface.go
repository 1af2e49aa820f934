package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	ObserveRequest(route, method string, code int, duration float64)
	IncIDsAllocated(scope string)
	IncTxConflicts()
	IncStoreFailures(kind string)
	SetStartupTime(duration float64)
}
