package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	Requests           *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	IDsAllocated       *prometheus.CounterVec
	TxConflicts        prometheus.Counter
	StoreFailures      *prometheus.CounterVec
	StartupTimeSeconds prometheus.Gauge
}
