package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "torneios_http_requests_total",
			Help: "The total number of HTTP requests served, by route pattern, method and status code.",
		}, []string{"route", "method", "code"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "torneios_http_request_duration_seconds",
			Help:    "The duration of HTTP requests by route pattern and method.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "method"}),
		IDsAllocated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "torneios_ids_allocated_total",
			Help: "The total number of counter ids handed out, by counter scope.",
		}, []string{"scope"}),
		TxConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "torneios_store_transaction_conflicts_total",
			Help: "The total number of store transactions that lost a compare-and-swap and were retried.",
		}),
		StoreFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "torneios_store_failures_total",
			Help: "The total number of requests that failed because of the backing store, by error kind.",
		}, []string{"kind"}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "torneios_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.Requests,
		s.RequestDuration,
		s.IDsAllocated,
		s.TxConflicts,
		s.StoreFailures,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) ObserveRequest(route, method string, code int, duration float64) {
	s.Requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	s.RequestDuration.WithLabelValues(route, method).Observe(duration)
}

func (s *Service) IncIDsAllocated(scope string) {
	s.IDsAllocated.WithLabelValues(scope).Inc()
}

func (s *Service) IncTxConflicts() {
	s.TxConflicts.Inc()
}

func (s *Service) IncStoreFailures(kind string) {
	s.StoreFailures.WithLabelValues(kind).Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
