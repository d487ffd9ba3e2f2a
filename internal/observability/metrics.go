package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	httpRequestsTotal     *prometheus.CounterVec
	httpLatencySeconds    *prometheus.HistogramVec
	httpErrorsTotal       *prometheus.CounterVec
	storeOperationsTotal  *prometheus.CounterVec
	solutionCacheRequests *prometheus.CounterVec
	eventsPublishedTotal  *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sasgp_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sasgp_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sasgp_http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		storeOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sasgp_store_operations_total",
			Help: "Document store operations by collection, operation and outcome.",
		}, []string{"collection", "operation", "outcome"})

		solutionCacheRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sasgp_solution_cache_requests_total",
			Help: "Solution list cache lookups by result.",
		}, []string{"result"})

		eventsPublishedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sasgp_events_published_total",
			Help: "Domain events published to the broker.",
		}, []string{"subject", "outcome"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			storeOperationsTotal,
			solutionCacheRequests,
			eventsPublishedTotal,
		)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// StoreOperations exposes the store operation counter.
func StoreOperations() *prometheus.CounterVec {
	RegisterMetrics()
	return storeOperationsTotal
}

// SolutionCacheRequests exposes the cache hit/miss counter.
func SolutionCacheRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return solutionCacheRequests
}

// EventsPublished exposes the broker publish counter.
func EventsPublished() *prometheus.CounterVec {
	RegisterMetrics()
	return eventsPublishedTotal
}

// ObserveStore records the outcome of a single store operation.
func ObserveStore(collection, operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	StoreOperations().WithLabelValues(collection, operation, outcome).Inc()
}
