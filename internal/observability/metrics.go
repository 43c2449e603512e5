package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce             sync.Once
	lifecycleOperationsTotal *prometheus.CounterVec
	requestLatencySeconds    *prometheus.HistogramVec
	requestErrorsTotal       *prometheus.CounterVec
	remindersDispatchedTotal prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used by the service.
func RegisterMetrics() {
	registerOnce.Do(func() {
		lifecycleOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lifecycle_operations_total",
			Help: "Total number of assignment lifecycle operations by outcome.",
		}, []string{"operation", "outcome"})

		requestLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "request_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		requestErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "request_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		remindersDispatchedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "reminders_dispatched_total",
			Help: "Total number of reminder recipients forwarded to the notifier.",
		})

		prometheus.MustRegister(lifecycleOperationsTotal, requestLatencySeconds, requestErrorsTotal, remindersDispatchedTotal)
	})
}

// LifecycleOperations exposes the counter for lifecycle operations.
func LifecycleOperations() *prometheus.CounterVec {
	RegisterMetrics()
	return lifecycleOperationsTotal
}

// RequestLatency exposes the latency histogram for API requests.
func RequestLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return requestLatencySeconds
}

// RequestErrors exposes the counter for API error responses.
func RequestErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return requestErrorsTotal
}

// RemindersDispatchedTotal exposes the counter for dispatched reminders.
func RemindersDispatchedTotal() prometheus.Counter {
	RegisterMetrics()
	return remindersDispatchedTotal
}
