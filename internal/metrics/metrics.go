package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Status label values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	registry *prometheus.Registry

	// Operation metrics
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec

	// Watch metrics
	WatchEventsTotal   *prometheus.CounterVec
	WatchRestartsTotal prometheus.Counter

	// Metadata metrics
	MetadataMigrationsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "operations_total",
				Help: "Total number of storage operations",
			},
			[]string{"op", "status"},
		),
		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "operation_duration_seconds",
				Help:    "Duration of storage operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op"},
		),

		WatchEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "watch_events_total",
				Help: "Total number of change events delivered by the watcher",
			},
			[]string{"kind"},
		),
		WatchRestartsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "watch_restarts_total",
				Help: "Total number of times an active watch was replaced",
			},
		),

		MetadataMigrationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "metadata_migrations_total",
				Help: "Total number of legacy metadata migrations",
			},
			[]string{"result"},
		),
	}

	m.registerMetrics()

	return m
}

// registerMetrics registers all metrics with the registry
func (m *Metrics) registerMetrics() {
	m.registry.MustRegister(m.OperationsTotal)
	m.registry.MustRegister(m.OperationDuration)
	m.registry.MustRegister(m.WatchEventsTotal)
	m.registry.MustRegister(m.WatchRestartsTotal)
	m.registry.MustRegister(m.MetadataMigrationsTotal)
}

// ObserveOperation records the outcome and duration of one operation
func (m *Metrics) ObserveOperation(op string, start time.Time, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.OperationsTotal.WithLabelValues(op, status).Inc()
	m.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// IncWatchEvent counts one delivered change event
func (m *Metrics) IncWatchEvent(kind string) {
	m.WatchEventsTotal.WithLabelValues(kind).Inc()
}

// IncWatchRestart counts one replaced watch
func (m *Metrics) IncWatchRestart() {
	m.WatchRestartsTotal.Inc()
}

// IncMigration counts one migration attempt by result
func (m *Metrics) IncMigration(result string) {
	m.MetadataMigrationsTotal.WithLabelValues(result).Inc()
}

// Handler returns an HTTP handler for the metrics endpoint
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
