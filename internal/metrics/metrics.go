// Package metrics defines Prometheus metrics for credtrail.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "credtrail_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credtrail_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credtrail_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	AuditEntriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credtrail_audit_entries_total",
			Help: "Audit log entries written, by action",
		},
		[]string{"action"},
	)

	AuditQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "credtrail_audit_queue_depth",
			Help: "Current async audit event queue depth",
		},
	)

	AuditEventsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "credtrail_audit_events_dropped_total",
			Help: "Async audit events dropped because the queue was full",
		},
	)

	LoginFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "credtrail_login_failures_total",
			Help: "Failed login attempts",
		},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "credtrail_websocket_connections",
			Help: "Active WebSocket connections",
		},
	)

	ProviderCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "credtrail_providers_total",
			Help: "Total provider count",
		},
	)

	LicenseCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "credtrail_state_licenses_total",
			Help: "Total state license count",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		AuditEntriesTotal, AuditQueueDepth, AuditEventsDropped,
		LoginFailures, WSConnections,
		ProviderCount, LicenseCount,
	)
}
