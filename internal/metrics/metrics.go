// Package metrics defines Prometheus metrics for the secops engine.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "secops_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "secops_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "secops_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	ApprovalQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "secops_approval_queue_depth",
			Help: "Pending approval requests",
		},
	)

	LedgerEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "secops_ledger_entries",
			Help: "Audit ledger entries appended this process",
		},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "secops_websocket_connections",
			Help: "Active WebSocket connections",
		},
	)

	ExportRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "secops_export_runs_total",
			Help: "Completed export runs by format",
		},
		[]string{"format"},
	)

	LoginAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "secops_login_attempts_total",
			Help: "Ingested admin login attempts by status",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		ApprovalQueueDepth, LedgerEntries, WSConnections,
		ExportRunsTotal, LoginAttemptsTotal,
	)
}
