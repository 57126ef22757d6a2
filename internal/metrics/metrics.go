package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	FeeGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fee_generations_total",
			Help: "Fee generation runs by outcome (success/failure)",
		},
		[]string{"outcome"},
	)

	FeeRowsWritten = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fee_rows_written_total",
			Help: "Total fee ledger rows written by generation",
		},
	)

	PaymentsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fee_payments_total",
			Help: "Settlement operations by kind (current/settle_all)",
		},
		[]string{"kind"},
	)
)
