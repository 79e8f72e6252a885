package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration in seconds
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	ResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "Size of HTTP responses in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "route"},
	)

	// CacheLookups counts query cache lookups by layer and result ("hit" or "miss").
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_cache_lookups_total",
			Help: "Query cache lookups",
		},
		[]string{"layer", "result"},
	)

	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_created_total",
			Help: "Notifications created by rsvp fan-out",
		},
		[]string{"type"},
	)

	FanOutFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notification_fanout_failures_total",
			Help: "Fan-outs that failed after the primary write succeeded",
		},
	)

	Deliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notification_deliveries_total",
			Help: "Notification deliveries by channel and result",
		},
		[]string{"channel", "result"},
	)
)
