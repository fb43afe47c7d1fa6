package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	RequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Requests currently being served",
		},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "glnc_login_attempts_total",
			Help: "Login attempts by channel and outcome",
		},
		[]string{"channel", "outcome"},
	)

	DeliveryTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "glnc_delivery_transitions_total",
			Help: "Delivery lifecycle transitions",
		},
		[]string{"transition"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "glnc_notifications_total",
			Help: "Supplier notification emails by outcome",
		},
		[]string{"outcome"},
	)
)
