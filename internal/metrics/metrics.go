// Package metrics - инструменты Prometheus консоли.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Backend
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "console_backend_request_duration_seconds",
			Help:    "Duration of backend API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "console_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Alerts cache
	AlertPolls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_alert_polls_total",
			Help: "Total number of alert refreshes by outcome",
		},
		[]string{"outcome"},
	)

	AlertsCached = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "console_alerts_cached",
			Help: "Alerts currently held in the synchronization cache",
		},
	)

	AlertsUnread = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "console_alerts_unread",
			Help: "Unread alerts in the synchronization cache",
		},
	)

	OptimisticRollbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_optimistic_rollbacks_total",
			Help: "Optimistic mutations reverted after a backend failure",
		},
		[]string{"operation"},
	)

	// Notifications
	NotificationsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_notifications_published_total",
			Help: "Notifications published to the hub by level",
		},
		[]string{"level"},
	)

	WebhookDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_webhook_deliveries_total",
			Help: "Webhook delivery attempts by outcome",
		},
		[]string{"outcome"},
	)
)
