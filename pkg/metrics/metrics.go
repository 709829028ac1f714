package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	RequestTotal    *prometheus.CounterVec
	ErrorTotal      *prometheus.CounterVec

	EntityOperations *prometheus.CounterVec
	GrantsIssued     *prometheus.CounterVec
	GrantRedemptions *prometheus.CounterVec

	OutboxEventsProcessed prometheus.Counter
	OutboxEventsFailed    prometheus.Counter
	OutboxQueueLatency    prometheus.Histogram
}

// New creates and registers all application metrics
func New(namespace string) *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		RequestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		ErrorTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Total number of HTTP error responses",
		}, []string{"method", "path"}),
		EntityOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entity_operations_total",
			Help:      "Entity store operations by collection and action",
		}, []string{"entity", "action"}),
		GrantsIssued: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "share_grants_issued_total",
			Help:      "Share grants issued by share type",
		}, []string{"share_type"}),
		GrantRedemptions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "share_grant_redemptions_total",
			Help:      "Share grant redemption attempts by outcome",
		}, []string{"outcome"}),
		OutboxEventsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_events_processed_total",
			Help:      "Total number of successfully published outbox events",
		}),
		OutboxEventsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_events_failed_total",
			Help:      "Total number of failed outbox events",
		}),
		OutboxQueueLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "outbox_processing_duration_seconds",
			Help:      "Time spent publishing a batch of outbox events",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
	}
}
