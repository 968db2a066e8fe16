package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dixa_client",
			Name:      "requests_total",
			Help:      "Outbound Dixa API requests by operation and status code.",
		},
		[]string{"operation", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dixa_client",
			Name:      "request_duration_seconds",
			Help:      "Latency of outbound Dixa API requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	retriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dixa_client",
			Name:      "retries_total",
			Help:      "Retries issued after a recoverable Dixa API failure.",
		},
		[]string{"operation"},
	)
)

func observeRequest(operation, code string, elapsed time.Duration) {
	requestsTotal.WithLabelValues(operation, code).Inc()
	requestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
