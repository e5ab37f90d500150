package revenuecat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK          = "ok"
	outcomeUnavailable = "unavailable"
	outcomeRemoteError = "remote_error"
	outcomeDecodeError = "decode_error"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "revenuecat_client",
			Name:      "requests_total",
			Help:      "API requests by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "revenuecat_client",
			Name:      "request_duration_seconds",
			Help:      "Round-trip latency of requests that produced a response.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)
