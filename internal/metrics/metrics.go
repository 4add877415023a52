// Package metrics holds the Prometheus collectors of the web front-end.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes reported for backend calls and page actions.
const (
	OutcomeOK          = "ok"
	OutcomeAPIError    = "api_error"
	OutcomeUnreachable = "unreachable"
	OutcomeInvalid     = "invalid"
)

var (
	once sync.Once

	apiRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reservation_web",
			Name:      "api_requests_total",
			Help:      "Calls made to the reservation API by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	apiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reservation_web",
			Name:      "api_request_duration_seconds",
			Help:      "Latency of calls made to the reservation API.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	actions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reservation_web",
			Name:      "actions_total",
			Help:      "User actions forwarded from the pages by action and outcome.",
		},
		[]string{"action", "outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(apiRequests, apiDuration, actions)
	})
}

// ObserveAPI records one backend call.
func ObserveAPI(endpoint, outcome string, took time.Duration) {
	apiRequests.WithLabelValues(endpoint, outcome).Inc()
	apiDuration.WithLabelValues(endpoint).Observe(took.Seconds())
}

func IncAction(action, outcome string) {
	actions.WithLabelValues(action, outcome).Inc()
}
