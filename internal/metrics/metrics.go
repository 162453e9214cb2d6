package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Session lifecycle metrics
	SessionsEnsured = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "session_ensure_total",
		Help: "The total number of ensure calls by outcome.",
	}, []string{"outcome"})
	SessionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "session_transitions_total",
		Help: "The total number of successful lifecycle transitions by target state.",
	}, []string{"to"})
	TransitionConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "session_transition_conflicts_total",
		Help: "The total number of lifecycle transitions rejected for being in the wrong state.",
	})

	// Token metrics
	TokensIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rtc_tokens_issued_total",
		Help: "The total number of transport token pairs issued by role.",
	}, []string{"role"})

	// HTTP metrics
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method, route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Handler returns the HTTP handler serving the Prometheus scrape endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
