package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all scheduler metrics
const namespace = "scheduler"

// Registry is the Prometheus registry served at /metrics.
var Registry = prometheus.NewRegistry()

// HTTP metrics
var (
	// HTTPRequestsTotal counts HTTP requests by method, route and status code.
	HTTPRequestsTotal = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration records HTTP request latency in seconds.
	HTTPRequestDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)
)

// Auth metrics
var (
	// AuthRejections counts requests turned away by the auth and ownership checks.
	AuthRejections = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_rejections_total",
			Help:      "Total number of requests rejected by authentication or ownership checks",
		},
		[]string{"reason"}, // reason: invalid_token|no_secret|unknown_user|not_owner|bad_id|not_found
	)
)

// Rejection reasons used as AuthRejections label values.
const (
	ReasonInvalidToken = "invalid_token"
	ReasonNoSecret     = "no_secret"
	ReasonUnknownUser  = "unknown_user"
	ReasonNotOwner     = "not_owner"
	ReasonBadID        = "bad_id"
	ReasonNotFound     = "not_found"
)

// Init registers the Go runtime and process collectors.
func Init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}
