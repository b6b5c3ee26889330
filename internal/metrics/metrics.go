// Package metrics defines and registers all custom Prometheus metrics for the
// Byway web gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics use promauto and register against the default registry at package
// load; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "byway"

// ── Backend pipeline metrics ──────────────────────────────────────────────────

// BackendRequestsTotal counts outgoing requests to the course API.
// Labels:
//   - resource: the first path segment of the backend route (e.g. "Courses")
//   - outcome: "ok", "api_error", "unauthorized", or "network"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests sent to the backend API, by resource and outcome.",
	},
	[]string{"resource", "outcome"},
)

// BackendRequestDuration measures the latency of a single backend round trip.
// Label:
//   - resource: the first path segment of the backend route
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of backend API round trips.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"resource"},
)

// SessionInvalidationsTotal counts forced logouts triggered by a backend 401.
var SessionInvalidationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_invalidations_total",
		Help:      "Total number of sessions cleared after an authentication-failure response.",
	},
)

// ── Cart badge metrics ────────────────────────────────────────────────────────

// CartBadgeRefreshesTotal counts header badge re-fetches.
// Labels:
//   - trigger: "mutation" or "auth"
//   - outcome: "ok" or "error"
var CartBadgeRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_badge_refreshes_total",
		Help:      "Total number of cart badge refreshes, by trigger and outcome.",
	},
	[]string{"trigger", "outcome"},
)
