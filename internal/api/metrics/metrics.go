// Package metrics defines and registers all custom Prometheus metrics for
// the calculator API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// init time and are exposed through the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "calculator"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful user registrations.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// UserCacheTotal counts authenticated-user cache lookups.
// Label:
//   - result: "hit" (served from cache) or "miss" (fell through to the store)
var UserCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_cache_total",
		Help:      "Total number of authenticated-user cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Calculation metrics ───────────────────────────────────────────────────────

// CalculationsCreatedTotal counts persisted calculations.
// Label:
//   - operation: "add", "subtract", "multiply", "divide", or "power"
var CalculationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calculations_created_total",
		Help:      "Total number of calculations created, by operation.",
	},
	[]string{"operation"},
)

// ComputeTotal counts direct (non-persisted) compute requests.
// Label:
//   - operation: the requested operation name
var ComputeTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "compute_total",
		Help:      "Total number of direct compute requests, by operation.",
	},
	[]string{"operation"},
)
