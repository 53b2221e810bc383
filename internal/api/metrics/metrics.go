// Package metrics defines all custom Prometheus metrics for the auth
// service. It is the single source of truth for metric names, labels, and
// help strings; promauto registers everything with the default registry at
// package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "siaa"

// LoginAttemptsTotal counts authentication attempts.
// Label:
//   - result: "success", "invalid_credentials", "invalid_input", "throttled",
//     or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of authentication attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts account registrations.
// Label:
//   - result: "success", "duplicate_username", "invalid_input", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// GroupChecksTotal counts group-membership authorization decisions made at
// the routing layer.
// Labels:
//   - group:  the group the route requires (e.g. "Admin")
//   - result: "allowed" or "denied"
var GroupChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "group_checks_total",
		Help:      "Total number of group-membership checks, by group and result.",
	},
	[]string{"group", "result"},
)

// LogoutsTotal counts session teardowns requested by clients.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of explicit logouts.",
	},
)
