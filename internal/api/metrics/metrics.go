// Package metrics defines and registers the application-level Prometheus
// metrics of the pantry API. HTTP request metrics come from echoprometheus;
// this package only holds the counters the handlers increment themselves.
//
// All metrics are registered with the default registry through promauto the
// first time the package is imported.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pantry"

// Login outcomes used as the "result" label of LoginAttemptsTotal.
const (
	LoginSuccess   = "success"
	LoginRejected  = "invalid_credentials"
	LoginThrottled = "throttled"
	LoginError     = "error"
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: one of LoginSuccess, LoginRejected, LoginThrottled, LoginError
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Entity metrics ────────────────────────────────────────────────────────────

// EntityMutationsTotal counts successful writes through the API.
// Labels:
//   - entity: "user", "comment", "ingredient" or "role"
//   - action: "create", "update" or "delete"
var EntityMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entity_mutations_total",
		Help:      "Total number of entities created, updated or soft-deleted.",
	},
	[]string{"entity", "action"},
)
