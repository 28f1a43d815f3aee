// Package metrics defines the custom Prometheus metrics of the freefortalk
// auth API. It is the single source of truth for metric names, labels, and
// help strings.
//
// All metrics are registered with the default Prometheus registry at package
// init via promauto. HTTP request metrics come from echoprometheus and are
// wired in the router (internal/api).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "freefortalk"

// Operation label values.
const (
	OpSignup = "signup"
	OpLogin  = "login"
)

// Outcome label values.
const (
	OutcomeSuccess            = "success"
	OutcomeValidation         = "validation"
	OutcomeConflict           = "conflict"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeError              = "error"
)

// AuthAttemptsTotal counts signup and login attempts.
// Labels:
//   - operation: "signup" or "login"
//   - outcome: "success", "validation", "conflict", "invalid_credentials", or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of signup and login attempts, by outcome.",
	},
	[]string{"operation", "outcome"},
)

// PasswordHashDuration measures bcrypt hashing and verification time.
// Label:
//   - step: "hash" or "verify"
var PasswordHashDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of bcrypt hash and verify calls.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	},
	[]string{"step"},
)

// TokensIssuedTotal counts session tokens signed, by role.
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of session tokens issued, by role.",
	},
	[]string{"role"},
)
