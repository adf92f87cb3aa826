package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Auth attempt outcomes.
const (
	OutcomeSuccess      = "success"
	OutcomeIncorrectPIN = "incorrect_pin"
	OutcomeLocked       = "locked"
	OutcomeNotFound     = "not_found"
	OutcomeError        = "error"
)

var (
	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goatm_auth_attempts_total",
			Help: "Authentication attempts by outcome",
		},
		[]string{"outcome"},
	)

	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goatm_teller_operations_total",
			Help: "Teller operations by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "goatm_active_sessions",
			Help: "Number of currently active sessions",
		},
	)
)

// RecordAuthAttempt counts one authentication attempt.
func RecordAuthAttempt(outcome string) {
	authAttemptsTotal.WithLabelValues(outcome).Inc()
}

// RecordOperation counts one teller operation.
func RecordOperation(kind, outcome string) {
	operationsTotal.WithLabelValues(kind, outcome).Inc()
}

// SetActiveSessions updates the active session gauge.
func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}
