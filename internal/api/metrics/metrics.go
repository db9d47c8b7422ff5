// Package metrics defines the domain Prometheus metrics for the booking
// services. It is the single source of truth for metric names, labels and
// help strings.
//
// Each router builds its own Metrics with New against the registry it
// exposes on /metrics, so tests can use isolated registries.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

type Metrics struct {
	// ReservationsCreatedTotal counts newly created reservations.
	ReservationsCreatedTotal prometheus.Counter

	// ReservationStatusChangesTotal counts confirm/cancel actions.
	// Label:
	//   - status: the status written by the action ("confirmed", "cancelled")
	ReservationStatusChangesTotal *prometheus.CounterVec

	// UsersCreatedTotal counts newly created users.
	// Label:
	//   - user_type: "customer", "administrator" or "employee"
	UsersCreatedTotal *prometheus.CounterVec

	// UserActivationChangesTotal counts activate/deactivate actions.
	// Label:
	//   - active: "true" or "false"
	UserActivationChangesTotal *prometheus.CounterVec

	// IdempotentReplaysTotal counts creates answered from an Idempotency-Key.
	// Label:
	//   - resource: "reservations" or "users"
	IdempotentReplaysTotal *prometheus.CounterVec
}

// New registers every metric with reg. Registering twice on the same
// registry panics.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		ReservationsCreatedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_created_total",
			Help:      "Total number of reservations created.",
		}),
		ReservationStatusChangesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_status_changes_total",
			Help:      "Total number of reservation confirm/cancel actions, by resulting status.",
		}, []string{"status"}),
		UsersCreatedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_created_total",
			Help:      "Total number of users created, by user type.",
		}, []string{"user_type"}),
		UserActivationChangesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "user_activation_changes_total",
			Help:      "Total number of user activate/deactivate actions.",
		}, []string{"active"}),
		IdempotentReplaysTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "idempotent_replays_total",
			Help:      "Total number of create requests answered from a stored Idempotency-Key.",
		}, []string{"resource"}),
	}
}
