// Package metrics registers the Prometheus instruments the service
// exposes on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingsCreated counts successfully committed reservations.
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "desk_bookings_created_total",
		Help: "Number of reservations successfully created.",
	})

	// BookingConflicts counts rejected booking attempts, split by
	// where the conflict was caught: "precheck" for the opportunistic
	// handler check, "transaction" for the authoritative one.
	BookingConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "desk_booking_conflicts_total",
		Help: "Number of booking attempts rejected due to an overlapping reservation.",
	}, []string{"stage"})

	// BookingsCancelled counts cancellations.
	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "desk_bookings_cancelled_total",
		Help: "Number of reservations cancelled.",
	})

	// CheckIns counts successful check-ins.
	CheckIns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "desk_check_ins_total",
		Help: "Number of successful reservation check-ins.",
	})
)
