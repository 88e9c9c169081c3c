package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tablebook",
			Name:      "bookings_created_total",
			Help:      "Bookings created, labelled by initial status.",
		},
		[]string{"status"},
	)

	bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tablebook",
			Name:      "booking_transitions_total",
			Help:      "Lifecycle transitions applied, labelled by event.",
		},
		[]string{"event"},
	)

	slotConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tablebook",
			Name:      "slot_conflicts_total",
			Help:      "Create attempts rejected because the slot was taken.",
		},
	)

	streamSubscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tablebook",
			Name:      "stream_subscribers",
			Help:      "Currently connected notification stream subscribers.",
		},
	)

	registerOnce sync.Once
)

// Register installs the collectors into the default registry. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			bookingsCreated,
			bookingTransitions,
			slotConflicts,
			streamSubscribers,
		)
	})
}

func IncBookingCreated(status string) {
	bookingsCreated.WithLabelValues(status).Inc()
}

func IncBookingTransition(event string) {
	bookingTransitions.WithLabelValues(event).Inc()
}

func IncSlotConflict() {
	slotConflicts.Inc()
}

func IncStreamSubscribers() {
	streamSubscribers.Inc()
}

func DecStreamSubscribers() {
	streamSubscribers.Dec()
}
