package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roomly",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	roomsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roomly",
			Name:      "rooms_created_total",
			Help:      "Rooms created since process start.",
		},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roomly",
			Name:      "bookings_created_total",
			Help:      "Bookings accepted since process start.",
		},
	)

	bookingConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roomly",
			Name:      "booking_conflicts_total",
			Help:      "Booking requests rejected because the slot was taken.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, roomsCreated, bookingsCreated, bookingConflicts)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncRoomCreated counts a successfully created room.
func IncRoomCreated() {
	roomsCreated.Inc()
}

// IncBookingCreated counts a successfully stored booking.
func IncBookingCreated() {
	bookingsCreated.Inc()
}

// IncBookingConflict counts a booking rejected on overlap.
func IncBookingConflict() {
	bookingConflicts.Inc()
}
