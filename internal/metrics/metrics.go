package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the service counters. One instance per process,
// registered against the default registry and served on /metrics.
type Metrics struct {
	AppointmentsCreated   *prometheus.CounterVec
	AppointmentsCancelled prometheus.Counter
	AppointmentsCompleted prometheus.Counter
	Transfers             *prometheus.CounterVec
	QueueRecalcs          prometheus.Counter
	BookingDuration       prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		AppointmentsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "salon_appointments_created_total",
			Help: "Appointments created, partitioned by booking kind.",
		}, []string{"kind"}),

		AppointmentsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "salon_appointments_cancelled_total",
			Help: "Appointments canceled.",
		}),

		AppointmentsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "salon_appointments_completed_total",
			Help: "Appointments completed.",
		}),

		Transfers: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "salon_transfers_total",
			Help: "Barber transfer attempts by result.",
		}, []string{"result"}),

		QueueRecalcs: promauto.NewCounter(prometheus.CounterOpts{
			Name: "salon_queue_recalculations_total",
			Help: "Full queue recomputations.",
		}),

		BookingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "salon_booking_duration_seconds",
			Help:    "Latency of booking operations.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
