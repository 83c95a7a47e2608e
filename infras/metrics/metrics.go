package metrics

//go:generate go run go.uber.org/mock/mockgen -source=./metrics.go -destination=./mocks/metrics_mock.go -package=mocks

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "seatdesk"

const (
	OutcomeIn               = "in"
	OutcomeOut              = "out"
	OutcomeCapacityExceeded = "capacity_exceeded"
	OutcomeNotFound         = "not_found"
	OutcomeBusy             = "busy"
	OutcomeError            = "error"
)

type Metrics interface {
	ObserveToggle(outcome string, elapsed time.Duration)
	SetOccupiedSeats(roomID string, occupied int)
	Handler() http.Handler
}

type metricsImpl struct {
	registry *prometheus.Registry
	toggles  *prometheus.CounterVec
	duration prometheus.Histogram
	occupied *prometheus.GaugeVec
}

// New builds a registry carrying the process and go collectors next to the app metrics.
func New() Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return NewWithRegistry(reg)
}

func NewWithRegistry(reg *prometheus.Registry) Metrics {
	m := &metricsImpl{
		registry: reg,
		toggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "attendance",
			Name:      "toggles_total",
			Help:      "Attendance toggles by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "attendance",
			Name:      "toggle_duration_seconds",
			Help:      "Time spent processing a toggle.",
			Buckets:   prometheus.DefBuckets,
		}),
		occupied: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "occupancy",
			Name:      "occupied_seats",
			Help:      "Seats currently held by a member inside the room.",
		}, []string{"room_id"}),
	}

	reg.MustRegister(m.toggles, m.duration, m.occupied)

	return m
}

func (m *metricsImpl) ObserveToggle(outcome string, elapsed time.Duration) {
	m.toggles.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func (m *metricsImpl) SetOccupiedSeats(roomID string, occupied int) {
	m.occupied.WithLabelValues(roomID).Set(float64(occupied))
}

func (m *metricsImpl) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
