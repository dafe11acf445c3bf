package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for ballot casting.
type Metrics struct {
	// Outcomes: cast, or the error code of the rejection
	Votes        *prometheus.CounterVec
	CastDuration prometheus.Histogram
	InFlight     prometheus.Gauge
}

func New() *Metrics {
	return &Metrics{
		Votes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "campusvote_votes_total",
			Help: "Vote attempts by outcome",
		}, []string{"outcome"}),
		CastDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "campusvote_vote_cast_duration_seconds",
			Help:    "Duration of a vote attempt including the fingerprint prompt",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		InFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "campusvote_votes_in_flight",
			Help: "Vote attempts currently in progress",
		}),
	}
}

func (m *Metrics) IncrementVote(outcome string) {
	if m != nil {
		m.Votes.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) ObserveCast(d time.Duration) {
	if m != nil {
		m.CastDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) IncInFlight() {
	if m != nil {
		m.InFlight.Inc()
	}
}

func (m *Metrics) DecInFlight() {
	if m != nil {
		m.InFlight.Dec()
	}
}
