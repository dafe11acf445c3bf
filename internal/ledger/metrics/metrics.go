package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the vote ledger.
type Metrics struct {
	// Append outcomes: ok, duplicate_vote, storage_error
	Appends       *prometheus.CounterVec
	AppendLatency prometheus.Histogram

	Verifications  *prometheus.CounterVec
	VerifyLatency  prometheus.Histogram
	ChainIntegrity prometheus.Gauge
}

func New() *Metrics {
	return &Metrics{
		Appends: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "campusvote_ledger_appends_total",
			Help: "Ledger append attempts by outcome",
		}, []string{"outcome"}),
		AppendLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "campusvote_ledger_append_duration_seconds",
			Help:    "Duration of the serialized append unit including lock wait",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		Verifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "campusvote_ledger_verifications_total",
			Help: "Chain verifications by result",
		}, []string{"result"}),
		VerifyLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "campusvote_ledger_verify_duration_seconds",
			Help:    "Duration of a full chain replay",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		ChainIntegrity: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "campusvote_ledger_chain_valid",
			Help: "Result of the last chain verification (1=valid, 0=broken)",
		}),
	}
}

func (m *Metrics) IncrementAppend(outcome string) {
	if m != nil {
		m.Appends.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) ObserveAppendLatency(d time.Duration) {
	if m != nil {
		m.AppendLatency.Observe(d.Seconds())
	}
}

func (m *Metrics) ObserveVerify(valid bool, d time.Duration) {
	if m == nil {
		return
	}
	m.VerifyLatency.Observe(d.Seconds())
	if valid {
		m.Verifications.WithLabelValues("valid").Inc()
		m.ChainIntegrity.Set(1)
		return
	}
	m.Verifications.WithLabelValues("broken").Inc()
	m.ChainIntegrity.Set(0)
}
