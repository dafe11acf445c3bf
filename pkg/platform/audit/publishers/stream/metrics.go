package stream

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for audit streaming.
type Metrics struct {
	Published           prometheus.Counter
	PublishFailures     prometheus.Counter
	Backlogged          prometheus.Counter
	Dropped             prometheus.Counter
	CircuitBreakerState prometheus.Gauge
}

func NewMetrics() *Metrics {
	return &Metrics{
		Published: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campusvote_audit_stream_published_total",
			Help: "Total number of audit events published to the stream",
		}),
		PublishFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campusvote_audit_stream_publish_failures_total",
			Help: "Total number of failed audit stream publishes",
		}),
		Backlogged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campusvote_audit_stream_backlogged_total",
			Help: "Total number of audit events held back while the stream was unavailable",
		}),
		Dropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campusvote_audit_stream_dropped_total",
			Help: "Total number of audit events dropped from a full stream backlog",
		}),
		CircuitBreakerState: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "campusvote_audit_stream_circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed/healthy, 1=open/unhealthy)",
		}),
	}
}

func (m *Metrics) IncPublished(n int) {
	if m == nil {
		return
	}
	m.Published.Add(float64(n))
}

func (m *Metrics) IncPublishFailures() {
	if m == nil {
		return
	}
	m.PublishFailures.Inc()
}

func (m *Metrics) IncBacklogged() {
	if m == nil {
		return
	}
	m.Backlogged.Inc()
}

func (m *Metrics) IncDropped() {
	if m == nil {
		return
	}
	m.Dropped.Inc()
}

func (m *Metrics) SetCircuitBreakerState(open bool) {
	if m == nil {
		return
	}
	if open {
		m.CircuitBreakerState.Set(1)
	} else {
		m.CircuitBreakerState.Set(0)
	}
}
