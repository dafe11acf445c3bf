package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds process-wide Prometheus metrics. Module-specific metrics live
// with their modules (ledger, voting).
type Metrics struct {
	VotersRegistered   prometheus.Counter
	ElectionsCreated   prometheus.Counter
	BiometricEnrolled  prometheus.Counter
	SignIns            *prometheus.CounterVec
	AuthorizationTotal *prometheus.CounterVec
}

// New creates and registers the metrics.
func New() *Metrics {
	return &Metrics{
		VotersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campusvote_voters_registered_total",
			Help: "Total number of voters registered",
		}),
		ElectionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campusvote_elections_created_total",
			Help: "Total number of elections created",
		}),
		BiometricEnrolled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "campusvote_biometric_enrollments_total",
			Help: "Total number of biometric credentials enrolled",
		}),
		SignIns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "campusvote_signins_total",
			Help: "Biometric sign-in attempts by outcome",
		}, []string{"outcome"}),
		AuthorizationTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "campusvote_authorization_decisions_total",
			Help: "Admin authorization decisions by decision",
		}, []string{"decision"}),
	}
}

func (m *Metrics) IncrementVotersRegistered() {
	if m == nil {
		return
	}
	m.VotersRegistered.Inc()
}

func (m *Metrics) IncrementElectionsCreated() {
	if m == nil {
		return
	}
	m.ElectionsCreated.Inc()
}

func (m *Metrics) IncrementBiometricEnrolled() {
	if m == nil {
		return
	}
	m.BiometricEnrolled.Inc()
}

func (m *Metrics) IncrementSignIn(outcome string) {
	if m == nil {
		return
	}
	m.SignIns.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementAuthorization(decision string) {
	if m == nil {
		return
	}
	m.AuthorizationTotal.WithLabelValues(decision).Inc()
}
