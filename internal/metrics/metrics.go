package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the service. Audit write
// failures get their own counter because a successful login with a lost audit
// record is the one condition operators must alert on.
type Metrics struct {
	LoginAttempts      *prometheus.CounterVec
	AuditWriteFailures prometheus.Counter
	HTTPDuration       *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		LoginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "media_api_login_attempts_total",
			Help: "Login attempts by outcome.",
		}, []string{"status"}),
		AuditWriteFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "media_api_audit_write_failures_total",
			Help: "Audit records that could not be persisted.",
		}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "media_api_http_request_duration_seconds",
			Help:    "HTTP request latency by method and status class.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "status_class"}),
	}
}

func (m *Metrics) ObserveLogin(status string) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveAuditWriteFailure() {
	if m == nil {
		return
	}
	m.AuditWriteFailures.Inc()
}
