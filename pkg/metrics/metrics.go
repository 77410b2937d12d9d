package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "padang"

// Metrics groups the collectors of the booking flow. A nil *Metrics records nothing.
type Metrics struct {
	remoteRequests *prometheus.CounterVec
	remoteDuration *prometheus.HistogramVec
	bookingSteps   *prometheus.CounterVec
	inFlightDenied *prometheus.CounterVec
	rateLimited    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		remoteRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "remote_store",
			Name:      "requests_total",
			Help:      "Remote store requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		remoteDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "remote_store",
			Name:      "request_duration_seconds",
			Help:      "Remote store request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		bookingSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "step_outcomes_total",
			Help:      "Booking step outcomes.",
		}, []string{"step", "outcome"}),
		inFlightDenied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "booking",
			Name:      "inflight_rejections_total",
			Help:      "Operations rejected because the same operation was still in flight.",
		}, []string{"operation"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}, []string{"limit_type"}),
	}

	reg.MustRegister(m.remoteRequests, m.remoteDuration, m.bookingSteps, m.inFlightDenied, m.rateLimited)
	return m
}

// NewRegistry returns a registry carrying the Go and process collectors
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler exposes reg in the Prometheus text format
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

func (m *Metrics) ObserveRemoteCall(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.remoteRequests.WithLabelValues(operation, outcome).Inc()
	m.remoteDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *Metrics) RecordStep(step, outcome string) {
	if m == nil {
		return
	}
	m.bookingSteps.WithLabelValues(step, outcome).Inc()
}

func (m *Metrics) RecordInFlightRejected(operation string) {
	if m == nil {
		return
	}
	m.inFlightDenied.WithLabelValues(operation).Inc()
}

func (m *Metrics) RecordRateLimited(limitType string) {
	if m == nil {
		return
	}
	m.rateLimited.WithLabelValues(limitType).Inc()
}
