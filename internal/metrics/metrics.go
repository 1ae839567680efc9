// README: Prometheus collectors for HTTP traffic and pricing recomputations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Metrics struct {
	Registry       *prometheus.Registry
	Requests       *prometheus.CounterVec
	Latency        *prometheus.HistogramVec
	Recomputations prometheus.Counter
	Edits          *prometheus.CounterVec
}

// New builds a private registry so tests can create as many as they like.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tourcalc_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tourcalc_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		Recomputations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourcalc_recomputations_total",
			Help: "Cost breakdown recomputations.",
		}),
		Edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tourcalc_trip_edits_total",
			Help: "Trip edits by action and outcome.",
		}, []string{"action", "outcome"}),
	}
	reg.MustRegister(
		m.Requests, m.Latency, m.Recomputations, m.Edits,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Recomputed satisfies pricing.Recorder.
func (m *Metrics) Recomputed() {
	m.Recomputations.Inc()
}

// Edit counts one trip edit.
func (m *Metrics) Edit(action string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	m.Edits.WithLabelValues(action, outcome).Inc()
}
