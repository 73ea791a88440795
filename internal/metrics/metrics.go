// Package metrics holds the Prometheus collectors for lookups.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "numlookup"

// Lookup outcomes used as label values.
const (
	OutcomeFound          = "found"
	OutcomeNotFound       = "not_found"
	OutcomeInvalidInput   = "invalid_input"
	OutcomeUpstreamStatus = "upstream_status"
	OutcomeUpstreamError  = "upstream_error"
)

// Metrics groups the collectors registered for one service instance.
type Metrics struct {
	Lookups          *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	Strategies       *prometheus.CounterVec
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Lookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lookups_total",
				Help:      "Total lookups by outcome.",
			},
			[]string{"outcome"},
		),
		UpstreamDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Duration of upstream fetches.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"result"}, // ok, status, error
		),
		Strategies: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "extraction_strategy_total",
				Help:      "Successful extractions by the strategy that produced them.",
			},
			[]string{"strategy"},
		),
	}
}

// ObserveLookup counts a finished lookup. Safe on a nil receiver.
func (m *Metrics) ObserveLookup(outcome string) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(outcome).Inc()
}

// ObserveUpstream records how long an upstream fetch took.
func (m *Metrics) ObserveUpstream(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamDuration.WithLabelValues(result).Observe(d.Seconds())
}

// ObserveStrategy counts which strategy produced a result.
func (m *Metrics) ObserveStrategy(strategy string) {
	if m == nil {
		return
	}
	m.Strategies.WithLabelValues(strategy).Inc()
}
