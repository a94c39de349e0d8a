package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hwpayoff/runtime/contracts"
)

// Comparison outcomes.
const (
	OutcomeComputed        = "computed"
	OutcomeInfeasible      = "infeasible"
	OutcomeUnknownHardware = "unknown_hardware"
)

// Metrics holds the API's prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	comparisons *prometheus.CounterVec
	duration    prometheus.Histogram
	eligible    *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payoff_comparisons_total",
			Help: "Computed comparisons by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "payoff_comparison_duration_seconds",
			Help:    "Time spent computing comparisons for API requests.",
			Buckets: prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
		eligible: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "payoff_eligible_providers",
			Help: "Providers eligible in the most recent comparison, by comparator.",
		}, []string{"comparator"}),
	}
	m.registry.MustRegister(m.comparisons, m.duration, m.eligible)
	return m
}

// ObserveComparison records one computed bundle. It matches the engine's
// comparison callback.
func (m *Metrics) ObserveComparison(_ contracts.ComparisonInput, b contracts.ComparisonBundle) {
	if m == nil {
		return
	}

	switch {
	case !b.HardwareFound:
		m.comparisons.WithLabelValues(OutcomeUnknownHardware).Inc()
		return
	case !b.CanRun:
		m.comparisons.WithLabelValues(OutcomeInfeasible).Inc()
		return
	}

	m.comparisons.WithLabelValues(OutcomeComputed).Inc()
	m.eligible.WithLabelValues("cloud").Set(float64(len(b.Cloud)))
	m.eligible.WithLabelValues("oss_api").Set(float64(len(b.OSSAPI)))
	m.eligible.WithLabelValues("proprietary").Set(float64(len(b.Proprietary)))
}

// Timer starts timing a request's computation. Call ObserveDuration on the
// result when done.
func (m *Metrics) Timer() *prometheus.Timer {
	if m == nil {
		return prometheus.NewTimer(prometheus.ObserverFunc(func(float64) {}))
	}
	return prometheus.NewTimer(m.duration)
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
