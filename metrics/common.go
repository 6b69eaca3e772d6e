// Package metrics registers prometheus metrics of the governance node under
// a common namespace and serves them over http.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// Namespace is the basic namespace where all metrics are defined under.
	Namespace = "democracy"
)

// TallyBuckets cover durations of a tally in seconds, from half a millisecond
// for a ballot with a few voters to several seconds for deep delegation graphs.
var TallyBuckets = prometheus.ExponentialBuckets(0.0005, 2, 14)

// NewCounter creates a Counter metrics under the global namespace.
func NewCounter(name, subsystem, help string, labels []string) *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{Namespace: Namespace, Subsystem: subsystem, Name: name, Help: help}, labels)
}

// NewOutcomeCounters creates a Counter metrics with a single label and returns
// a counter for every value, in the order of values.
func NewOutcomeCounters(name, subsystem, help, label string, values ...string) []prometheus.Counter {
	vec := NewCounter(name, subsystem, help, []string{label})
	rst := make([]prometheus.Counter, 0, len(values))
	for _, value := range values {
		rst = append(rst, vec.WithLabelValues(value))
	}
	return rst
}

// NewGauge creates a Gauge metrics under the global namespace.
func NewGauge(name, subsystem, help string, labels []string) *prometheus.GaugeVec {
	return promauto.NewGaugeVec(prometheus.GaugeOpts{Namespace: Namespace, Subsystem: subsystem, Name: name, Help: help}, labels)
}

// NewHistogramWithBuckets creates a Histogram metrics with custom buckets.
func NewHistogramWithBuckets(name, subsystem, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return promauto.NewHistogramVec(prometheus.HistogramOpts{Namespace: Namespace, Subsystem: subsystem, Name: name, Help: help, Buckets: buckets}, labels)
}
