package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// engineMetrics observes what the navigation engines do, as opposed to the
// HTTP metrics living in the rest package.
type engineMetrics struct {
	destinationsReached prometheus.Counter
	reroutesTriggered   prometheus.Counter
	reroutesFailed      prometheus.Counter
	tickDuration        prometheus.Histogram
}

func newEngineMetrics(reg prometheus.Registerer) *engineMetrics {
	m := &engineMetrics{
		destinationsReached: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mapmycampus",
			Name:      "destinations_reached_total",
			Help:      "The total number of sessions that arrived at their destination",
		}),
		reroutesTriggered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mapmycampus",
			Name:      "reroutes_triggered_total",
			Help:      "The total number of replans after a deviation or dead end",
		}),
		reroutesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mapmycampus",
			Name:      "reroutes_failed_total",
			Help:      "The total number of replans that found no route",
		}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mapmycampus",
			Name:      "tick_duration_seconds",
			Help:      "The duration of one engine tick",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}),
	}
	reg.MustRegister(m.destinationsReached, m.reroutesTriggered, m.reroutesFailed, m.tickDuration)
	return m
}
