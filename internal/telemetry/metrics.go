// Package telemetry exposes the process-wide Prometheus metrics for a
// paramsearchd run: cycle counts, task-body failures, the most recent
// cycle's winning objective, active constraints, and cycle durations.
// Metrics are served over HTTP via Handler.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "paramsearch"

// Metrics holds the Prometheus collectors a runner reports into during a
// search. Build one with NewMetrics and pass it down to the runner loop.
type Metrics struct {
	CyclesTotal          *prometheus.CounterVec
	TaskFailuresTotal    prometheus.Counter
	BestObjective        prometheus.Gauge
	ActiveConstraints    prometheus.Gauge
	CycleDurationSeconds prometheus.Histogram
}

// NewMetrics registers a fresh Metrics against reg. Passing
// prometheus.NewRegistry() keeps a test's metrics isolated from the
// package-level default registry; passing prometheus.DefaultRegisterer
// wires them into the process's default /metrics surface.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		CyclesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cycles_total",
				Help:      "Total number of push/pull cycles completed, by task",
			},
			[]string{"task"},
		),
		TaskFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "task_failures_total",
				Help:      "Total number of task-body or evaluation failures across all cycles",
			},
		),
		BestObjective: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "best_objective",
				Help:      "Objective value of the most recent cycle's winning point",
			},
		),
		ActiveConstraints: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "active_constraints",
				Help:      "Number of constraint states still active in the running task's specification",
			},
		),
		CycleDurationSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "cycle_duration_seconds",
				Help:      "Wall-clock duration of a push/pull cycle",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
}

// Handler returns the HTTP handler serving reg's metrics in the
// Prometheus text exposition format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
