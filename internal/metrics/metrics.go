// Package metrics exposes the engine's Prometheus instrumentation. It has
// no HTTP surface: no package in this module, cmd/ammsim included, wires
// a promhttp.Handler; the engine just records observations in the default
// registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StepDuration tracks wall-clock time per simulation step.
	StepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ammsim_step_duration_ms",
		Help:    "Per-step simulation duration in milliseconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
	})

	// StrategyEdge tracks each strategy's cumulative edge as of its most
	// recent epoch rebalance, within the currently running replication.
	StrategyEdge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "ammsim_strategy_cumulative_edge",
		Help: "Cumulative edge (unscaled Y) for a strategy in the current replication",
	}, []string{"strategy"})

	// ReplicationFailures counts replications that panicked or otherwise
	// could not complete and were recorded as failed.
	ReplicationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ammsim_replication_failures_total",
		Help: "Total number of replications that failed to complete",
	})

	// RebalanceCount counts capital rebalance events across all
	// replications and strategies.
	RebalanceCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ammsim_rebalance_total",
		Help: "Total number of epoch capital rebalances performed",
	})

	// ReplicationDuration tracks wall-clock time for a full replication.
	ReplicationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ammsim_replication_duration_seconds",
		Help:    "Full replication duration in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})
)

// RecordRebalance increments the rebalance counter and, for each
// strategy's latest cumulative edge, updates its gauge.
func RecordRebalance(strategyName string, cumulativeEdge float64) {
	RebalanceCount.Inc()
	StrategyEdge.WithLabelValues(strategyName).Set(cumulativeEdge)
}

// RecordReplicationFailure increments the replication failure counter.
func RecordReplicationFailure() {
	ReplicationFailures.Inc()
}
