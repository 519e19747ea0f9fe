// Package replication runs many independent simulation replications in
// parallel and aggregates each strategy's outcome across them. Unlike the
// teacher's hand-rolled semaphore-and-WaitGroup grid search, replications
// here share no mutable state — each gets its own RNG stream derived from
// its index — so an errgroup with a capacity limit is all the
// coordination needed.
package replication

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/config"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/metrics"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/simulation"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/strategy"
)

// StrategyFactory builds a fresh set of strategy instances for one
// replication. Strategies that carry Go-level mutable fields (beyond the
// engine-owned Storage buffer) must not be shared across replications
// that run concurrently; factories exist so each goroutine gets its own.
type StrategyFactory func() []strategy.Strategy

// AggregatedResult summarizes one strategy's performance across every
// replication in a run.
type AggregatedResult struct {
	Name                   string
	MeanEdge               float64
	StdEdge                float64
	MeanFinalCapitalWeight float64
	EdgeVsNormalizer       float64
	Sharpe                 float64
}

// Run executes cfg.Replications independent simulations, seeded
// sequentially from cfg.Seed, bounded by cfg.MaxParallel concurrent
// workers (0 meaning errgroup's own default of unlimited — callers
// wanting a cap should set MaxParallel explicitly). A replication that
// panics is recovered, logged, counted in ReplicationFailures, and
// excluded from aggregation rather than aborting the whole run.
func Run(ctx context.Context, newStrategies StrategyFactory, cfg config.SimConfig) ([]AggregatedResult, error) {
	runID := uuid.New()
	logger := config.NewLogger("replication").With().Str("run_id", runID.String()).Logger()
	logger.Info().Int("replications", cfg.Replications).Msg("starting replication batch")

	results := make([]simulation.Result, cfg.Replications)
	ok := make([]bool, cfg.Replications)

	g, gctx := errgroup.WithContext(ctx)
	if cfg.MaxParallel > 0 {
		g.SetLimit(cfg.MaxParallel)
	}

	for i := 0; i < cfg.Replications; i++ {
		i := i
		replicationID := uuid.New()
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			start := time.Now()
			res, succeeded := runOneSafely(newStrategies(), cfg, cfg.Seed+uint64(i))
			metrics.ReplicationDuration.Observe(time.Since(start).Seconds())
			if !succeeded {
				metrics.RecordReplicationFailure()
				logger.Warn().Str("replication_id", replicationID.String()).Int("index", i).
					Msg("replication failed, excluded from aggregation")
				return nil
			}
			results[i] = res
			ok[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("replication run %s: %w", runID, err)
	}

	completed := make([]simulation.Result, 0, cfg.Replications)
	for i, succeeded := range ok {
		if succeeded {
			completed = append(completed, results[i])
		}
	}

	return Aggregate(completed), nil
}

// runOneSafely runs a single replication, recovering from any panic a
// strategy implementation triggers and reporting it as a failed
// replication instead of crashing the run.
func runOneSafely(strategies []strategy.Strategy, cfg config.SimConfig, seed uint64) (res simulation.Result, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Uint64("seed", seed).Msg("replication panicked")
			ok = false
		}
	}()
	return simulation.Run(strategies, cfg, seed), true
}

// Aggregate computes mean/std/Sharpe/edge-vs-normalizer per strategy
// across a set of completed replications.
func Aggregate(sims []simulation.Result) []AggregatedResult {
	if len(sims) == 0 {
		return nil
	}
	nStrat := len(sims[0].Strategies)
	n := float64(len(sims))

	out := make([]AggregatedResult, nStrat)
	for i := 0; i < nStrat; i++ {
		var sumEdge, sumWeight, sumNorm float64
		edges := make([]float64, len(sims))
		for j, s := range sims {
			edges[j] = s.Strategies[i].FinalEdge
			sumEdge += s.Strategies[i].FinalEdge
			sumWeight += s.Strategies[i].FinalCapitalWeight
			sumNorm += s.NormalizerEdge
		}
		mean := sumEdge / n
		var variance float64
		for _, e := range edges {
			variance += (e - mean) * (e - mean)
		}
		variance /= n
		std := math.Sqrt(variance)
		meanNorm := sumNorm / n
		meanWeight := sumWeight / n

		sharpe := 0.0
		if std > 0 {
			sharpe = mean / std
		}

		out[i] = AggregatedResult{
			Name:                   sims[0].Strategies[i].Name,
			MeanEdge:               mean,
			StdEdge:                std,
			MeanFinalCapitalWeight: meanWeight,
			EdgeVsNormalizer:       mean - meanNorm,
			Sharpe:                 sharpe,
		}
	}
	return out
}
