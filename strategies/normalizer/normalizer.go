// Package normalizer implements the engine's built-in reference AMM: a
// plain constant-product pool with a fixed fee and no adaptive behavior.
// It never reads or writes storage, and exists purely as the competitive
// baseline every submitted strategy is measured against.
package normalizer

import (
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/strategy"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/pkg/mathx"
)

// Strategy is the built-in normalizer AMM.
type Strategy struct {
	FeeBps uint32
}

var _ strategy.Strategy = (*Strategy)(nil)

// New constructs a normalizer charging feeBps on every trade.
func New(feeBps uint32) *Strategy {
	return &Strategy{FeeBps: feeBps}
}

// Name identifies the normalizer in reports.
func (s *Strategy) Name() string { return "normalizer" }

// Quote returns the plain CPAMM output for the requested trade.
func (s *Strategy) Quote(ctx strategy.SwapContext) uint64 {
	if ctx.IsBuy {
		return mathx.CPAMMOutput(ctx.InputAmount, ctx.ReserveY, ctx.ReserveX, s.FeeBps)
	}
	return mathx.CPAMMOutput(ctx.InputAmount, ctx.ReserveX, ctx.ReserveY, s.FeeBps)
}

// AfterSwap is a no-op: the normalizer carries no adaptive state.
func (s *Strategy) AfterSwap(_ strategy.AfterSwapContext, storage strategy.Storage) strategy.Storage {
	return storage
}

// OnEpochBoundary is a no-op: the normalizer's fee never changes and it
// receives no capital allocation of its own.
func (s *Strategy) OnEpochBoundary(_ strategy.EpochContext, storage strategy.Storage) strategy.Storage {
	return storage
}
