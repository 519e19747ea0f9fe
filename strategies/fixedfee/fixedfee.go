// Package fixedfee implements the simplest possible competing strategy: a
// plain constant-product pool charging one constant fee, with no
// adaptive behavior at all. It is the Go-native strategy interface
// equivalent of a submitted binary that only implements
// __prop_amm_compute_swap and leaves after-swap/epoch-boundary as no-ops.
package fixedfee

import (
	"fmt"

	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/strategy"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/pkg/mathx"
)

// DefaultFeeBps is the fee charged by the reference submission this
// strategy is modeled on: 70 basis points, flat, never adjusted.
const DefaultFeeBps uint32 = 70

// Strategy quotes a plain CPAMM price at a constant fee and never
// touches its storage buffer.
type Strategy struct {
	FeeBps uint32
}

var _ strategy.Strategy = (*Strategy)(nil)

// New constructs a fixed-fee strategy charging feeBps on every trade.
func New(feeBps uint32) *Strategy {
	return &Strategy{FeeBps: feeBps}
}

// Name identifies the strategy in reports.
func (s *Strategy) Name() string {
	return fmt.Sprintf("fixed_%dbps", s.FeeBps)
}

// Quote returns the CPAMM output for the requested trade direction.
func (s *Strategy) Quote(ctx strategy.SwapContext) uint64 {
	if ctx.IsBuy {
		return mathx.CPAMMOutput(ctx.InputAmount, ctx.ReserveY, ctx.ReserveX, s.FeeBps)
	}
	return mathx.CPAMMOutput(ctx.InputAmount, ctx.ReserveX, ctx.ReserveY, s.FeeBps)
}

// AfterSwap is a no-op: this strategy carries no adaptive state.
func (s *Strategy) AfterSwap(_ strategy.AfterSwapContext, storage strategy.Storage) strategy.Storage {
	return storage
}

// OnEpochBoundary is a no-op: the fee never changes.
func (s *Strategy) OnEpochBoundary(_ strategy.EpochContext, storage strategy.Storage) strategy.Storage {
	return storage
}
