// Package arb finds and prices the optimal arbitrage trade against a
// single pool once its spot price has drifted from the simulation's fair
// price, using a golden-section search over the (concave) profit curve.
package arb

import (
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/amm"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/pkg/mathx"
)

// QuoteFunc computes the scaled output of a trade against a pool:
// (isBuy, inputScaled, reserveX, reserveY) -> outputScaled.
type QuoteFunc func(isBuy bool, input, reserveX, reserveY uint64) uint64

// Trade is a priced arbitrage opportunity against one pool.
type Trade struct {
	IsBuy  bool
	Input  uint64
	Output uint64
	Profit float64
}

// maxDrainFraction caps an arb trade at 90% of the relevant reserve so a
// single fill can never fully drain a pool.
const maxDrainFraction = 0.9

// FindOptimal searches for the profit-maximizing arbitrage trade against
// pool at the given fair price. It returns (trade, false) when no trade
// clears profitFloor (expressed in unscaled Y).
func FindOptimal(pool *amm.State, fairPrice, profitFloor float64, quote QuoteFunc) (Trade, bool) {
	rx := float64(pool.ReserveX)
	ry := float64(pool.ReserveY)
	spot := ry / rx

	// spot = Y per X. spot > fair means the pool overpays in Y for X, so
	// the arbitrageur buys X from the pool; spot < fair means the
	// opposite.
	isBuyX := spot > fairPrice

	// maxInput is in unscaled units, matching profitFn's argument.
	var maxInput float64
	if isBuyX {
		maxInput = ry * maxDrainFraction / mathx.ScaleF
	} else {
		maxInput = rx * maxDrainFraction / mathx.ScaleF
	}

	profitFn := func(inputF float64) float64 {
		inputScaled := uint64(inputF * mathx.ScaleF)
		if inputScaled == 0 {
			return 0
		}
		outputScaled := quote(isBuyX, inputScaled, pool.ReserveX, pool.ReserveY)
		outputF := float64(outputScaled) / mathx.ScaleF
		if isBuyX {
			return outputF*fairPrice - inputF
		}
		return outputF - inputF*fairPrice
	}

	bestInput, bestProfit := mathx.GoldenSectionMax(profitFn, 0, maxInput, 50)
	if bestProfit < profitFloor || bestInput < 1.0/mathx.ScaleF {
		return Trade{}, false
	}

	inputScaled := uint64(bestInput * mathx.ScaleF)
	outputScaled := quote(isBuyX, inputScaled, pool.ReserveX, pool.ReserveY)
	return Trade{IsBuy: isBuyX, Input: inputScaled, Output: outputScaled, Profit: bestProfit}, true
}
