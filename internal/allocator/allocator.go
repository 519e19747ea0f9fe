// Package allocator implements the capital rebalancing rule applied at
// every epoch boundary: an asymmetric, downside-averse risk score per
// strategy, turned into new capital weights via a temperature-scaled
// softmax with a weight floor, then applied to pool reserves while
// conserving total Y-denominated capital and preserving each pool's spot
// price.
package allocator

import (
	"math"

	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/amm"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/pkg/mathx"
)

// Config holds the tunables governing rebalancing.
type Config struct {
	// Lambda is the risk-aversion coefficient applied to negative edges.
	Lambda float64
	// MinCapitalWeight is the weight floor SoftmaxWeights blends into
	// every strategy's weight.
	MinCapitalWeight float64
	// SoftmaxTemperature scales the softmax: higher is more uniform.
	SoftmaxTemperature float64
}

// RiskAdjustedScore penalizes negative epoch edge more than it rewards
// positive edge of the same magnitude:
//
//	score = epochEdge - lambda * max(0, -epochEdge)
func RiskAdjustedScore(epochEdge, lambda float64) float64 {
	return epochEdge - lambda*math.Max(0, -epochEdge)
}

// SoftmaxWeights converts risk-adjusted scores into capital weights via a
// numerically stable, temperature-scaled softmax. When minWeight > 0 and
// n*minWeight < 1, each weight becomes minWeight + (1 - n*minWeight)*w,
// which keeps every weight at or above minWeight; otherwise the raw
// softmax weights are kept. The result is renormalized to sum to 1.
func SoftmaxWeights(scores []float64, temperature, minWeight float64) []float64 {
	n := len(scores)
	if n == 0 {
		return nil
	}

	maxScore, minScore := math.Inf(-1), math.Inf(1)
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
		if s < minScore {
			minScore = s
		}
	}
	spreadScale := math.Max((maxScore-minScore)/40.0, 1.0)

	exps := make([]float64, n)
	sumExp := 0.0
	for i, s := range scores {
		exps[i] = math.Exp((s - maxScore) / (temperature * spreadScale))
		sumExp += exps[i]
	}

	weights := make([]float64, n)
	for i, e := range exps {
		weights[i] = e / sumExp
	}

	floorTotal := minWeight * float64(n)
	if minWeight > 0 && floorTotal < 1.0 {
		remaining := 1.0 - floorTotal
		for i, w := range weights {
			weights[i] = minWeight + remaining*w
		}
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}

// Rebalance gathers each pool's epoch performance, derives new capital
// weights, and scales pool reserves to reflect them while preserving
// each pool's spot price and conserving total Y-denominated capital. It
// resets every pool's epoch accumulators and returns one summary per
// pool, in the same order as pools.
func Rebalance(pools []*amm.State, cfg Config, epochNumber uint32) []amm.EpochSummary {
	n := len(pools)
	summaries := make([]amm.EpochSummary, n)
	scores := make([]float64, n)
	for i, p := range pools {
		score := RiskAdjustedScore(p.EpochEdge, cfg.Lambda)
		summaries[i] = amm.EpochSummary{
			EpochNumber:       epochNumber,
			Edge:              p.EpochEdge,
			TradeCount:        p.EpochTradeCount,
			ArbLosses:         math.Min(0, p.EpochEdge),
			RetailGains:       math.Max(0, p.EpochEdge),
			RiskAdjustedScore: score,
		}
		scores[i] = score
	}

	newWeights := SoftmaxWeights(scores, cfg.SoftmaxTemperature, cfg.MinCapitalWeight)

	// Total Y-denominated capital: 2*reserve_y per pool, since at fair
	// price the X and Y sides hold equal value.
	var totalCapitalY float64
	for _, p := range pools {
		totalCapitalY += float64(p.ReserveY) * 2
	}

	for i, p := range pools {
		targetCapitalY := totalCapitalY * newWeights[i]
		newReserveY := uint64(math.Max(targetCapitalY/2, mathx.ScaleF))

		spot := p.SpotPrice()
		newReserveX := uint64(math.Max(float64(newReserveY)/spot, 1.0))

		p.ReserveX = newReserveX
		p.ReserveY = newReserveY
		p.CapitalWeight = newWeights[i]
		p.EpochEdge = 0
		p.EpochTradeCount = 0
	}

	return summaries
}
