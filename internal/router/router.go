// Package router implements the equimarginal-principle N-way order
// router: a retail order is split across every competing pool so that,
// at the optimum, each pool's marginal output per unit of input is equal
// — the shadow price lambda* found by nested bisection.
package router

import (
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/amm"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/pkg/mathx"
)

// QuoteFunc computes the scaled output of a trade against pool i:
// (poolIndex, isBuy, inputScaled, reserveX, reserveY) -> outputScaled.
type QuoteFunc func(poolIndex int, isBuy bool, input, reserveX, reserveY uint64) uint64

// Allocation is one pool's share of a routed order.
type Allocation struct {
	Input  uint64
	Output uint64
}

// Result is the outcome of routing one retail order across all pools.
type Result struct {
	Allocations []Allocation
	TotalOutput uint64
}

const (
	maxDrainFraction   = 0.9
	lambdaIters        = 80
	allocationIters    = 60
	lambdaRelTol       = 1e-6
	allocationRelTol   = 1e-6
	marginalDeltaScale = 0.001
)

// Route splits totalInput (unscaled, in Y if isBuy else X) across pools
// to equalize marginal output, per the equimarginal principle.
func Route(pools []*amm.State, isBuy bool, totalInput float64, quote QuoteFunc) Result {
	n := len(pools)
	if n == 0 {
		return Result{}
	}
	if n == 1 {
		inputScaled := uint64(totalInput * mathx.ScaleF)
		out := quote(0, isBuy, inputScaled, pools[0].ReserveX, pools[0].ReserveY)
		return Result{Allocations: []Allocation{{Input: inputScaled, Output: out}}, TotalOutput: out}
	}

	marginal := func(i int, x float64) float64 {
		delta := x*marginalDeltaScale + 1.0/mathx.ScaleF
		o1 := float64(quote(i, isBuy, uint64(x*mathx.ScaleF), pools[i].ReserveX, pools[i].ReserveY)) / mathx.ScaleF
		o2 := float64(quote(i, isBuy, uint64((x+delta)*mathx.ScaleF), pools[i].ReserveX, pools[i].ReserveY)) / mathx.ScaleF
		return (o2 - o1) / delta
	}

	maxInputFor := func(i int) float64 {
		if isBuy {
			return float64(pools[i].ReserveY) * maxDrainFraction / mathx.ScaleF
		}
		return float64(pools[i].ReserveX) * maxDrainFraction / mathx.ScaleF
	}

	// allocationAtShadow finds x_i(lambda): the largest x such that
	// marginal_i(x) >= lambda, via bisection (marginal is decreasing).
	allocationAtShadow := func(i int, lambda float64) float64 {
		maxIn := maxInputFor(i)
		if marginal(i, 1.0/mathx.ScaleF) < lambda {
			return 0
		}
		if marginal(i, maxIn) >= lambda {
			return maxIn
		}
		lo, hi := 0.0, maxIn
		for iter := 0; iter < allocationIters; iter++ {
			mid := 0.5 * (lo + hi)
			if marginal(i, mid) >= lambda {
				lo = mid
			} else {
				hi = mid
			}
			if (hi-lo)/(hi+lo+1e-12) < allocationRelTol {
				break
			}
		}
		return 0.5 * (lo + hi)
	}

	lambdaMax := 0.0
	for i := 0; i < n; i++ {
		if m := marginal(i, 1.0/mathx.ScaleF); m > lambdaMax {
			lambdaMax = m
		}
	}

	loLambda, hiLambda := 0.0, lambdaMax*1.5
	for iter := 0; iter < lambdaIters; iter++ {
		mid := 0.5 * (loLambda + hiLambda)
		total := 0.0
		for i := 0; i < n; i++ {
			total += allocationAtShadow(i, mid)
		}
		if total > totalInput {
			hiLambda = mid
		} else {
			loLambda = mid
		}
		if (hiLambda-loLambda)/(hiLambda+loLambda+1e-12) < lambdaRelTol {
			break
		}
	}
	lambdaStar := 0.5 * (loLambda + hiLambda)

	rawAllocs := make([]float64, n)
	rawSum := 0.0
	for i := 0; i < n; i++ {
		rawAllocs[i] = allocationAtShadow(i, lambdaStar)
		rawSum += rawAllocs[i]
	}

	scale := 0.0
	if rawSum > 1e-12 {
		scale = totalInput / rawSum
	}

	allocations := make([]Allocation, n)
	var totalOutput uint64
	for i := 0; i < n; i++ {
		inputF := rawAllocs[i] * scale
		inputScaled := uint64(inputF * mathx.ScaleF)
		if inputScaled == 0 {
			continue
		}
		out := quote(i, isBuy, inputScaled, pools[i].ReserveX, pools[i].ReserveY)
		allocations[i] = Allocation{Input: inputScaled, Output: out}
		totalOutput += out
	}

	return Result{Allocations: allocations, TotalOutput: totalOutput}
}
