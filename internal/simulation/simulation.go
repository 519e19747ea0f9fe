// Package simulation drives one complete multi-epoch simulation: N
// competing strategy pools plus a built-in normalizer share retail order
// flow and arbitrage pressure against a common GBM fair-price walk, with
// capital rebalanced between strategies at every epoch boundary.
package simulation

import (
	"math"
	"time"

	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/allocator"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/amm"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/arb"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/config"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/metrics"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/router"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/internal/strategy"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/pkg/mathx"
	"github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/pkg/market"
)

// StrategyResult is one strategy's outcome across a single replication.
type StrategyResult struct {
	Name               string
	FinalEdge          float64
	EpochSummaries     []amm.EpochSummary
	FinalCapitalWeight float64
}

// Result is the outcome of one complete simulation replication.
type Result struct {
	Strategies     []StrategyResult
	NormalizerEdge float64
	MarketParams   market.Params
}

// newNormalizer builds the normalizer strategy from the fee sampled into
// MarketParams, so it is rebuilt per replication rather than shared
// across them.
func newNormalizer(feeBps uint32) strategy.Strategy {
	return normalizerStrategy{feeBps: feeBps}
}

// normalizerStrategy is an inline, dependency-free CPAMM so the
// simulation package has no import dependency on the strategies/ tree;
// strategies/normalizer wraps the identical quote logic for standalone
// use and testing.
type normalizerStrategy struct {
	feeBps uint32
}

func (n normalizerStrategy) Name() string { return "Normalizer" }

func (n normalizerStrategy) Quote(ctx strategy.SwapContext) uint64 {
	if ctx.IsBuy {
		return mathx.CPAMMOutput(ctx.InputAmount, ctx.ReserveY, ctx.ReserveX, n.feeBps)
	}
	return mathx.CPAMMOutput(ctx.InputAmount, ctx.ReserveX, ctx.ReserveY, n.feeBps)
}

func (n normalizerStrategy) AfterSwap(_ strategy.AfterSwapContext, storage strategy.Storage) strategy.Storage {
	return storage
}

func (n normalizerStrategy) OnEpochBoundary(_ strategy.EpochContext, storage strategy.Storage) strategy.Storage {
	return storage
}

// quoteOf asks a strategy for its swap output, given the pool's current
// storage, and wraps the result in the QuoteFunc shape arb/router expect.
func quoteOf(s strategy.Strategy, pool *amm.State) func(isBuy bool, input, rx, ry uint64) uint64 {
	return func(isBuy bool, input, rx, ry uint64) uint64 {
		return s.Quote(strategy.SwapContext{IsBuy: isBuy, InputAmount: input, ReserveX: rx, ReserveY: ry, Storage: pool.Storage})
	}
}

// Run executes one complete simulation replication, deterministic given
// seed, and returns each strategy's final outcome alongside the built-in
// normalizer's.
func Run(strategies []strategy.Strategy, cfg config.SimConfig, seed uint64) Result {
	logger := config.NewLogger("simulation").With().Uint64("seed", seed).Logger()
	rng := market.NewStream(seed)

	params := market.SampleParams(rng)
	normalizer := newNormalizer(params.NormFeeBps)

	nStrat := len(strategies)
	pools := make([]*amm.State, nStrat)
	for i, s := range strategies {
		p := amm.New(cfg.BaseReserveX, cfg.BaseReserveY, uint8(i), s.Name())
		p.CapitalWeight = 1.0 / float64(nStrat)
		pools[i] = p
	}

	normReserveX := uint64(float64(cfg.BaseReserveX) * params.NormLiquidityMult)
	normReserveY := uint64(float64(cfg.BaseReserveY) * params.NormLiquidityMult)
	normPool := amm.New(normReserveX, normReserveY, uint8(nStrat), "Normalizer")

	allEpochSummaries := make([][]amm.EpochSummary, nStrat)

	fairPrice := float64(cfg.BaseReserveY) / float64(cfg.BaseReserveX)

	for step := 0; step < cfg.TotalSteps; step++ {
		stepStart := time.Now()
		fairPrice = market.GBMStep(fairPrice, params.Sigma, rng)

		epochStep := uint32(step % cfg.EpochLen)
		epochNumber := uint32(step / cfg.EpochLen)

		// Arbitrage each strategy pool.
		for idx := 0; idx < nStrat; idx++ {
			pool := pools[idx]
			if trade, found := arb.FindOptimal(pool, fairPrice, cfg.ArbProfitFloor, quoteOf(strategies[idx], pool)); found {
				applyAndNotify(strategies[idx], pool, trade.IsBuy, trade.Input, trade.Output, fairPrice, uint64(step), epochStep, epochNumber, 0, pools, normPool, nStrat+1)
			}
		}

		// Arbitrage the normalizer.
		if trade, found := arb.FindOptimal(normPool, fairPrice, cfg.ArbProfitFloor, quoteOf(normalizer, normPool)); found {
			ax, ay, buy := edgeAmounts(trade.IsBuy, trade.Input, trade.Output)
			normPool.AccrueEdge(ax, ay, buy, fairPrice)
			normPool.ApplyTrade(trade.IsBuy, trade.Input, trade.Output)
		}

		// Retail order flow, routed across strategies + normalizer.
		orders := market.GenerateRetailOrders(params, rng)
		for _, order := range orders {
			routeRetailOrder(order, strategies, pools, normalizer, normPool, fairPrice, uint64(step), epochStep, epochNumber)
		}

		// Epoch boundary: rebalance capital, notify strategies.
		atEpochEnd := (step+1)%cfg.EpochLen == 0
		lastStep := step == cfg.TotalSteps-1
		if atEpochEnd && !lastStep {
			completedEpoch := uint32((step + 1) / cfg.EpochLen) - 1
			summaries := allocator.Rebalance(pools, allocator.Config{
				Lambda:             cfg.Lambda,
				MinCapitalWeight:   cfg.MinCapitalWeight,
				SoftmaxTemperature: cfg.SoftmaxTemperature,
			}, completedEpoch)

			for idx, pool := range pools {
				epochCtx := strategy.EpochContext{
					EpochNumber:    completedEpoch,
					NewReserveX:    pool.ReserveX,
					NewReserveY:    pool.ReserveY,
					EpochEdge:      summaries[idx].Edge,
					CumulativeEdge: pool.CumulativeEdge,
					CapitalWeight:  float32(pool.CapitalWeight),
				}
				pool.Storage = strategies[idx].OnEpochBoundary(epochCtx, pool.Storage)
				metrics.RecordRebalance(pool.Name, pool.CumulativeEdge)
				allEpochSummaries[idx] = append(allEpochSummaries[idx], summaries[idx])
			}
			logger.Debug().Uint32("epoch", completedEpoch).Msg("epoch rebalanced")
		}

		metrics.StepDuration.Observe(float64(time.Since(stepStart).Microseconds()) / 1000.0)
	}

	results := make([]StrategyResult, nStrat)
	for i, pool := range pools {
		results[i] = StrategyResult{
			Name:               pool.Name,
			FinalEdge:          pool.CumulativeEdge,
			EpochSummaries:     allEpochSummaries[i],
			FinalCapitalWeight: pool.CapitalWeight,
		}
	}

	return Result{Strategies: results, NormalizerEdge: normPool.CumulativeEdge, MarketParams: params}
}

// edgeAmounts converts a trade's (isBuy, input, output) into the
// (amountX, amountY) pair AccrueEdge expects.
func edgeAmounts(isBuy bool, input, output uint64) (uint64, uint64, bool) {
	if isBuy {
		return output, input, true
	}
	return input, output, false
}

func applyAndNotify(
	s strategy.Strategy,
	pool *amm.State,
	isBuy bool,
	input, output uint64,
	fairPrice float64,
	simStep uint64,
	epochStep, epochNumber uint32,
	flowCaptured float32,
	allStrategyPools []*amm.State,
	normPool *amm.State,
	totalN int,
) {
	ax, ay, buy := edgeAmounts(isBuy, input, output)
	pool.AccrueEdge(ax, ay, buy, fairPrice)
	pool.ApplyTrade(isBuy, input, output)

	ctx := strategy.AfterSwapContext{
		IsBuy:         isBuy,
		InputAmount:   input,
		OutputAmount:  output,
		ReserveX:      pool.ReserveX,
		ReserveY:      pool.ReserveY,
		SimStep:       simStep,
		EpochStep:     epochStep,
		EpochNumber:   epochNumber,
		NStrategies:   uint8(totalN),
		StrategyIndex: pool.StrategyIndex,
		FlowCaptured:  flowCaptured,
		CapitalWeight: float32(pool.CapitalWeight),
	}
	ctx.CompetingSpotPrices = competingSpotPrices(pool, allStrategyPools, normPool)
	pool.Storage = s.AfterSwap(ctx, pool.Storage)
}

// competingSpotPrices fills the fixed 8-slot array with this pool's
// peers' spot prices, reserving the last slot for the normalizer
// unconditionally: peer strategies occupy slots [0, CompetingSlots-2] at
// most, so the normalizer's price is always visible regardless of how
// many peers are competing. Unused peer slots stay NaN.
func competingSpotPrices(self *amm.State, allStrategyPools []*amm.State, normPool *amm.State) [strategy.CompetingSlots]float32 {
	var competing [strategy.CompetingSlots]float32
	for i := range competing {
		competing[i] = float32(math.NaN())
	}
	const maxPeerSlots = strategy.CompetingSlots - 1
	slot := 0
	for _, p := range allStrategyPools {
		if p.StrategyIndex == self.StrategyIndex {
			continue
		}
		if slot >= maxPeerSlots {
			break
		}
		competing[slot] = float32(p.SpotPrice())
		slot++
	}
	competing[strategy.CompetingSlots-1] = float32(normPool.SpotPrice())
	return competing
}

func routeRetailOrder(
	order market.RetailOrder,
	strategies []strategy.Strategy,
	pools []*amm.State,
	normalizer strategy.Strategy,
	normPool *amm.State,
	fairPrice float64,
	simStep uint64,
	epochStep, epochNumber uint32,
) {
	nStrat := len(pools)
	totalN := nStrat + 1

	allPools := make([]*amm.State, 0, totalN)
	allPools = append(allPools, pools...)
	allPools = append(allPools, normPool)

	totalInput := order.SizeY
	if !order.Buy {
		totalInput = order.SizeY / fairPrice
	}

	quote := func(poolIdx int, isBuy bool, input, rx, ry uint64) uint64 {
		if poolIdx < nStrat {
			return strategies[poolIdx].Quote(strategy.SwapContext{IsBuy: isBuy, InputAmount: input, ReserveX: rx, ReserveY: ry, Storage: pools[poolIdx].Storage})
		}
		return normalizer.Quote(strategy.SwapContext{IsBuy: isBuy, InputAmount: input, ReserveX: rx, ReserveY: ry})
	}

	result := router.Route(allPools, order.Buy, totalInput, quote)
	totalInputScaled := uint64(totalInput * mathx.ScaleF)
	if totalInputScaled == 0 {
		totalInputScaled = 1
	}

	for idx, alloc := range result.Allocations {
		if alloc.Input == 0 {
			continue
		}
		flowCaptured := float32(alloc.Input) / float32(totalInputScaled)
		if flowCaptured > 1 {
			flowCaptured = 1
		}

		if idx < nStrat {
			applyAndNotify(strategies[idx], pools[idx], order.Buy, alloc.Input, alloc.Output, fairPrice, simStep, epochStep, epochNumber, flowCaptured, pools, normPool, totalN)
			continue
		}

		ax, ay, buy := edgeAmounts(order.Buy, alloc.Input, alloc.Output)
		normPool.AccrueEdge(ax, ay, buy, fairPrice)
		normPool.ApplyTrade(order.Buy, alloc.Input, alloc.Output)
	}
}
