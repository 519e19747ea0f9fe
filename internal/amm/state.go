// Package amm holds the live per-pool state the simulation driver owns and
// mutates: reserves, strategy-private storage, and edge accounting.
package amm

import "github.com/Avatazjoe/Prop-AMM-Multi-Strategy-Competition-Engine/pkg/mathx"

// StorageSize is the fixed size, in bytes, of a strategy's private storage
// buffer. It persists for the lifetime of one simulation, including across
// epoch boundaries, and is exclusively mutated by the owning strategy's
// AfterSwap and OnEpochBoundary hooks.
const StorageSize = 1024

// State is the live state of one pool.
type State struct {
	ReserveX uint64
	ReserveY uint64

	// Storage is the strategy-private byte buffer. The engine never
	// interprets its contents; only the owning strategy does.
	Storage [StorageSize]byte

	CumulativeEdge  float64
	EpochEdge       float64
	EpochTradeCount uint64

	// CapitalWeight is this pool's fraction of total protocol capital.
	// Across all strategy pools (excluding the normalizer) these sum to 1.
	CapitalWeight float64

	StrategyIndex uint8
	Name          string
}

// New creates a pool with the given initial reserves and identity. Capital
// weight starts at 1.0 and is normalized by the caller across all strategy
// pools once every pool has been created.
func New(reserveX, reserveY uint64, index uint8, name string) *State {
	return &State{
		ReserveX:      reserveX,
		ReserveY:      reserveY,
		CapitalWeight: 1.0,
		StrategyIndex: index,
		Name:          name,
	}
}

// SpotPrice returns reserve_y / reserve_x, the instantaneous Y-per-X price.
func (s *State) SpotPrice() float64 {
	return float64(s.ReserveY) / float64(s.ReserveX)
}

// AccrueEdge records the profit or loss of one trade in unscaled Y units,
// given the fair price at execution time. amountX/amountY are the scaled
// amounts that moved in each direction:
//
//	isBuy  (trader bought X: pool received Y / paid X): edge = y_received - x_paid*fair
//	!isBuy (trader sold X: pool received X / paid Y):   edge = x_received*fair - y_paid
func (s *State) AccrueEdge(amountX, amountY uint64, isBuy bool, fairPrice float64) {
	ax := float64(amountX) / mathx.ScaleF
	ay := float64(amountY) / mathx.ScaleF

	var edge float64
	if isBuy {
		edge = ay - ax*fairPrice
	} else {
		edge = ax*fairPrice - ay
	}

	s.CumulativeEdge += edge
	s.EpochEdge += edge
	s.EpochTradeCount++
}

// ApplyTrade updates reserves after a trade executes, saturating instead of
// underflowing. isBuy=true means Y is the input and X is the output.
func (s *State) ApplyTrade(isBuy bool, input, output uint64) {
	if isBuy {
		s.ReserveY += input
		s.ReserveX = mathx.SaturatingSub(s.ReserveX, output)
	} else {
		s.ReserveX += input
		s.ReserveY = mathx.SaturatingSub(s.ReserveY, output)
	}
	if s.ReserveX == 0 {
		s.ReserveX = 1
	}
	if s.ReserveY == 0 {
		s.ReserveY = 1
	}
}

// Clone returns a deep copy; Storage is an array, so the copy shares no
// state with the original.
func (s *State) Clone() *State {
	c := *s
	return &c
}

// EpochSummary is the per-epoch, per-pool record produced at a capital
// rebalance, consumed both internally (to drive softmax weighting) and
// handed to strategies via the epoch-boundary hook.
type EpochSummary struct {
	EpochNumber uint32
	Edge        float64
	TradeCount  uint64
	// ArbLosses and RetailGains split Edge into its non-positive and
	// non-negative parts: a coarse attribution, not a true trade-by-trade
	// breakdown between arbitrage and retail flow.
	ArbLosses         float64
	RetailGains       float64
	RiskAdjustedScore float64
}
