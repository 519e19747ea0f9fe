// Package strategy defines the capability surface every competing AMM
// strategy implements, and the contexts the simulation driver hands it at
// each of its three call sites: quoting, post-trade notification, and
// capital epoch boundaries.
package strategy

const (
	// StorageSize is the size, in bytes, of a strategy's private storage.
	StorageSize = 1024
	// CompetingSlots is the number of competing-spot-price slots exposed
	// to a strategy in its AfterSwap context.
	CompetingSlots = 8
)

// Storage is a strategy's persistent byte buffer. It survives for the
// whole simulation, including across epoch boundaries, and only the
// owning strategy interprets its contents.
type Storage = [StorageSize]byte

// SwapContext is passed to Quote for every incoming order, real or
// hypothetical (arbitrage probes reuse the same call).
type SwapContext struct {
	// IsBuy is true when Y is the input (the trader is buying X).
	IsBuy       bool
	InputAmount uint64
	ReserveX    uint64
	ReserveY    uint64
	// Storage is a read-only view; Quote never mutates it.
	Storage Storage
}

// SpotPrice returns reserve_y / reserve_x at quote time.
func (c SwapContext) SpotPrice() float64 {
	return float64(c.ReserveY) / float64(c.ReserveX)
}

// AfterSwapContext is delivered once a trade has actually executed
// against this pool, carrying the competitive context a strategy needs to
// adapt: where it sits relative to its peers and how much flow it won.
type AfterSwapContext struct {
	IsBuy        bool
	InputAmount  uint64
	OutputAmount uint64
	// ReserveX/ReserveY are the pool's reserves after the trade.
	ReserveX uint64
	ReserveY uint64
	SimStep  uint64

	EpochStep     uint32
	EpochNumber   uint32
	NStrategies   uint8
	StrategyIndex uint8

	// FlowCaptured is the fraction of the originating retail order that
	// was routed to this pool (0 for pure arbitrage fills).
	FlowCaptured  float32
	CapitalWeight float32

	// CompetingSpotPrices holds the spot prices of up to
	// CompetingSlots-1 peer strategy pools, in pool-index order, and the
	// normalizer's spot price in the last slot; unused slots are NaN.
	CompetingSpotPrices [CompetingSlots]float32
}

// SpotPrice returns the pool's post-trade spot price.
func (c AfterSwapContext) SpotPrice() float64 {
	return float64(c.ReserveY) / float64(c.ReserveX)
}

// ImpliedEffectiveFee estimates the fee actually realized by this trade
// from reserves and amounts alone: effective_fee ≈ 1 - (out*r_in)/(in*r_out).
func (c AfterSwapContext) ImpliedEffectiveFee() float64 {
	var inF, outF, ri, ro float64
	if c.IsBuy {
		inF, outF, ri, ro = float64(c.InputAmount), float64(c.OutputAmount), float64(c.ReserveY), float64(c.ReserveX)
	} else {
		inF, outF, ri, ro = float64(c.InputAmount), float64(c.OutputAmount), float64(c.ReserveX), float64(c.ReserveY)
	}
	if inF == 0 || ro == 0 {
		return 0
	}
	eff := outF * ri / (inF * ro)
	if v := 1 - eff; v > 0 {
		return v
	}
	return 0
}

// EpochContext is delivered once per epoch transition, announcing the
// strategy's freshly rebalanced capital allocation.
type EpochContext struct {
	EpochNumber    uint32
	NewReserveX    uint64
	NewReserveY    uint64
	EpochEdge      float64
	CumulativeEdge float64
	CapitalWeight  float32
}

// Strategy is the capability surface a competing AMM implements. Engine
// code only ever dispatches through this interface; how a concrete
// strategy is wired up (plain Go, or via the wire.Adapter byte protocol)
// is invisible past this boundary.
type Strategy interface {
	// Name identifies the strategy in reports and logs.
	Name() string
	// Quote computes the output amount for a prospective trade. It must
	// not mutate storage; any state change happens in AfterSwap.
	Quote(ctx SwapContext) uint64
	// AfterSwap is invoked once a trade has executed against this pool,
	// with the engine holding the authoritative post-trade storage. The
	// returned storage replaces the pool's stored buffer.
	AfterSwap(ctx AfterSwapContext, storage Storage) Storage
	// OnEpochBoundary is invoked once per epoch transition, after capital
	// has been rebalanced.
	OnEpochBoundary(ctx EpochContext, storage Storage) Storage
}
