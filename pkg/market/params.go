package market

// Params holds the market parameters sampled once, at the start of a
// simulation, from uniform priors. They stay fixed for the life of the
// replication.
type Params struct {
	// Sigma is the per-step GBM volatility.
	Sigma float64
	// Lambda is the retail Poisson arrival rate (orders per step).
	Lambda float64
	// OrderSizeMean is the log-normal mean retail order size, in
	// unscaled Y-denomination.
	OrderSizeMean float64
	// NormFeeBps is the normalizer AMM's fee, in basis points.
	NormFeeBps uint32
	// NormLiquidityMult scales the normalizer's initial reserves
	// relative to the strategies' base reserves.
	NormLiquidityMult float64
}

// SampleParams draws fresh market parameters from their uniform priors.
func SampleParams(rng *Stream) Params {
	return Params{
		Sigma:             rng.Uniform(0.0001, 0.0070),
		Lambda:            rng.Uniform(0.4, 1.2),
		OrderSizeMean:     rng.Uniform(12.0, 28.0),
		NormFeeBps:        uint32(rng.Uniform(30, 80)),
		NormLiquidityMult: rng.Uniform(0.4, 2.0),
	}
}
