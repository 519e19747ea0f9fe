package market

import "math"

// GBMStep advances a fair price by one geometric-Brownian-motion step:
//
//	S(t+1) = S(t) * exp(-sigma^2/2 + sigma*Z),  Z ~ N(0,1)
//
// sigma is the per-step volatility. The -sigma^2/2 drift term makes
// E[S(t+1)] = S(t), so the expected price has no systematic bias.
func GBMStep(price, sigma float64, rng *Stream) float64 {
	z := rng.StdNormal()
	return price * math.Exp(-0.5*sigma*sigma+sigma*z)
}
