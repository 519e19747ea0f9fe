package market

import "math"

// sigmaLn is the fixed log-normal shape parameter for retail order sizes.
// Chosen so that, combined with muLn below, E[size] = params.OrderSizeMean.
const sigmaLn = 1.2

// RetailOrder is one synthetic retail trade: a direction and a
// Y-denominated, unscaled size.
type RetailOrder struct {
	// Buy is true for "buy X" (Y is the input side), false for "sell X".
	Buy   bool
	SizeY float64
}

// GenerateRetailOrders draws the retail order flow for one simulation step:
// a Poisson(lambda) count of orders, each with an independent log-normal
// size and a uniformly random direction.
func GenerateRetailOrders(p Params, rng *Stream) []RetailOrder {
	count := rng.Poisson(p.Lambda)
	if count == 0 {
		return nil
	}

	// E[X] = exp(mu + sigma^2/2)  =>  mu = ln(E[X]) - sigma^2/2
	muLn := math.Log(p.OrderSizeMean) - 0.5*sigmaLn*sigmaLn

	orders := make([]RetailOrder, count)
	for i := range orders {
		orders[i] = RetailOrder{
			Buy:   rng.Bool(),
			SizeY: rng.LogNormal(muLn, sigmaLn),
		}
	}
	return orders
}
