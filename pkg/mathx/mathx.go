// Package mathx provides the fixed-point and search primitives the engine
// builds on: integer square root, WAD-scaled fixed-point helpers, the CPAMM
// output formula, and a golden-section maximiser over a unimodal function.
package mathx

import "math/big"

// Scale is the fixed-point scale for token amounts: 1 unit = 1e9.
const Scale uint64 = 1_000_000_000

// ScaleF is Scale as a float64, used throughout the market/routing code.
const ScaleF float64 = 1_000_000_000.0

// Wad is the fixed-point scale used for fee arithmetic (1e18).
const Wad uint64 = 1_000_000_000_000_000_000

// MaxFeeWad caps any WAD-denominated fee at 10%.
const MaxFeeWad uint64 = Wad / 10

// ISqrt returns the integer square root of x via Newton's method.
func ISqrt(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	z := x
	y := (x + 1) / 2
	for y < z {
		z = y
		y = (y + x/y) / 2
	}
	return z
}

// WMul computes (a*b)/Wad with 128-bit intermediate precision.
func WMul(a, b uint64) uint64 {
	prod := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
	prod.Div(prod, new(big.Int).SetUint64(Wad))
	return prod.Uint64()
}

// WDiv computes (a*Wad)/b with 128-bit intermediate precision. Returns 0 when b is 0.
func WDiv(a, b uint64) uint64 {
	if b == 0 {
		return 0
	}
	num := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(Wad))
	num.Div(num, new(big.Int).SetUint64(b))
	return num.Uint64()
}

// BpsToWad converts basis points (1/10000) into a WAD-scaled fraction.
func BpsToWad(bps uint64) uint64 {
	return bps * (Wad / 10_000)
}

// ClampFeeWad clamps a WAD-denominated fee to [0, MaxFeeWad].
func ClampFeeWad(fee uint64) uint64 {
	if fee > MaxFeeWad {
		return MaxFeeWad
	}
	return fee
}

var (
	big10000 = big.NewInt(10_000)
)

// CPAMMOutput computes the constant-product output for `input` against
// reserves (reserveIn, reserveOut) with a fee expressed in basis points.
//
//	input_eff = input * (10000 - feeBps) / 10000
//	output    = reserveOut * input_eff / (reserveIn + input_eff)
//
// All intermediate arithmetic uses a big.Int to guard against overflow
// beyond 64 bits; zero reserves or zero input yield zero.
func CPAMMOutput(input, reserveIn, reserveOut uint64, feeBps uint32) uint64 {
	if input == 0 || reserveIn == 0 || reserveOut == 0 {
		return 0
	}
	gammaNum := new(big.Int).SetUint64(uint64(10_000 - feeBps))
	inputEff := new(big.Int).Mul(new(big.Int).SetUint64(input), gammaNum)
	inputEff.Div(inputEff, big10000)

	denom := new(big.Int).Add(new(big.Int).SetUint64(reserveIn), inputEff)
	if denom.Sign() == 0 {
		return 0
	}
	out := new(big.Int).Mul(new(big.Int).SetUint64(reserveOut), inputEff)
	out.Div(out, denom)
	return out.Uint64()
}

// CPAMMOutputWad is the WAD-fee variant of CPAMMOutput, matching the
// strategy-author SDK's fixed-point convention (fee expressed as a WAD
// fraction rather than basis points).
func CPAMMOutputWad(input, reserveIn, reserveOut, feeWad uint64) uint64 {
	if input == 0 || reserveIn == 0 || reserveOut == 0 {
		return 0
	}
	gamma := new(big.Int).SetUint64(Wad - ClampFeeWad(feeWad))
	inputEff := new(big.Int).Mul(new(big.Int).SetUint64(input), gamma)
	inputEff.Div(inputEff, new(big.Int).SetUint64(Wad))

	denom := new(big.Int).Add(new(big.Int).SetUint64(reserveIn), inputEff)
	if denom.Sign() == 0 {
		return 0
	}
	out := new(big.Int).Mul(new(big.Int).SetUint64(reserveOut), inputEff)
	out.Div(out, denom)
	return out.Uint64()
}

// SaturatingSub returns a-b, clamped at 0 instead of underflowing.
func SaturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

const (
	goldenPhi     = 1.618033988749895
	goldenResPhi  = 2.0 - goldenPhi
	goldenRelTol  = 1e-8
	defaultKEvals = 50
)

// GoldenSectionMax finds the maximiser of a unimodal function f on [lo, hi]
// using at most iters evaluations of f (defaultKEvals when iters <= 0; never
// fewer than three: two initial probes and the returned midpoint), stopping
// early once the bracket's relative width falls below 1e-8. Returns the
// bracket midpoint and its function value.
func GoldenSectionMax(f func(float64) float64, lo, hi float64, iters int) (float64, float64) {
	if iters <= 0 {
		iters = defaultKEvals
	}
	a, b := lo, hi
	c := b - goldenResPhi*(b-a)
	d := a + goldenResPhi*(b-a)
	fc := f(c)
	fd := f(d)

	// Two probes above and the final midpoint evaluation count against
	// iters, leaving one evaluation per loop iteration for the rest.
	for i := 0; i+3 < iters; i++ {
		if fc < fd {
			a = c
			c = d
			fc = fd
			d = a + goldenResPhi*(b-a)
			fd = f(d)
		} else {
			b = d
			d = c
			fd = fc
			c = b - goldenResPhi*(b-a)
			fc = f(c)
		}
		if (b-a)/(b+a+1e-14) < goldenRelTol {
			break
		}
	}

	x := 0.5 * (a + b)
	return x, f(x)
}
