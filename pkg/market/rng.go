package market

import (
	"math"
	"math/rand/v2"
)

// Stream is the single deterministic, counter-based source of randomness for
// one simulation replication. Every draw a simulation makes — the GBM normal
// shocks, the Poisson retail arrival count, the log-normal order sizes, and
// the buy/sell direction coin flips — comes from this one stream in a fixed
// call order, so a given seed reproduces a simulation bit-exactly.
type Stream struct {
	r *rand.Rand
}

// NewStream seeds a stream from a simulation seed. PCG is a counter-based
// generator: the same (seed, 0) pair always produces the same sequence,
// independent of how many goroutines exist elsewhere in the process.
func NewStream(seed uint64) *Stream {
	return &Stream{r: rand.New(rand.NewPCG(seed, 0))}
}

// Float64 returns a uniform draw in [0, 1).
func (s *Stream) Float64() float64 {
	return s.r.Float64()
}

// Uniform returns a uniform draw in [lo, hi).
func (s *Stream) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.r.Float64()
}

// Bool returns a fair coin flip.
func (s *Stream) Bool() bool {
	return s.r.Float64() < 0.5
}

// StdNormal draws one standard-normal sample via the Box-Muller transform,
// built on Float64 so the whole stream stays on the single counter-based
// generator rather than pulling in a dedicated distribution library.
func (s *Stream) StdNormal() float64 {
	u1 := s.r.Float64()
	for u1 == 0 {
		u1 = s.r.Float64()
	}
	u2 := s.r.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// Poisson draws a Poisson-distributed count via Knuth's product-of-uniforms
// algorithm. Adequate for the small arrival rates (lambda in [0.4, 1.2])
// this engine samples; a transformed-rejection method would only pay off
// for much larger lambda.
func (s *Stream) Poisson(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	l := math.Exp(-lambda)
	k := 0
	p := 1.0
	for {
		k++
		p *= s.r.Float64()
		if p <= l {
			break
		}
	}
	return k - 1
}

// LogNormal draws a log-normal sample with the given underlying-normal
// parameters: exp(mu + sigma*Z), Z ~ N(0,1).
func (s *Stream) LogNormal(mu, sigma float64) float64 {
	return math.Exp(mu + sigma*s.StdNormal())
}
