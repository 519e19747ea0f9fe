package mathx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestISqrt(t *testing.T) {
	cases := map[uint64]uint64{
		0:   0,
		1:   1,
		4:   2,
		8:   2,
		9:   3,
		99:  9,
		100: 10,
	}
	for in, want := range cases {
		assert.Equal(t, want, ISqrt(in), "ISqrt(%d)", in)
	}
}

func TestCPAMMOutputZeroEdges(t *testing.T) {
	assert.Equal(t, uint64(0), CPAMMOutput(0, 100*Scale, 10_000*Scale, 30))
	assert.Equal(t, uint64(0), CPAMMOutput(Scale, 0, 10_000*Scale, 30))
	assert.Equal(t, uint64(0), CPAMMOutput(Scale, 100*Scale, 0, 30))
}

func TestCPAMMOutputMonotoneAndConcave(t *testing.T) {
	rx := 100 * Scale
	ry := 10_000 * Scale
	feeBps := uint32(30)
	step := Scale / 10

	outputs := make([]uint64, 50)
	for i := range outputs {
		outputs[i] = CPAMMOutput(uint64(i+1)*step, rx, ry, feeBps)
	}

	for i := 1; i < len(outputs); i++ {
		assert.GreaterOrEqualf(t, outputs[i], outputs[i-1], "not monotone at %d", i)
	}

	marginals := make([]float64, len(outputs)-1)
	for i := range marginals {
		marginals[i] = float64(outputs[i+1]-outputs[i]) / float64(step)
	}
	for i := 1; i < len(marginals); i++ {
		assert.LessOrEqualf(t, marginals[i], marginals[i-1]+1e-8, "not concave at %d", i)
	}
}

func TestCPAMMOutputNeverExceedsReserveOut(t *testing.T) {
	out := CPAMMOutput(1_000_000*Scale, Scale, 10_000*Scale, 30)
	assert.LessOrEqual(t, out, 10_000*Scale)
}

func TestWMulWDivRoundTrip(t *testing.T) {
	a := uint64(5 * Scale)
	b := BpsToWad(30)
	product := WMul(a, b)
	assert.Greater(t, product, uint64(0))
	assert.Equal(t, a, WDiv(product, b))
}

func TestClampFeeWad(t *testing.T) {
	assert.Equal(t, MaxFeeWad, ClampFeeWad(Wad))
	assert.Equal(t, uint64(0), ClampFeeWad(0))
}

func TestSaturatingSub(t *testing.T) {
	assert.Equal(t, uint64(0), SaturatingSub(5, 10))
	assert.Equal(t, uint64(5), SaturatingSub(10, 5))
}

func TestGoldenSectionMaxFindsParabolaPeak(t *testing.T) {
	f := func(x float64) float64 { return -(x-3.0)*(x-3.0) + 10.0 }
	x, fx := GoldenSectionMax(f, -10, 10, 50)
	assert.InDelta(t, 3.0, x, 1e-4)
	assert.InDelta(t, 10.0, fx, 1e-4)
}
