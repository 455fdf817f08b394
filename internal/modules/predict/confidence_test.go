// README: Confidence estimation tests (spread mapping and clamps).
package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateConfidence_TooFewSecondaries(t *testing.T) {
	for _, secondaries := range [][]float64{nil, {}, {15.0}} {
		confidence, rng := estimateConfidence(15.0, secondaries)
		assert.Equal(t, 0.70, confidence)
		assert.Equal(t, 12.0, rng.Min) // 15 - 20%
		assert.Equal(t, 18.0, rng.Max) // 15 + 20%
	}
}

func TestEstimateConfidence_DefaultRangeClampedToFloor(t *testing.T) {
	// 20% below a near-floor fare would undercut the minimum fare.
	_, rng := estimateConfidence(2.60, nil)
	assert.Equal(t, MinFare, rng.Min)
	assert.InDelta(t, 3.12, rng.Max, 1e-9)
}

func TestEstimateConfidence_ZeroSpreadIsMaxConfidence(t *testing.T) {
	confidence, rng := estimateConfidence(15.0, []float64{15.0, 15.0, 15.0})
	assert.Equal(t, 0.95, confidence)
	assert.Equal(t, 15.0, rng.Min)
	assert.Equal(t, 15.0, rng.Max)
}

func TestEstimateConfidence_SpreadLowersConfidence(t *testing.T) {
	// mean 15, sample stddev 5 -> rel spread 1/3 -> 1 - 2/3 = 0.333.
	confidence, rng := estimateConfidence(15.0, []float64{10.0, 15.0, 20.0})
	assert.InDelta(t, 0.333, confidence, 0.001)
	assert.InDelta(t, 15.0-1.5*5.0, rng.Min, 0.01)
	assert.InDelta(t, 15.0+1.5*5.0, rng.Max, 0.01)
}

func TestEstimateConfidence_WildSpreadFloorsAtMin(t *testing.T) {
	confidence, _ := estimateConfidence(15.0, []float64{1.0, 50.0, 2.0, 80.0})
	assert.Equal(t, minConfidence, confidence)
}

func TestEstimateConfidence_NonPositiveMeanSignalsLowConfidence(t *testing.T) {
	// Degenerate ensembles around zero must not divide by the mean.
	confidence, _ := estimateConfidence(5.0, []float64{-1.0, 1.0})
	assert.Equal(t, minConfidence, confidence)
}

func TestEstimateConfidence_AlwaysWithinUnitInterval(t *testing.T) {
	cases := [][]float64{
		nil,
		{5.0, 5.1},
		{0.0, 0.0, 0.0},
		{-10.0, -20.0},
		{100.0, 0.001},
	}
	for _, secondaries := range cases {
		confidence, rng := estimateConfidence(12.0, secondaries)
		assert.GreaterOrEqual(t, confidence, 0.0)
		assert.LessOrEqual(t, confidence, 1.0)
		assert.GreaterOrEqual(t, rng.Min, MinFare)
	}
}
