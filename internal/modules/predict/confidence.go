// README: Ensemble-spread confidence score and fare range.
package predict

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const (
	// defaultConfidence applies when the model exposes no usable ensemble.
	defaultConfidence = 0.70
	defaultMargin     = 0.20

	minConfidence = 0.10
	maxConfidence = 0.95

	rangeStdDevs = 1.5
)

// estimateConfidence derives a confidence score in [0, 1] and a fare range
// from the spread of the secondary predictions around the primary one.
//
// With fewer than two secondaries there is nothing to measure, so the fixed
// default confidence and a ±20% band apply. Otherwise the relative spread
// (sample stddev over mean) drives the score: tight ensembles approach 0.95,
// scattered ones floor at 0.10. A non-positive mean is treated as full
// spread, which avoids the division by zero and signals low confidence.
func estimateConfidence(primary float64, secondaries []float64) (float64, FareRange) {
	if len(secondaries) < 2 {
		margin := primary * defaultMargin
		return defaultConfidence, fareRangeAround(primary, margin)
	}

	mean := stat.Mean(secondaries, nil)
	stdDev := stat.StdDev(secondaries, nil)

	relSpread := 1.0
	if mean > 0 {
		relSpread = stdDev / mean
	}
	confidence := clamp(1.0-2.0*relSpread, minConfidence, maxConfidence)

	return round3(confidence), fareRangeAround(primary, rangeStdDevs*stdDev)
}

func fareRangeAround(primary, margin float64) FareRange {
	return FareRange{
		Min: round2(math.Max(MinFare, primary-margin)),
		Max: round2(primary + margin),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
