// README: Business-rule fare validation against a deterministic reference.
package predict

import "farecast/internal/modules/features"

// NYC metered-rate constants for the reference fare.
const (
	baseFare    = 2.50
	ratePerMile = 2.50

	rushHourMultiplier     = 1.2
	nightMultiplier        = 1.3
	weekendNightMultiplier = 1.4

	// airportThresholdMiles is how close a pickup must be to an airport for
	// the surcharged per-mile rate.
	airportThresholdMiles = 2.0
	airportRateMultiplier = 1.5

	// The model may legitimately disagree with the meter, but only so far.
	plausibleLowFactor  = 0.5
	plausibleHighFactor = 2.5
)

// referenceFare computes the deterministic rule-based fare used to bound the
// model output. The time multipliers compound multiplicatively: a weekend
// night rush trip pays for all applicable conditions, not just the largest.
func referenceFare(distanceMiles float64, rec features.Record) float64 {
	rate := ratePerMile
	if nearAirport(rec) {
		rate *= airportRateMultiplier
	}

	multiplier := 1.0
	if rec[features.IsRushHour] == 1 {
		multiplier *= rushHourMultiplier
	}
	if rec[features.IsNight] == 1 {
		multiplier *= nightMultiplier
	}
	if rec[features.IsWeekend] == 1 && rec[features.IsNight] == 1 {
		multiplier *= weekendNightMultiplier
	}

	return baseFare + distanceMiles*rate*multiplier
}

func nearAirport(rec features.Record) bool {
	return rec[features.JFKPickupDist] < airportThresholdMiles ||
		rec[features.EWRPickupDist] < airportThresholdMiles ||
		rec[features.LGAPickupDist] < airportThresholdMiles
}

// clampToPlausible bounds a raw model prediction to [ref×0.5, ref×2.5].
// In-range predictions pass through unchanged, so the clamp is idempotent;
// it exists to catch physically implausible model artifacts (negative or
// near-zero fares on long trips), not to second-guess normal estimates.
func clampToPlausible(raw, distanceMiles float64, rec features.Record) float64 {
	ref := referenceFare(distanceMiles, rec)
	low := ref * plausibleLowFactor
	high := ref * plausibleHighFactor

	switch {
	case raw < low:
		return low
	case raw > high:
		return high
	default:
		return raw
	}
}
