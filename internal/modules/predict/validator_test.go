// README: Fare plausibility tests (reference fare, multipliers, clamping).
package predict

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"farecast/internal/modules/features"
)

// offPeakRecord is a quiet weekday daytime trip far from the airports.
func offPeakRecord() features.Record {
	return features.Record{
		features.IsRushHour:    0,
		features.IsNight:       0,
		features.IsWeekend:     0,
		features.JFKPickupDist: 10.0,
		features.EWRPickupDist: 12.0,
		features.LGAPickupDist: 6.0,
	}
}

func TestReferenceFare_OffPeak(t *testing.T) {
	// 2.50 base + 4mi × 2.50/mi.
	assert.InDelta(t, 12.50, referenceFare(4.0, offPeakRecord()), 1e-9)
}

func TestReferenceFare_MultipliersCompound(t *testing.T) {
	tests := []struct {
		name     string
		rush     float64
		night    float64
		weekend  float64
		wantMult float64
	}{
		{"rush hour only", 1, 0, 0, 1.2},
		{"night only", 0, 1, 0, 1.3},
		{"weekend day has no surcharge", 0, 0, 1, 1.0},
		{"rush and night", 1, 1, 0, 1.2 * 1.3},
		{"weekend night", 0, 1, 1, 1.3 * 1.4},
		{"weekend night rush", 1, 1, 1, 1.2 * 1.3 * 1.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := offPeakRecord()
			rec[features.IsRushHour] = tt.rush
			rec[features.IsNight] = tt.night
			rec[features.IsWeekend] = tt.weekend
			want := 2.50 + 4.0*2.50*tt.wantMult
			assert.InDelta(t, want, referenceFare(4.0, rec), 1e-9)
		})
	}
}

func TestReferenceFare_AirportSurcharge(t *testing.T) {
	rec := offPeakRecord()
	rec[features.JFKPickupDist] = 1.5
	// Per-mile rate rises 50% for airport pickups.
	assert.InDelta(t, 2.50+10.0*3.75, referenceFare(10.0, rec), 1e-9)

	// Exactly at the threshold does not trigger the surcharge.
	rec[features.JFKPickupDist] = airportThresholdMiles
	assert.InDelta(t, 2.50+10.0*2.50, referenceFare(10.0, rec), 1e-9)
}

func TestClampToPlausible_PassThroughIsIdempotent(t *testing.T) {
	rec := offPeakRecord()
	// Reference for 4mi is 12.50; acceptable range [6.25, 31.25].
	raw := 14.80
	once := clampToPlausible(raw, 4.0, rec)
	assert.Equal(t, raw, once)
	assert.Equal(t, once, clampToPlausible(once, 4.0, rec))
}

func TestClampToPlausible_Bounds(t *testing.T) {
	rec := offPeakRecord()

	// Below the floor: a long trip predicted nearly free.
	assert.InDelta(t, 6.25, clampToPlausible(0.40, 4.0, rec), 1e-9)
	assert.InDelta(t, 6.25, clampToPlausible(-3.0, 4.0, rec), 1e-9)

	// Above the ceiling.
	assert.InDelta(t, 31.25, clampToPlausible(95.0, 4.0, rec), 1e-9)

	// Clamped values are themselves stable under re-validation.
	low := clampToPlausible(-3.0, 4.0, rec)
	assert.Equal(t, low, clampToPlausible(low, 4.0, rec))
}
