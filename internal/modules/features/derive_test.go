// README: Feature derivation tests (temporal flags, distances, log variants).
package features

import (
	"math"
	"testing"
	"time"

	"farecast/internal/types"
)

var (
	midtownPickup  = types.Point{Lat: 40.748, Lng: -73.984}
	midtownDropoff = types.Point{Lat: 40.764, Lng: -73.973}
)

func deriveAt(t *testing.T, at time.Time) Record {
	t.Helper()
	return Derive(Input{
		Pickup:     midtownPickup,
		Dropoff:    midtownDropoff,
		Passengers: 1,
		At:         at,
	}, LogSet{Distance: true})
}

func TestDerive_WeekdayNoonScenario(t *testing.T) {
	// Tuesday 2025-06-10 12:00: not weekend, not rush hour, not night.
	at := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	rec := deriveAt(t, at)

	if rec[Distance] < 1.1 || rec[Distance] > 1.3 {
		t.Errorf("distance = %f, want within [1.1, 1.3]", rec[Distance])
	}
	for _, flag := range []string{IsWeekend, IsRushHour, IsNight} {
		if rec[flag] != 0 {
			t.Errorf("%s = %f, want 0", flag, rec[flag])
		}
	}
	if rec[Weekday] != 1 {
		t.Errorf("weekday = %f, want 1 (Tuesday, Monday=0)", rec[Weekday])
	}
	if rec[Hour] != 12 || rec[Day] != 10 || rec[Month] != 6 || rec[Year] != 2025 {
		t.Errorf("temporal fields = %f/%f/%f/%f", rec[Hour], rec[Day], rec[Month], rec[Year])
	}
	if rec[IsManhattanPickup] != 1 || rec[IsManhattanDropoff] != 1 {
		t.Errorf("midtown trip should have both urban-core flags set")
	}
}

func TestDerive_FlagBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		hour     int
		rushHour float64
		night    float64
	}{
		{"hour 5 is still night", 5, 0, 1},
		{"hour 6 is not night", 6, 0, 0},
		{"hour 7 starts morning rush", 7, 1, 0},
		{"hour 9 is still rush", 9, 1, 0},
		{"hour 10 is not rush", 10, 0, 0},
		{"hour 17 starts evening rush", 17, 1, 0},
		{"hour 19 is still rush", 19, 1, 0},
		{"hour 20 is not rush", 20, 0, 0},
		{"hour 21 is neither", 21, 0, 0},
		{"hour 22 starts night", 22, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A Wednesday, so the weekend flag stays out of the way.
			at := time.Date(2025, 6, 11, tt.hour, 30, 0, 0, time.UTC)
			rec := deriveAt(t, at)
			if rec[IsRushHour] != tt.rushHour {
				t.Errorf("is_rush_hour = %f, want %f", rec[IsRushHour], tt.rushHour)
			}
			if rec[IsNight] != tt.night {
				t.Errorf("is_night = %f, want %f", rec[IsNight], tt.night)
			}
		})
	}
}

func TestDerive_WeekendFlag(t *testing.T) {
	saturday := time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)

	if rec := deriveAt(t, saturday); rec[IsWeekend] != 1 {
		t.Errorf("Saturday is_weekend = %f, want 1", rec[IsWeekend])
	}
	if rec := deriveAt(t, sunday); rec[IsWeekend] != 1 {
		t.Errorf("Sunday is_weekend = %f, want 1", rec[IsWeekend])
	}
	if rec := deriveAt(t, monday); rec[IsWeekend] != 0 {
		t.Errorf("Monday is_weekend = %f, want 0", rec[IsWeekend])
	}
}

func TestDerive_ZeroDistanceLogIsFinite(t *testing.T) {
	rec := Derive(Input{
		Pickup:     midtownPickup,
		Dropoff:    midtownPickup,
		Passengers: 1,
		At:         time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
	}, LogSet{Distance: true, JFK: true, EWR: true, LGA: true})

	if rec[Distance] != 0 {
		t.Errorf("distance = %f, want 0", rec[Distance])
	}
	for _, name := range []string{LogDistance, LogJFKPickupDist, LogEWRPickupDist, LogLGAPickupDist} {
		v, ok := rec[name]
		if !ok {
			t.Fatalf("%s missing from record", name)
		}
		if math.IsInf(v, 0) || math.IsNaN(v) {
			t.Errorf("%s = %f, want finite", name, v)
		}
	}
	if rec[LogDistance] != 0 {
		t.Errorf("log1p(0) = %f, want 0", rec[LogDistance])
	}
}

func TestDerive_LogSetControlsLogFeatures(t *testing.T) {
	rec := deriveAt(t, time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC))
	if _, ok := rec[LogDistance]; !ok {
		t.Errorf("log_distance requested but not derived")
	}
	for _, name := range []string{LogJFKPickupDist, LogEWRPickupDist, LogLGAPickupDist} {
		if _, ok := rec[name]; ok {
			t.Errorf("%s derived despite not being requested", name)
		}
	}
}

func TestLogFeaturesIn(t *testing.T) {
	ls := LogFeaturesIn([]string{Distance, LogDistance, LogLGAPickupDist, Hour})
	want := LogSet{Distance: true, LGA: true}
	if ls != want {
		t.Errorf("LogFeaturesIn() = %+v, want %+v", ls, want)
	}
}

func TestDerive_EveryValueFinite(t *testing.T) {
	rec := Derive(Input{
		Pickup:     types.Point{Lat: 40.6413, Lng: -73.7781},
		Dropoff:    types.Point{Lat: 40.85, Lng: -74.05},
		Passengers: 6,
		At:         time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC),
	}, LogSet{Distance: true, JFK: true, EWR: true, LGA: true})

	for name, v := range rec {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			t.Errorf("%s = %f, want finite", name, v)
		}
	}
	for _, flag := range []string{IsWeekend, IsRushHour, IsNight, IsManhattanPickup, IsManhattanDropoff} {
		if v := rec[flag]; v != 0 && v != 1 {
			t.Errorf("%s = %f, want exactly 0 or 1", flag, v)
		}
	}
}
