// README: Trip feature derivation: distances, temporal fields, and flags.
package features

import (
	"math"
	"time"

	"farecast/internal/geo"
	"farecast/internal/types"
)

// Input is everything the derivation step needs for one trip. At must be the
// resolved pickup time in the metro's timezone; the caller decides how a
// missing request timestamp is defaulted.
type Input struct {
	Pickup     types.Point
	Dropoff    types.Point
	Passengers int
	At         time.Time
}

// LogSet records which log-transformed variants the deployed model actually
// uses, decided once from the model schema so derivation never computes
// features that would be discarded.
type LogSet struct {
	Distance bool
	JFK      bool
	EWR      bool
	LGA      bool
}

// LogFeaturesIn inspects a model schema and reports which log variants it names.
func LogFeaturesIn(schema []string) LogSet {
	var ls LogSet
	for _, name := range schema {
		switch name {
		case LogDistance:
			ls.Distance = true
		case LogJFKPickupDist:
			ls.JFK = true
		case LogEWRPickupDist:
			ls.EWR = true
		case LogLGAPickupDist:
			ls.LGA = true
		}
	}
	return ls
}

// Derive builds the complete feature record for one trip.
//
// Temporal fields come from in.At; when the caller defaults a missing request
// timestamp to the current clock, identical coordinates can legitimately
// produce different fares at different wall-clock moments. That is documented
// behavior, not a bug; callers needing reproducibility supply a timestamp.
func Derive(in Input, logs LogSet) Record {
	distance := geo.HaversineMiles(in.Pickup.Lat, in.Pickup.Lng, in.Dropoff.Lat, in.Dropoff.Lng)

	jfkDist := geo.HaversineMiles(in.Pickup.Lat, in.Pickup.Lng, JFK.Lat, JFK.Lng)
	ewrDist := geo.HaversineMiles(in.Pickup.Lat, in.Pickup.Lng, EWR.Lat, EWR.Lng)
	lgaDist := geo.HaversineMiles(in.Pickup.Lat, in.Pickup.Lng, LGA.Lat, LGA.Lng)
	centerDist := geo.HaversineMiles(in.Pickup.Lat, in.Pickup.Lng, ManhattanCenter.Lat, ManhattanCenter.Lng)

	hour := in.At.Hour()

	rec := Record{
		PickupLongitude:  in.Pickup.Lng,
		PickupLatitude:   in.Pickup.Lat,
		DropoffLongitude: in.Dropoff.Lng,
		DropoffLatitude:  in.Dropoff.Lat,
		PassengerCount:   float64(in.Passengers),

		Hour:    float64(hour),
		Day:     float64(in.At.Day()),
		Month:   float64(int(in.At.Month())),
		Weekday: float64(pythonWeekday(in.At.Weekday())),
		Year:    float64(in.At.Year()),

		Distance:            distance,
		JFKPickupDist:       jfkDist,
		EWRPickupDist:       ewrDist,
		LGAPickupDist:       lgaDist,
		ManhattanPickupDist: centerDist,

		IsWeekend:          boolFeature(isWeekend(in.At.Weekday())),
		IsRushHour:         boolFeature(isRushHour(hour)),
		IsNight:            boolFeature(isNight(hour)),
		IsManhattanPickup:  boolFeature(InManhattan(in.Pickup)),
		IsManhattanDropoff: boolFeature(InManhattan(in.Dropoff)),
	}

	// Log1p keeps zero-length trips finite without an epsilon hack.
	if logs.Distance {
		rec[LogDistance] = math.Log1p(distance)
	}
	if logs.JFK {
		rec[LogJFKPickupDist] = math.Log1p(jfkDist)
	}
	if logs.EWR {
		rec[LogEWRPickupDist] = math.Log1p(ewrDist)
	}
	if logs.LGA {
		rec[LogLGAPickupDist] = math.Log1p(lgaDist)
	}

	return rec
}

// isRushHour covers the morning and evening peaks. Boundary hours are part of
// the feature contract: 9 is rush hour, 10 is not.
func isRushHour(hour int) bool {
	switch hour {
	case 7, 8, 9, 17, 18, 19:
		return true
	}
	return false
}

// isNight covers 22:00 through 05:59.
func isNight(hour int) bool {
	return hour >= 22 || hour <= 5
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

// pythonWeekday maps Go's Sunday=0 convention onto the Monday=0 encoding the
// model was trained with.
func pythonWeekday(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
