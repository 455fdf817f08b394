// README: Canonical feature names, landmarks, and the derived feature record.
package features

import "farecast/internal/types"

// Feature names understood by the derivation step. The deployed model's
// schema must be a subset of these; anything else is a schema mismatch.
const (
	PickupLongitude  = "pickup_longitude"
	PickupLatitude   = "pickup_latitude"
	DropoffLongitude = "dropoff_longitude"
	DropoffLatitude  = "dropoff_latitude"
	PassengerCount   = "passenger_count"

	Hour    = "hour"
	Day     = "day"
	Month   = "month"
	Weekday = "weekday"
	Year    = "year"

	Distance           = "distance"
	JFKPickupDist      = "jfk_pickup_dist"
	EWRPickupDist      = "ewr_pickup_dist"
	LGAPickupDist      = "lga_pickup_dist"
	ManhattanPickupDist = "manhattan_pickup_dist"

	IsWeekend          = "is_weekend"
	IsRushHour         = "is_rush_hour"
	IsNight            = "is_night"
	IsManhattanPickup  = "is_manhattan_pickup"
	IsManhattanDropoff = "is_manhattan_dropoff"

	LogDistance      = "log_distance"
	LogJFKPickupDist = "log_jfk_pickup_dist"
	LogEWRPickupDist = "log_ewr_pickup_dist"
	LogLGAPickupDist = "log_lga_pickup_dist"
)

// Fixed airport landmarks. Distances to these from the pickup point are
// strong fare signals (flat-rate and surcharged trips).
var (
	JFK = types.Point{Lat: 40.6413, Lng: -73.7781}
	EWR = types.Point{Lat: 40.6895, Lng: -74.1745}
	LGA = types.Point{Lat: 40.7769, Lng: -73.8740}

	// ManhattanCenter is the fixed city-center landmark (Times Square area).
	ManhattanCenter = types.Point{Lat: 40.7589, Lng: -73.9851}
)

// Manhattan urban-core bounding box for the containment flags.
const (
	manhattanLatMin = 40.70
	manhattanLatMax = 40.80
	manhattanLngMin = -74.02
	manhattanLngMax = -73.93
)

// Record maps feature names to their derived numeric values. Built once per
// request and never mutated afterwards; every value is finite and binary
// flags are exactly 0 or 1.
type Record map[string]float64

// InManhattan reports whether p falls inside the urban-core box.
func InManhattan(p types.Point) bool {
	return p.Lat >= manhattanLatMin && p.Lat <= manhattanLatMax &&
		p.Lng >= manhattanLngMin && p.Lng <= manhattanLngMax
}
