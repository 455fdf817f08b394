// README: Distance math helpers (haversine and grid approximations).
package geo

import "math"

// earthRadiusMiles is the single canonical Earth radius used everywhere in
// this service. Older revisions of the pipeline disagreed (3956 vs 3959);
// 3959 is what the deployed model was trained against.
const earthRadiusMiles = 3959.0

// Approximate miles per degree at NYC's latitude, used by the grid distance.
const (
	milesPerDegreeLat = 69.0
	milesPerDegreeLng = 54.6
)

// HaversineMiles returns the great-circle distance in miles between two
// points specified in decimal degrees.
func HaversineMiles(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

// GridMiles returns the "Manhattan" grid distance in miles: the sum of the
// absolute latitude and longitude deltas, each scaled to local miles. It is
// a rough street-grid approximation, not a routed distance.
func GridMiles(lat1, lng1, lat2, lng2 float64) float64 {
	return math.Abs(lat1-lat2)*milesPerDegreeLat + math.Abs(lng1-lng2)*milesPerDegreeLng
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
