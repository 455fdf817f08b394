// README: Coordinate-box borough classification for response labelling.
package predict

import "farecast/internal/types"

// Borough labels a coordinate with its borough using simplified bounding
// boxes. The boxes overlap at the edges and are checked in order of taxi
// trip density, matching how the original classifier resolved ties. This is
// response decoration only; it never feeds the model.
func Borough(p types.Point) string {
	switch {
	case p.Lng >= -74.02 && p.Lng <= -73.93 && p.Lat >= 40.70 && p.Lat <= 40.80:
		return "Manhattan"
	case p.Lng >= -74.05 && p.Lng <= -73.85 && p.Lat >= 40.63 && p.Lat <= 40.72:
		return "Brooklyn"
	case p.Lng >= -73.96 && p.Lng <= -73.75 && p.Lat >= 40.72 && p.Lat <= 40.80:
		return "Queens"
	case p.Lng >= -73.93 && p.Lng <= -73.80 && p.Lat >= 40.80 && p.Lat <= 40.88:
		return "Bronx"
	default:
		return "Staten Island"
	}
}
