// README: Address geocoding via Google Maps, biased to the metro viewport.
package maps

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"farecast/internal/types"
)

// ErrNoResults means the geocoder returned nothing for the address.
var ErrNoResults = errors.New("no geocoding results for address")

// Location is a resolved street address.
type Location struct {
	Point            types.Point
	FormattedAddress string
}

// GeocodeService resolves free-form addresses through the Google Geocoding
// API. Results are biased toward the NYC metro viewport so ambiguous
// addresses ("34th and 5th") resolve locally.
type GeocodeService struct {
	client *maps.Client
}

// NewGeocodeService creates a GeocodeService with the given API key.
func NewGeocodeService(apiKey string) (*GeocodeService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client}, nil
}

// Geocode resolves a single address to a coordinate. The first result wins;
// the API orders results by relevance.
func (s *GeocodeService) Geocode(ctx context.Context, address string) (*Location, error) {
	r := &maps.GeocodingRequest{
		Address: address,
		Region:  "us",
		Bounds: &maps.LatLngBounds{
			SouthWest: maps.LatLng{Lat: 40.63, Lng: -74.05},
			NorthEast: maps.LatLng{Lat: 40.85, Lng: -73.75},
		},
	}

	results, err := s.client.Geocode(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	top := results[0]
	return &Location{
		Point: types.Point{
			Lat: top.Geometry.Location.Lat,
			Lng: top.Geometry.Location.Lng,
		},
		FormattedAddress: top.FormattedAddress,
	}, nil
}
