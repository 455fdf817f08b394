// README: Borough classification tests for known landmarks.
package predict

import (
	"testing"

	"farecast/internal/types"
)

func TestBorough(t *testing.T) {
	tests := []struct {
		name string
		p    types.Point
		want string
	}{
		{"Times Square", types.Point{Lat: 40.7580, Lng: -73.9855}, "Manhattan"},
		{"Downtown Brooklyn", types.Point{Lat: 40.69, Lng: -73.99}, "Brooklyn"},
		{"Flushing", types.Point{Lat: 40.76, Lng: -73.83}, "Queens"},
		{"Yankee Stadium", types.Point{Lat: 40.83, Lng: -73.93}, "Bronx"},
		{"LGA", types.Point{Lat: 40.7769, Lng: -73.8740}, "Queens"},
		{"outside every box", types.Point{Lat: 40.55, Lng: -74.15}, "Staten Island"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Borough(tt.p); got != tt.want {
				t.Errorf("Borough(%+v) = %q, want %q", tt.p, got, tt.want)
			}
		})
	}
}
