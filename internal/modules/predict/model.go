// README: Trip request, prediction result, and metro service constants.
package predict

import (
	"time"

	"farecast/internal/model"
	"farecast/internal/types"
)

// Metro coordinate bounds; requests outside this box are rejected before any
// feature computation.
const (
	MinLat = 40.63
	MaxLat = 40.85
	MinLng = -74.05
	MaxLng = -73.75
)

const (
	minPassengers = 1
	maxPassengers = 6

	// MinFare is the metered flag-drop floor; no estimate goes below it.
	MinFare = 2.50

	// degenerateTripMiles is the distance under which pickup and dropoff are
	// treated as the same point, almost always a user-input mistake.
	degenerateTripMiles = 0.01

	// avgSpeedMPH is the citywide average taxi speed used for the duration
	// estimate.
	avgSpeedMPH = 12.0
)

// TripRequest is one fare-estimation request. A zero PickupTime means "now":
// the service resolves it against the metro clock at evaluation time, which
// makes the temporal features (and so the fare) time-dependent for such
// requests. Immutable once built.
type TripRequest struct {
	Pickup     types.Point
	Dropoff    types.Point
	Passengers int
	// PickupTime is optional; callers that need reproducible estimates must
	// set it explicitly.
	PickupTime time.Time
}

// FareRange bounds the estimate from the ensemble spread.
type FareRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Result is the assembled response for one prediction. Features holds the
// scaled vector actually scored, keyed by schema name, for transparency and
// debugging.
type Result struct {
	Fare            float64            `json:"fare"`
	Confidence      float64            `json:"confidence"`
	Range           FareRange          `json:"fare_range"`
	DistanceMiles   float64            `json:"distance_miles"`
	DurationMinutes float64            `json:"duration_minutes"`
	PickupBorough   string             `json:"pickup_borough"`
	DropoffBorough  string             `json:"dropoff_borough"`
	Features        map[string]float64 `json:"features"`
	ModelVersion    string             `json:"model_version"`
	PredictedAt     time.Time          `json:"prediction_timestamp"`
}

// Model is the contract the orchestrator needs from the loaded artifact
// bundle. *model.Bundle satisfies it; tests inject fakes, which is the point
// of taking an interface here instead of a global singleton.
type Model interface {
	Scale(x []float64) []float64
	Predict(x []float64) float64
	SubEstimators() []model.Estimator
	FeatureNames() []string
	Version() string
	Info() model.Info
}
