// README: Typed pipeline errors exposed to the transport layer.
package predict

import (
	"errors"
	"fmt"
)

// ErrModelUnavailable is returned when the model bundle has not been loaded;
// prediction calls fail immediately rather than queue.
var ErrModelUnavailable = errors.New("model not loaded")

// errNonFiniteOutput marks a regressor that produced NaN or ±Inf.
var errNonFiniteOutput = errors.New("model produced a non-finite value")

// OutOfBoundsError reports a coordinate outside the metro bounding box. It
// carries enough detail for the caller to reconstruct the failing condition.
type OutOfBoundsError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s %.4f outside metro bounds [%.2f, %.2f]", e.Field, e.Value, e.Min, e.Max)
}

// InvalidPassengerCountError reports a passenger count outside [1, 6].
type InvalidPassengerCountError struct {
	Count int
}

func (e *InvalidPassengerCountError) Error() string {
	return fmt.Sprintf("passenger count %d must be between %d and %d", e.Count, minPassengers, maxPassengers)
}

// DegenerateTripError reports a pickup and dropoff that resolve to the same
// point, a likely input mistake rather than a genuine trip.
type DegenerateTripError struct {
	DistanceMiles float64
}

func (e *DegenerateTripError) Error() string {
	return fmt.Sprintf("pickup and dropoff are %.4f miles apart; too close to be a trip", e.DistanceMiles)
}

// PredictionError wraps an unexpected failure inside scaling or inference.
type PredictionError struct {
	Stage string
	Err   error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("prediction failed at %s: %v", e.Stage, e.Err)
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}
