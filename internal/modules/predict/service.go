// README: Prediction service orchestrates validation, feature derivation, inference, and post-processing.
package predict

import (
	"context"
	"log/slog"
	"math"
	"time"

	"farecast/internal/geo"
	"farecast/internal/model"
	"farecast/internal/modules/features"
)

// maxSubEstimators caps how many ensemble members feed spread estimation;
// beyond a handful the spread estimate stops improving.
const maxSubEstimators = 5

// Service runs the fare-estimation pipeline. It is stateless per call: the
// only shared state is the injected read-only model bundle, so a single
// Service is safe for concurrent use. Store and cache may be nil, which
// disables history persistence and caching respectively.
type Service struct {
	model  Model
	store  *Store
	cache  *Cache
	logger *slog.Logger
	tz     *time.Location
	logs   features.LogSet
}

func NewService(m Model, store *Store, cache *Cache, logger *slog.Logger, tz *time.Location) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if tz == nil {
		tz = time.UTC
	}
	s := &Service{model: m, store: store, cache: cache, logger: logger, tz: tz}
	if m != nil {
		s.logs = features.LogFeaturesIn(m.FeatureNames())
	}
	return s
}

// ValidateCoordinates reports whether a coordinate lies inside the metro
// bounding box. Pure check, no side effects.
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= MinLat && lat <= MaxLat && lng >= MinLng && lng <= MaxLng
}

// ModelInfo describes the loaded model, or a not-loaded marker.
func (s *Service) ModelInfo() model.Info {
	if s.model == nil {
		return model.Info{Loaded: false}
	}
	return s.model.Info()
}

// Predict runs the full pipeline for one trip request. Any step failure
// aborts the whole request with a typed error; partial results are never
// returned.
func (s *Service) Predict(ctx context.Context, req TripRequest) (*Result, error) {
	if s.model == nil {
		return nil, ErrModelUnavailable
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	at := req.PickupTime
	if at.IsZero() {
		// Documented nondeterminism: without an explicit pickup time the
		// temporal features track the metro clock at evaluation time.
		at = time.Now()
	}
	at = at.In(s.tz)

	if s.cache != nil {
		if res, ok := s.cache.Get(ctx, req, at); ok {
			return res, nil
		}
	}

	rec := features.Derive(features.Input{
		Pickup:     req.Pickup,
		Dropoff:    req.Dropoff,
		Passengers: req.Passengers,
		At:         at,
	}, s.logs)
	distance := rec[features.Distance]

	vector, err := features.Align(rec, s.model.FeatureNames())
	if err != nil {
		return nil, err
	}

	scaled := s.model.Scale(vector)
	raw := s.model.Predict(scaled)
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return nil, &PredictionError{Stage: "inference", Err: errNonFiniteOutput}
	}
	s.logger.Debug("raw model prediction", "fare", raw, "distance_miles", distance)

	confidence, fareRange := estimateConfidence(raw, s.secondaryPredictions(raw, scaled))

	fare := clampToPlausible(raw, distance, rec)
	fare = math.Max(MinFare, fare)

	res := &Result{
		Fare:            round2(fare),
		Confidence:      confidence,
		Range:           fareRange,
		DistanceMiles:   round3(distance),
		DurationMinutes: math.Round(distance/avgSpeedMPH*60*10) / 10,
		PickupBorough:   Borough(req.Pickup),
		DropoffBorough:  Borough(req.Dropoff),
		Features:        zipFeatures(s.model.FeatureNames(), scaled),
		ModelVersion:    s.model.Version(),
		PredictedAt:     time.Now().In(s.tz),
	}

	if s.cache != nil {
		s.cache.Set(ctx, req, at, res)
	}
	if s.store != nil {
		// History is best effort; an estimate never fails because the
		// write behind it did.
		if err := s.store.Insert(ctx, req, res); err != nil {
			s.logger.Error("store prediction", "error", err)
		}
	}

	return res, nil
}

// secondaryPredictions collects per-estimator outputs for spread estimation.
// Models without a native ensemble contribute the primary value three times,
// which flows through as a zero-spread (high-confidence) signal.
func (s *Service) secondaryPredictions(primary float64, scaled []float64) []float64 {
	subs := s.model.SubEstimators()
	if len(subs) == 0 {
		return []float64{primary, primary, primary}
	}
	if len(subs) > maxSubEstimators {
		subs = subs[:maxSubEstimators]
	}
	out := make([]float64, len(subs))
	for i, est := range subs {
		out[i] = est.Predict(scaled)
	}
	return out
}

// validateRequest enforces bounds before any feature work happens.
func validateRequest(req TripRequest) error {
	coords := []struct {
		field string
		value float64
		min   float64
		max   float64
	}{
		{"pickup_latitude", req.Pickup.Lat, MinLat, MaxLat},
		{"pickup_longitude", req.Pickup.Lng, MinLng, MaxLng},
		{"dropoff_latitude", req.Dropoff.Lat, MinLat, MaxLat},
		{"dropoff_longitude", req.Dropoff.Lng, MinLng, MaxLng},
	}
	for _, c := range coords {
		if c.value < c.min || c.value > c.max {
			return &OutOfBoundsError{Field: c.field, Value: c.value, Min: c.min, Max: c.max}
		}
	}

	if req.Passengers < minPassengers || req.Passengers > maxPassengers {
		return &InvalidPassengerCountError{Count: req.Passengers}
	}

	d := geo.HaversineMiles(req.Pickup.Lat, req.Pickup.Lng, req.Dropoff.Lat, req.Dropoff.Lng)
	if d < degenerateTripMiles {
		return &DegenerateTripError{DistanceMiles: d}
	}
	return nil
}

func zipFeatures(names []string, values []float64) map[string]float64 {
	m := make(map[string]float64, len(names))
	for i, name := range names {
		m[name] = values[i]
	}
	return m
}
