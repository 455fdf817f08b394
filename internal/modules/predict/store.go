// README: Prediction history store backed by PostgreSQL.
package predict

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists each served prediction for later inspection. Writes are
// best effort from the service's point of view; reads back the most recent
// rows for the history endpoint.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// StoredPrediction is one history row.
type StoredPrediction struct {
	ID             string    `json:"id"`
	PickupLat      float64   `json:"pickup_lat"`
	PickupLng      float64   `json:"pickup_lng"`
	DropoffLat     float64   `json:"dropoff_lat"`
	DropoffLng     float64   `json:"dropoff_lng"`
	Passengers     int       `json:"passenger_count"`
	Fare           float64   `json:"fare"`
	Confidence     float64   `json:"confidence"`
	RangeMin       float64   `json:"range_min"`
	RangeMax       float64   `json:"range_max"`
	DistanceMiles  float64   `json:"distance_miles"`
	DurationMin    float64   `json:"duration_minutes"`
	PickupBorough  string    `json:"pickup_borough"`
	DropoffBorough string    `json:"dropoff_borough"`
	ModelVersion   string    `json:"model_version"`
	PredictedAt    time.Time `json:"predicted_at"`
}

func (s *Store) Insert(ctx context.Context, req TripRequest, res *Result) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO predictions (
			id, pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
			passenger_count, fare, confidence, range_min, range_max,
			distance_miles, duration_minutes,
			pickup_borough, dropoff_borough, model_version, predicted_at
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12,
			$13, $14, $15, $16
		)`,
		uuid.NewString(),
		req.Pickup.Lat, req.Pickup.Lng,
		req.Dropoff.Lat, req.Dropoff.Lng,
		req.Passengers,
		res.Fare,
		res.Confidence,
		res.Range.Min, res.Range.Max,
		res.DistanceMiles, res.DurationMinutes,
		res.PickupBorough, res.DropoffBorough,
		res.ModelVersion,
		res.PredictedAt,
	)
	return err
}

// Recent returns the latest predictions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]StoredPrediction, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, pickup_lat, pickup_lng, dropoff_lat, dropoff_lng,
		       passenger_count, fare, confidence, range_min, range_max,
		       distance_miles, duration_minutes,
		       pickup_borough, dropoff_borough, model_version, predicted_at
		FROM predictions
		ORDER BY predicted_at DESC
		LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredPrediction
	for rows.Next() {
		var p StoredPrediction
		if err := rows.Scan(
			&p.ID, &p.PickupLat, &p.PickupLng, &p.DropoffLat, &p.DropoffLng,
			&p.Passengers, &p.Fare, &p.Confidence, &p.RangeMin, &p.RangeMax,
			&p.DistanceMiles, &p.DurationMin,
			&p.PickupBorough, &p.DropoffBorough, &p.ModelVersion, &p.PredictedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
