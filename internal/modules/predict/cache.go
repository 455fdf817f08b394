// README: Prediction cache backed by Redis with hour-bucketed keys.
package predict

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache memoises results keyed by the trip parameters and the hour bucket of
// the resolved pickup time. Bucketing by hour keeps the no-timestamp
// nondeterminism bounded: within one wall-clock hour identical requests hit
// the same entry, and the bucket rolls over exactly when the temporal
// features can change.
type Cache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCache(redis *redis.Client, ttl time.Duration) *Cache {
	return &Cache{redis: redis, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context, req TripRequest, at time.Time) (*Result, bool) {
	val, err := c.redis.Get(ctx, cacheKey(req, at)).Result()
	if err != nil {
		// redis.Nil and transport errors alike fall through to the pipeline.
		return nil, false
	}
	var res Result
	if err := json.Unmarshal([]byte(val), &res); err != nil {
		return nil, false
	}
	return &res, true
}

func (c *Cache) Set(ctx context.Context, req TripRequest, at time.Time, res *Result) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	// Best effort: a failed cache write is invisible to the caller.
	_ = c.redis.Set(ctx, cacheKey(req, at), data, c.ttl).Err()
}

// cacheKey rounds coordinates to ~11m so nearby repeat requests share an
// entry, matching the resolution the model meaningfully distinguishes.
func cacheKey(req TripRequest, at time.Time) string {
	return fmt.Sprintf("farecast:pred:%.4f,%.4f:%.4f,%.4f:%d:%s",
		req.Pickup.Lat, req.Pickup.Lng,
		req.Dropoff.Lat, req.Dropoff.Lng,
		req.Passengers,
		at.Format("2006010215"),
	)
}
