// README: Smoke cases for the fare API; health, model, predict, and latency checks.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))

	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}

	if r.db != nil {
		r.db.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}

	return results
}

var samplePredict = map[string]any{
	"pickup_latitude":   40.748,
	"pickup_longitude":  -73.984,
	"dropoff_latitude":  40.6413,
	"dropoff_longitude": -73.7781,
	"passenger_count":   2,
	"pickup_datetime":   "2025-06-10T12:00:00Z",
}

func (r *Runner) postPredict(ctx context.Context) (*http.Response, time.Duration, error) {
	body, _ := json.Marshal(samplePredict)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.BaseURL+"/api/predict", bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	start := time.Now()
	resp, err := r.httpc.Do(req)
	return resp, time.Since(start), err
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: "SKIP", Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: "SKIP", Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Migration: apply (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: "SKIP", Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: "FAIL", Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				for _, stmt := range strings.Split(string(sql), ";") {
					stmt = strings.TrimSpace(stmt)
					if stmt == "" {
						continue
					}
					if _, err := r.db.Exec(ctx, stmt); err != nil {
						return Result{Status: "FAIL", Note: err.Error()}
					}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "API: health",
			Run: func(ctx context.Context, r *Runner) Result {
				req, _ := http.NewRequestWithContext(ctx, http.MethodGet, base+"/health", nil)
				start := time.Now()
				resp, err := r.httpc.Do(req)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				defer resp.Body.Close()
				if resp.StatusCode != http.StatusOK {
					return Result{Status: "FAIL", Note: resp.Status}
				}
				return Result{Status: "PASS", Latency: time.Since(start)}
			},
		},
		{
			Name: "API: model info",
			Run: func(ctx context.Context, r *Runner) Result {
				req, _ := http.NewRequestWithContext(ctx, http.MethodGet, base+"/api/model", nil)
				resp, err := r.httpc.Do(req)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				defer resp.Body.Close()
				var info struct {
					Loaded       bool `json:"loaded"`
					FeatureCount int  `json:"feature_count"`
				}
				if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if !info.Loaded {
					return Result{Status: "FAIL", Note: "model not loaded"}
				}
				return Result{Status: "PASS", Note: fmt.Sprintf("%d features", info.FeatureCount)}
			},
		},
		{
			Name: "API: predict midtown to JFK",
			Run: func(ctx context.Context, r *Runner) Result {
				resp, latency, err := r.postPredict(ctx)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				defer resp.Body.Close()
				if resp.StatusCode != http.StatusOK {
					return Result{Status: "FAIL", Note: resp.Status}
				}
				var res struct {
					Fare          float64 `json:"fare"`
					Confidence    float64 `json:"confidence"`
					DistanceMiles float64 `json:"distance_miles"`
				}
				if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				if res.Fare < 2.50 {
					return Result{Status: "FAIL", Note: fmt.Sprintf("fare %.2f below floor", res.Fare)}
				}
				if res.DistanceMiles < 10 || res.DistanceMiles > 18 {
					return Result{Status: "FAIL", Note: fmt.Sprintf("distance %.1f outside expected band", res.DistanceMiles)}
				}
				return Result{Status: "PASS", Latency: latency, Note: fmt.Sprintf("fare=%.2f conf=%.2f", res.Fare, res.Confidence)}
			},
		},
		{
			Name: "API: reject out-of-bounds pickup",
			Run: func(ctx context.Context, r *Runner) Result {
				body, _ := json.Marshal(map[string]any{
					"pickup_latitude":   51.5,
					"pickup_longitude":  -0.12,
					"dropoff_latitude":  40.748,
					"dropoff_longitude": -73.984,
					"passenger_count":   1,
				})
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, base+"/api/predict", bytes.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				if err != nil {
					return Result{Status: "FAIL", Note: err.Error()}
				}
				defer resp.Body.Close()
				if resp.StatusCode != http.StatusBadRequest {
					return Result{Status: "FAIL", Note: "expected 400, got " + resp.Status}
				}
				return Result{Status: "PASS"}
			},
		},
		{
			Name: "Perf: predict latency under load",
			Run: func(ctx context.Context, r *Runner) Result {
				ctx, cancel := context.WithTimeout(ctx, r.cfg.Duration+5*time.Second)
				defer cancel()

				deadline := time.Now().Add(r.cfg.Duration)
				var mu sync.Mutex
				var latencies []time.Duration
				failures := 0

				var wg sync.WaitGroup
				for i := 0; i < r.cfg.Concurrency; i++ {
					wg.Add(1)
					go func() {
						defer wg.Done()
						for time.Now().Before(deadline) {
							resp, latency, err := r.postPredict(ctx)
							mu.Lock()
							if err != nil || resp.StatusCode != http.StatusOK {
								failures++
							} else {
								latencies = append(latencies, latency)
							}
							mu.Unlock()
							if resp != nil {
								resp.Body.Close()
							}
						}
					}()
				}
				wg.Wait()

				if len(latencies) == 0 {
					return Result{Status: "FAIL", Note: "no successful requests"}
				}
				sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
				p95 := latencies[len(latencies)*95/100]
				note := fmt.Sprintf("n=%d fail=%d p95=%s", len(latencies), failures, p95)
				if failures > len(latencies)/10 {
					return Result{Status: "FAIL", Note: note}
				}
				return Result{Status: "PASS", Latency: p95, Note: note}
			},
		},
	}
}
