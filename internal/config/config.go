// README: Config loader with env defaults for HTTP, model, DB, Redis, and maps settings.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTP struct {
		Addr        string
		CORSOrigins string
	}
	Model struct {
		Dir      string
		Timezone string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr     string
		CacheTTL time.Duration
	}
	Maps struct {
		APIKey string
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("FARECAST_HTTP_ADDR", ":8080")
	cfg.HTTP.CORSOrigins = envOrDefault("FARECAST_CORS_ORIGINS", "*")
	cfg.Model.Dir = envOrDefault("FARECAST_MODEL_DIR", "models")
	cfg.Model.Timezone = envOrDefault("FARECAST_TIMEZONE", "America/New_York")
	// DB, Redis, and Maps are optional features; empty values disable them.
	cfg.DB.DSN = os.Getenv("FARECAST_DB_DSN")
	cfg.Redis.Addr = os.Getenv("FARECAST_REDIS_ADDR")
	cfg.Redis.CacheTTL = time.Duration(envOrDefaultInt("FARECAST_CACHE_TTL_SECONDS", 300)) * time.Second
	cfg.Maps.APIKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
