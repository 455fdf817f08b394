// README: Entry point; loads config, wires the model and services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"farecast/internal/config"
	httptransport "farecast/internal/http"
	"farecast/internal/http/handlers"
	"farecast/internal/infra"
	"farecast/internal/maps"
	"farecast/internal/model"
	"farecast/internal/modules/predict"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tz, err := time.LoadLocation(cfg.Model.Timezone)
	if err != nil {
		log.Fatalf("load timezone %q: %v", cfg.Model.Timezone, err)
	}

	// A missing model is not fatal: the service starts and answers 503 on
	// predictions until the artifacts are in place.
	var bundle predict.Model
	if loaded, err := model.Load(cfg.Model.Dir); err != nil {
		logger.Error("model load failed, predictions disabled", "dir", cfg.Model.Dir, "error", err)
	} else {
		bundle = loaded
		logger.Info("model loaded", "version", loaded.Version(), "features", len(loaded.FeatureNames()))
	}

	var store *predict.Store
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal(err)
		}
		defer dbPool.Close()
		store = predict.NewStore(dbPool)
	}

	var cache *predict.Cache
	if cfg.Redis.Addr != "" {
		cache = predict.NewCache(infra.NewRedis(cfg.Redis.Addr), cfg.Redis.CacheTTL)
	}

	var geocoder handlers.Geocoder
	if cfg.Maps.APIKey != "" {
		g, err := maps.NewGeocodeService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		geocoder = g
	}

	predictSvc := predict.NewService(bundle, store, cache, logger, tz)

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Predict:     predictSvc,
		Store:       store,
		Geocoder:    geocoder,
		Logger:      logger,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
