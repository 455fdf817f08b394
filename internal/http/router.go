// README: HTTP router registration; wires middleware and handlers into a gin engine.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"farecast/internal/http/handlers"
	"farecast/internal/http/middleware"
	"farecast/internal/modules/predict"
)

type RouterDeps struct {
	Predict     *predict.Service
	Store       *predict.Store
	Geocoder    handlers.Geocoder
	Logger      *slog.Logger
	CORSOrigins string
}

func NewRouter(deps RouterDeps) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))
	if deps.CORSOrigins != "" {
		r.Use(middleware.CORS(deps.CORSOrigins))
	}

	predictHandler := handlers.NewPredictHandler(deps.Predict, deps.Geocoder)
	r.POST("/api/predict", predictHandler.Predict)
	r.POST("/api/predict/address", predictHandler.PredictByAddress)
	r.GET("/api/validate", predictHandler.Validate)

	modelHandler := handlers.NewModelHandler(deps.Predict, deps.Store)
	r.GET("/api/model", modelHandler.Info)
	r.GET("/api/predictions/recent", modelHandler.Recent)
	r.GET("/health", modelHandler.Health)

	return r
}
