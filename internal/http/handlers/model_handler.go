// README: Model info, prediction history, and health handlers.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"farecast/internal/modules/predict"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

type ModelHandler struct {
	predict *predict.Service
	store   *predict.Store
}

// NewModelHandler creates a ModelHandler. store may be nil, which disables
// the history endpoint.
func NewModelHandler(svc *predict.Service, store *predict.Store) *ModelHandler {
	return &ModelHandler{predict: svc, store: store}
}

// Info handles GET /api/model.
func (h *ModelHandler) Info(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.predict.ModelInfo())
}

// Recent handles GET /api/predictions/recent.
func (h *ModelHandler) Recent(c *gin.Context) {
	if h.store == nil {
		writeError(c, http.StatusServiceUnavailable, "prediction history is not configured")
		return
	}

	limit := defaultRecentLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	rows, err := h.store.Recent(c.Request.Context(), limit)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"predictions": rows, "count": len(rows)})
}

// Health handles GET /health.
func (h *ModelHandler) Health(c *gin.Context) {
	info := h.predict.ModelInfo()
	writeJSON(c, http.StatusOK, gin.H{
		"status":        "ok",
		"model_loaded":  info.Loaded,
		"model_version": info.ModelVersion,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}
