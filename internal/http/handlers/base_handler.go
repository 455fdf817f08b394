// README: Base handler utilities (JSON helpers, prediction error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"farecast/internal/modules/features"
	"farecast/internal/modules/predict"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writePredictError maps pipeline errors to HTTP statuses. Bad input is the
// caller's fault (400), a degenerate trip is well-formed but unprocessable
// (422), a missing model is a service condition (503), everything else is
// internal.
func writePredictError(c *gin.Context, err error) {
	var (
		oob        *predict.OutOfBoundsError
		passengers *predict.InvalidPassengerCountError
		degenerate *predict.DegenerateTripError
		mismatch   *features.SchemaMismatchError
	)
	switch {
	case errors.As(err, &oob), errors.As(err, &passengers):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &degenerate):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, predict.ErrModelUnavailable):
		writeError(c, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &mismatch):
		writeError(c, http.StatusInternalServerError, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
