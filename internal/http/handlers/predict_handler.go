// README: Prediction handlers (coordinate predict, address predict, boundary check).
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"farecast/internal/maps"
	"farecast/internal/modules/predict"
	"farecast/internal/types"
)

const geocodeTimeout = 10 * time.Second

// Geocoder resolves street addresses to coordinates. *maps.GeocodeService
// satisfies it; tests inject fakes.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*maps.Location, error)
}

type PredictHandler struct {
	predict  *predict.Service
	geocoder Geocoder
}

// NewPredictHandler creates a PredictHandler. geocoder may be nil, which
// disables the address endpoint.
func NewPredictHandler(svc *predict.Service, geocoder Geocoder) *PredictHandler {
	return &PredictHandler{predict: svc, geocoder: geocoder}
}

type predictReq struct {
	PickupLatitude   float64 `json:"pickup_latitude"`
	PickupLongitude  float64 `json:"pickup_longitude"`
	DropoffLatitude  float64 `json:"dropoff_latitude"`
	DropoffLongitude float64 `json:"dropoff_longitude"`
	PassengerCount   int     `json:"passenger_count"`
	PickupDatetime   string  `json:"pickup_datetime"`
}

type predictAddressReq struct {
	PickupAddress  string `json:"pickup_address"`
	DropoffAddress string `json:"dropoff_address"`
	PassengerCount int    `json:"passenger_count"`
	PickupDatetime string `json:"pickup_datetime"`
}

// Predict handles POST /api/predict.
func (h *PredictHandler) Predict(c *gin.Context) {
	var req predictReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	at, ok := parsePickupTime(c, req.PickupDatetime)
	if !ok {
		return
	}

	res, err := h.predict.Predict(c.Request.Context(), predict.TripRequest{
		Pickup:     types.Point{Lat: req.PickupLatitude, Lng: req.PickupLongitude},
		Dropoff:    types.Point{Lat: req.DropoffLatitude, Lng: req.DropoffLongitude},
		Passengers: req.PassengerCount,
		PickupTime: at,
	})
	if err != nil {
		writePredictError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}

// PredictByAddress handles POST /api/predict/address.
func (h *PredictHandler) PredictByAddress(c *gin.Context) {
	if h.geocoder == nil {
		writeError(c, http.StatusServiceUnavailable, "geocoding is not configured")
		return
	}

	var req predictAddressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.PickupAddress = strings.TrimSpace(req.PickupAddress)
	req.DropoffAddress = strings.TrimSpace(req.DropoffAddress)
	if req.PickupAddress == "" || req.DropoffAddress == "" {
		writeError(c, http.StatusBadRequest, "missing pickup or dropoff address")
		return
	}

	at, ok := parsePickupTime(c, req.PickupDatetime)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), geocodeTimeout)
	defer cancel()

	pickup, err := h.geocoder.Geocode(ctx, req.PickupAddress)
	if err != nil {
		writeError(c, http.StatusBadRequest, "could not resolve pickup address")
		return
	}
	dropoff, err := h.geocoder.Geocode(ctx, req.DropoffAddress)
	if err != nil {
		writeError(c, http.StatusBadRequest, "could not resolve dropoff address")
		return
	}

	res, err := h.predict.Predict(c.Request.Context(), predict.TripRequest{
		Pickup:     pickup.Point,
		Dropoff:    dropoff.Point,
		Passengers: req.PassengerCount,
		PickupTime: at,
	})
	if err != nil {
		writePredictError(c, err)
		return
	}

	writeJSON(c, http.StatusOK, gin.H{
		"prediction":       res,
		"pickup_resolved":  pickup.FormattedAddress,
		"dropoff_resolved": dropoff.FormattedAddress,
	})
}

// Validate handles GET /api/validate.
func (h *PredictHandler) Validate(c *gin.Context) {
	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lon"), 64)
	if err1 != nil || err2 != nil {
		writeError(c, http.StatusBadRequest, "lat and lon query parameters are required")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"lat":   lat,
		"lon":   lng,
		"valid": predict.ValidateCoordinates(lat, lng),
	})
}

// parsePickupTime parses an optional RFC 3339 pickup time. It writes the
// error response itself and reports ok=false on bad input.
func parsePickupTime(c *gin.Context, raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		writeError(c, http.StatusBadRequest, "pickup_datetime must be RFC 3339")
		return time.Time{}, false
	}
	return at, true
}
