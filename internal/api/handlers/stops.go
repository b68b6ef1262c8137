package handlers

import (
	"net/http"

	"github.com/mkyprianou/erchete/internal/location"
	"github.com/mkyprianou/erchete/internal/models"
)

const (
	defaultRadius = 500  // meters
	maxRadius     = 5000 // meters
	minRadius     = 50   // meters
	defaultLimit  = 10
	maxLimit      = 50
)

type StopsHandler struct {
	stops *location.StopService
}

func NewStopsHandler(stops *location.StopService) *StopsHandler {
	return &StopsHandler{stops: stops}
}

// GetStopsNear returns all stops within a radius of a coordinate
// GET /api/stops/near?lat=<lat>&lng=<lng>&radius=<meters>&limit=<n>
func (h *StopsHandler) GetStopsNear(w http.ResponseWriter, r *http.Request) {
	lat, lng, ok := parseCoords(w, r)
	if !ok {
		return
	}

	radius := parseIntParam(r, "radius", defaultRadius, minRadius, maxRadius)
	limit := parseIntParam(r, "limit", defaultLimit, 1, maxLimit)

	stops := h.stops.FindNearby(lat, lng, float64(radius))
	if len(stops) > limit {
		stops = stops[:limit]
	}
	if stops == nil {
		stops = []models.StopWithDistance{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"lat":           lat,
		"lng":           lng,
		"radius_meters": radius,
		"stops":         stops,
		"count":         len(stops),
	})
}

// GetClosestStops returns the N closest stops to a coordinate regardless
// of distance
// GET /api/stops/closest?lat=<lat>&lng=<lng>&limit=<n>
func (h *StopsHandler) GetClosestStops(w http.ResponseWriter, r *http.Request) {
	lat, lng, ok := parseCoords(w, r)
	if !ok {
		return
	}

	limit := parseIntParam(r, "limit", defaultLimit, 1, maxLimit)

	stops := h.stops.FindClosest(lat, lng, limit)
	if stops == nil {
		stops = []models.StopWithDistance{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"lat":     lat,
		"lng":     lng,
		"stops":   stops,
		"count":   len(stops),
	})
}

// GetStop returns catalog details for a single stop
// GET /api/stops/{stopId}
func (h *StopsHandler) GetStop(w http.ResponseWriter, r *http.Request) {
	stopID := r.PathValue("stopId")

	stop, found := h.stops.GetByID(stopID)
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":   "Stop not found",
			"message": "No stop with ID " + stopID + " in the catalog",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stop":    stop,
	})
}
