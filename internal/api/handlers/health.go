// Package handlers contains HTTP request handlers
package handlers

import (
	"net/http"
	"time"

	"github.com/mkyprianou/erchete/internal/location"
)

type HealthHandler struct {
	startTime time.Time
	stops     *location.StopService
}

func NewHealthHandler(stops *location.StopService) *HealthHandler {
	return &HealthHandler{startTime: time.Now(), stops: stops}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "OK",
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
		"version":       apiVersion,
		"uptime":        time.Since(h.startTime).String(),
		"stops_loaded":  h.stops.Count(),
		"catalog_ready": h.stops.IsLoaded(),
	})
}
