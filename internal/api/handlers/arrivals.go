package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mkyprianou/erchete/internal/location"
	"github.com/mkyprianou/erchete/internal/models"
)

type ArrivalsHandler struct {
	arrivals ArrivalProvider
	stops    *location.StopService
}

func NewArrivalsHandler(arrivals ArrivalProvider, stops *location.StopService) *ArrivalsHandler {
	return &ArrivalsHandler{arrivals: arrivals, stops: stops}
}

// GetStopArrivals returns live arrival estimates for a stop
// GET /api/stops/{stopId}/arrivals?now=<epoch-millis>
func (h *ArrivalsHandler) GetStopArrivals(w http.ResponseWriter, r *http.Request) {
	stopID := r.PathValue("stopId")
	if stopID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Missing stop ID",
			"message": "A stop ID is required in the URL path",
		})
		return
	}

	nowMillis := time.Now().UnixMilli()
	if nowStr := r.URL.Query().Get("now"); nowStr != "" {
		ms, err := strconv.ParseInt(nowStr, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":   "Invalid now parameter",
				"message": "now must be a Unix timestamp in milliseconds",
			})
			return
		}
		nowMillis = ms
	}

	arrivals, err := h.arrivals.ArrivalsForStop(r.Context(), stopID, nowMillis)
	if err != nil {
		writeFeedError(w, err)
		return
	}

	if arrivals == nil {
		arrivals = []models.Arrival{}
	}

	response := map[string]any{
		"success":  true,
		"stop_id":  stopID,
		"arrivals": arrivals,
		"count":    len(arrivals),
	}
	if stop, found := h.stops.GetByID(stopID); found {
		response["stop_name"] = stop.Name
	}

	writeJSON(w, http.StatusOK, response)
}
