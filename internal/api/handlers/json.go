package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/mkyprianou/erchete/internal/transit"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// parseIntParam parses an integer query parameter with validation
func parseIntParam(r *http.Request, name string, defaultVal, min, max int) int {
	str := r.URL.Query().Get(name)
	if str == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return defaultVal
	}

	if val < min {
		return min
	}
	if val > max {
		return max
	}

	return val
}

// writeFeedError maps pipeline errors onto HTTP statuses: an unreachable
// upstream is a 502, a feed we could not decode is a 500.
func writeFeedError(w http.ResponseWriter, err error) {
	var fetchErr *transit.FetchError
	var decodeErr *transit.DecodeError
	switch {
	case errors.As(err, &fetchErr):
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":   "Feed unreachable",
			"message": err.Error(),
		})
	case errors.As(err, &decodeErr):
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Feed malformed",
			"message": err.Error(),
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Failed to read feed",
			"message": err.Error(),
		})
	}
}

// parseCoords reads the required lat/lng query parameters, writing a
// 400 response and returning ok=false when either is missing or malformed.
func parseCoords(w http.ResponseWriter, r *http.Request) (lat, lng float64, ok bool) {
	latStr := r.URL.Query().Get("lat")
	lngStr := r.URL.Query().Get("lng")

	if latStr == "" || lngStr == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Missing required parameters",
			"message": "lat and lng query parameters are required",
		})
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Invalid latitude",
			"message": "lat must be a valid number",
		})
		return 0, 0, false
	}

	lng, err = strconv.ParseFloat(lngStr, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Invalid longitude",
			"message": "lng must be a valid number",
		})
		return 0, 0, false
	}

	return lat, lng, true
}
