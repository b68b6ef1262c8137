package handlers

import (
	"net/http"
)

const apiVersion = "1.0.0"

type RootHandler struct{}

func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

func (h *RootHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "erchete",
		"description": "Real-time bus arrivals for Cyprus public transport",
		"version":     apiVersion,
		"endpoints": map[string]string{
			"GET /api":                         "API information",
			"GET /health":                      "Health check",
			"GET /api/stops/near":              "Stops within a radius of lat/lng",
			"GET /api/stops/closest":           "Closest stops to lat/lng",
			"GET /api/stops/{stopId}":          "Stop details",
			"GET /api/stops/{stopId}/arrivals": "Live arrivals for a stop",
			"GET /api/alerts":                  "Active service alerts",
		},
	})
}

func (h *RootHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error":   "Route not found",
		"message": "Check the API root (/api) for available routes",
	})
}
