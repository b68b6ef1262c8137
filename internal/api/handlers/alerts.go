package handlers

import (
	"net/http"

	"github.com/mkyprianou/erchete/internal/transit"
)

type AlertsHandler struct {
	alerts AlertProvider
}

func NewAlertsHandler(alerts AlertProvider) *AlertsHandler {
	return &AlertsHandler{alerts: alerts}
}

// GetAlerts returns active service alerts from the feed
// GET /api/alerts?route=<route>
func (h *AlertsHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	route := r.URL.Query().Get("route")

	alerts, err := h.alerts.Alerts(r.Context(), route)
	if err != nil {
		writeFeedError(w, err)
		return
	}

	if alerts == nil {
		alerts = []transit.ServiceAlert{}
	}

	response := map[string]any{
		"success": true,
		"alerts":  alerts,
		"count":   len(alerts),
	}
	if route != "" {
		response["route"] = route
	}

	writeJSON(w, http.StatusOK, response)
}
