package api

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/mkyprianou/erchete/internal/api/handlers"
	"github.com/mkyprianou/erchete/internal/location"
)

// NewRouter creates and configures the HTTP router with all routes and middleware
func NewRouter(
	stopSvc *location.StopService,
	arrivalSvc handlers.ArrivalProvider,
	alertSvc handlers.AlertProvider,
	webFS fs.FS,
) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(stopSvc)
	rootHandler := handlers.NewRootHandler()
	stopsHandler := handlers.NewStopsHandler(stopSvc)
	arrivalsHandler := handlers.NewArrivalsHandler(arrivalSvc, stopSvc)
	alertsHandler := handlers.NewAlertsHandler(alertSvc)

	// Serve frontend (if provided)
	if webFS != nil {
		mux.Handle("GET /", http.FileServer(http.FS(webFS)))
	} else {
		mux.HandleFunc("GET /", rootHandler.Index)
	}

	// Core routes
	mux.HandleFunc("GET /api", rootHandler.Index)
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Stop catalog routes
	mux.HandleFunc("GET /api/stops/near", stopsHandler.GetStopsNear)
	mux.HandleFunc("GET /api/stops/closest", stopsHandler.GetClosestStops)
	mux.HandleFunc("GET /api/stops/{stopId}", stopsHandler.GetStop)

	// Realtime routes
	mux.HandleFunc("GET /api/stops/{stopId}/arrivals", arrivalsHandler.GetStopArrivals)
	mux.HandleFunc("GET /api/alerts", alertsHandler.GetAlerts)

	// Apply middleware stack
	handler := Chain(mux,
		Recovery,
		Logging,
		CORS,
		Timeout(15*time.Second),
	)

	return handler
}
