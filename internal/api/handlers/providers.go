package handlers

import (
	"context"

	"github.com/mkyprianou/erchete/internal/models"
	"github.com/mkyprianou/erchete/internal/transit"
)

// ArrivalProvider abstracts the realtime arrivals source for testability.
type ArrivalProvider interface {
	ArrivalsForStop(ctx context.Context, stopID string, nowMillis int64) ([]models.Arrival, error)
}

// AlertProvider abstracts the service alerts source.
type AlertProvider interface {
	Alerts(ctx context.Context, route string) ([]transit.ServiceAlert, error)
}
