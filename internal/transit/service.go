package transit

import (
	"context"
	"time"

	"github.com/mkyprianou/erchete/internal/cache"
	"github.com/mkyprianou/erchete/internal/models"
)

// ArrivalService runs the fetch, decode, extract, project pipeline for
// the serving layer. Extracted candidates are cached per stop for a
// short TTL so bursts of requests share one upstream fetch; projection
// always runs against the caller's reference time, so cached snapshots
// never leak stale ETAs.
type ArrivalService struct {
	feed      *FeedClient
	snapshots *cache.Cache[[]ArrivalCandidate]
	alerts    *cache.Cache[[]ServiceAlert]
}

// NewArrivalService creates a service for one feed endpoint. A zero or
// negative cacheTTL disables snapshot caching.
func NewArrivalService(feedURL string, timeout, cacheTTL time.Duration) *ArrivalService {
	return &ArrivalService{
		feed:      NewFeedClient(feedURL, timeout),
		snapshots: cache.New[[]ArrivalCandidate](cacheTTL),
		alerts:    cache.New[[]ServiceAlert](cacheTTL),
	}
}

// ArrivalsForStop returns the projected arrivals for a stop, ordered as
// ExtractArrivals leaves them: unknown times first, then soonest to
// latest. The result is never nil on success; no matches is an empty
// slice. Errors are the typed *FetchError / *DecodeError from the
// pipeline, unchanged.
func (s *ArrivalService) ArrivalsForStop(ctx context.Context, stopID string, nowMillis int64) ([]models.Arrival, error) {
	candidates, ok := s.snapshots.Get(stopID)
	if !ok {
		data, err := s.feed.Fetch(ctx)
		if err != nil {
			return nil, err
		}

		feed, err := DecodeFeed(data)
		if err != nil {
			return nil, err
		}

		candidates = ExtractArrivals(feed, stopID)
		s.snapshots.Set(stopID, candidates)
	}

	arrivals := make([]models.Arrival, 0, len(candidates))
	for _, c := range candidates {
		arrivals = append(arrivals, models.Arrival{
			Route:      c.Route,
			Vehicle:    c.VehicleID,
			EtaMinutes: MinutesAway(c.TimestampMillis, nowMillis),
		})
	}
	return arrivals, nil
}

// FeedURL reports the upstream endpoint, for diagnostics.
func (s *ArrivalService) FeedURL() string { return s.feed.URL() }

// Close releases the snapshot caches.
func (s *ArrivalService) Close() {
	s.snapshots.Close()
	s.alerts.Close()
}
