package transit

import (
	"context"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
)

// ServiceAlert is an active disruption notice carried by the feed
type ServiceAlert struct {
	ID          string   `json:"id"`
	Routes      []string `json:"routes"`
	Header      string   `json:"header"`
	Description string   `json:"description,omitempty"`
}

// Alerts returns the active service alerts in the feed, optionally
// filtered to a single route. Alerts share the feed endpoint with trip
// updates but are cached separately so the two age independently.
func (s *ArrivalService) Alerts(ctx context.Context, route string) ([]ServiceAlert, error) {
	all, ok := s.alerts.Get("all")
	if !ok {
		data, err := s.feed.Fetch(ctx)
		if err != nil {
			return nil, err
		}

		feed, err := DecodeFeed(data)
		if err != nil {
			return nil, err
		}

		all = ExtractAlerts(feed, time.Now())
		s.alerts.Set("all", all)
	}

	if route == "" {
		return all, nil
	}

	filtered := make([]ServiceAlert, 0, len(all))
	for _, alert := range all {
		for _, r := range alert.Routes {
			if r == route {
				filtered = append(filtered, alert)
				break
			}
		}
	}
	return filtered, nil
}

// ExtractAlerts collects the alerts active at now from a decoded feed.
// Alerts without a header text are dropped; an alert with no active
// periods is considered always active.
func ExtractAlerts(feed *gtfs.FeedMessage, now time.Time) []ServiceAlert {
	var alerts []ServiceAlert
	nowSec := now.Unix()

	for _, entity := range feed.GetEntity() {
		alert := entity.GetAlert()
		if alert == nil {
			continue
		}

		active := len(alert.GetActivePeriod()) == 0
		for _, period := range alert.GetActivePeriod() {
			start := int64(period.GetStart())
			end := int64(period.GetEnd())
			if nowSec >= start && (end == 0 || nowSec < end) {
				active = true
				break
			}
		}
		if !active {
			continue
		}

		header := translatedText(alert.GetHeaderText())
		if header == "" {
			continue
		}

		var routes []string
		seen := make(map[string]bool)
		for _, ie := range alert.GetInformedEntity() {
			if routeID := ie.GetRouteId(); routeID != "" && !seen[routeID] {
				seen[routeID] = true
				routes = append(routes, routeID)
			}
		}

		alerts = append(alerts, ServiceAlert{
			ID:          entity.GetId(),
			Routes:      routes,
			Header:      header,
			Description: translatedText(alert.GetDescriptionText()),
		})
	}

	return alerts
}

// translatedText picks the English translation when one exists,
// otherwise the first. The Cyprus feeds publish Greek first and
// English second.
func translatedText(ts *gtfs.TranslatedString) string {
	if ts == nil {
		return ""
	}
	for _, t := range ts.GetTranslation() {
		if t.GetLanguage() == "en" || t.GetLanguage() == "" {
			return t.GetText()
		}
	}
	if len(ts.GetTranslation()) > 0 {
		return ts.GetTranslation()[0].GetText()
	}
	return ""
}
