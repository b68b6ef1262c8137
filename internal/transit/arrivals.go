package transit

import (
	"sort"
	"strings"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
)

// ArrivalCandidate is one stop-time update that matched the requested
// stop, normalized to epoch milliseconds. Nil fields mean the feed
// carried no value.
type ArrivalCandidate struct {
	Route           *string
	VehicleID       *string
	TimestampMillis *int64
}

// ExtractArrivals walks a decoded feed and returns the arrival
// candidates for the given stop, ordered ascending by timestamp with
// timestamp-less candidates first. Matching tolerates agency-prefixed
// stop IDs: the target is compared against the last colon-delimited
// segment of each feed stop ID. No match yields an empty slice, never
// an error.
func ExtractArrivals(feed *gtfs.FeedMessage, stopID string) []ArrivalCandidate {
	vehicles := vehiclesByTrip(feed)

	var candidates []ArrivalCandidate
	for _, entity := range feed.GetEntity() {
		tripUpdate := entity.GetTripUpdate()
		if tripUpdate == nil {
			continue
		}

		var route *string
		if trip := tripUpdate.GetTrip(); trip != nil && trip.RouteId != nil {
			r := trip.GetRouteId()
			route = &r
		}
		vehicleID := resolveVehicle(entity, tripUpdate, vehicles)

		for _, update := range tripUpdate.GetStopTimeUpdate() {
			if update.StopId == nil {
				continue
			}
			if !matchStopID(update.GetStopId(), stopID) {
				continue
			}

			candidates = append(candidates, ArrivalCandidate{
				Route:           route,
				VehicleID:       vehicleID,
				TimestampMillis: stopTimeMillis(update),
			})
		}
	}

	// Stable: ties and timestamp-less candidates keep discovery order.
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i].TimestampMillis, candidates[j].TimestampMillis
		if a == nil {
			return b != nil
		}
		if b == nil {
			return false
		}
		return *a < *b
	})

	return candidates
}

// matchStopID compares the target against the last colon-delimited
// segment of a feed stop ID, so "12345" matches both "12345" and
// "CY:12345". Case-sensitive, exact on the segment.
func matchStopID(feedStopID, target string) bool {
	if i := strings.LastIndexByte(feedStopID, ':'); i >= 0 {
		feedStopID = feedStopID[i+1:]
	}
	return feedStopID == target
}

// stopTimeMillis picks the update's time with arrival taking priority
// over departure and converts epoch seconds to milliseconds. Nil when
// neither event carries a time; the candidate is still emitted.
func stopTimeMillis(update *gtfs.TripUpdate_StopTimeUpdate) *int64 {
	event := update.GetArrival()
	if event == nil || event.Time == nil {
		event = update.GetDeparture()
	}
	if event == nil || event.Time == nil {
		return nil
	}
	ms := event.GetTime() * 1000
	return &ms
}

// vehiclesByTrip indexes vehicle IDs by trip ID in one pass over the
// feed. A vehicle descriptor on the trip update itself takes priority;
// vehicle-position entities fill the gaps. Feeds commonly publish trip
// updates and vehicle positions as separate entities correlated only by
// trip ID, so reading the same entity alone would under-report vehicles.
func vehiclesByTrip(feed *gtfs.FeedMessage) map[string]string {
	byTrip := make(map[string]string)

	for _, entity := range feed.GetEntity() {
		tripUpdate := entity.GetTripUpdate()
		if tripUpdate == nil {
			continue
		}
		tripID := tripUpdate.GetTrip().GetTripId()
		vehicleID := tripUpdate.GetVehicle().GetId()
		if tripID == "" || vehicleID == "" {
			continue
		}
		byTrip[tripID] = vehicleID
	}

	for _, entity := range feed.GetEntity() {
		position := entity.GetVehicle()
		if position == nil {
			continue
		}
		tripID := position.GetTrip().GetTripId()
		vehicleID := position.GetVehicle().GetId()
		if tripID == "" || vehicleID == "" {
			continue
		}
		if _, ok := byTrip[tripID]; !ok {
			byTrip[tripID] = vehicleID
		}
	}

	return byTrip
}

// resolveVehicle looks the trip up in the index and falls back to a
// vehicle position embedded in the same entity for feeds that publish
// them together without trip IDs.
func resolveVehicle(entity *gtfs.FeedEntity, tripUpdate *gtfs.TripUpdate, byTrip map[string]string) *string {
	if tripID := tripUpdate.GetTrip().GetTripId(); tripID != "" {
		if id, ok := byTrip[tripID]; ok {
			v := id
			return &v
		}
	}
	if id := entity.GetVehicle().GetVehicle().GetId(); id != "" {
		v := id
		return &v
	}
	return nil
}
