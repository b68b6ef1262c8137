// Package models defines shared data types
package models

// Stop represents one bus stop from the consolidated catalog
type Stop struct {
	ID            string   `json:"stop_id"`
	OrigID        string   `json:"orig_stop_id"`
	Agency        string   `json:"agency"`
	Name          string   `json:"name"`
	Code          string   `json:"code,omitempty"`
	Lat           float64  `json:"lat"`
	Lng           float64  `json:"lng"`
	LocationType  int      `json:"location_type"`
	ParentStation string   `json:"parent_station,omitempty"`
	Routes        []string `json:"routes_serving,omitempty"`
}

// StopWithDistance is a Stop with distance from a reference point
type StopWithDistance struct {
	Stop
	DistanceMeters float64 `json:"distance_meters"`
	DistanceKm     float64 `json:"distance_km"`
}

// Arrival is one projected arrival at a stop. Pointer fields serialize
// as null when the feed carried no value, so callers can tell "no data"
// apart from a real zero.
type Arrival struct {
	Route      *string `json:"route"`
	Vehicle    *string `json:"vehicle"`
	EtaMinutes *int    `json:"eta_minutes"`
}
