package models

// GeoJSON types for the consolidated stop catalog. The stopsgen tool
// writes this format and the location service reads it back, so both
// sides share these definitions.

// StopsCollection is the top-level FeatureCollection of the catalog file
type StopsCollection struct {
	Type     string          `json:"type"`
	Metadata CatalogMetadata `json:"metadata"`
	Features []StopFeature   `json:"features"`
}

// CatalogMetadata describes the provenance of a generated catalog
type CatalogMetadata struct {
	Name          string   `json:"name"`
	DateGenerated string   `json:"date_generated"`
	GTFSSource    string   `json:"gtfs_source"`
	License       string   `json:"license"`
	Agencies      []string `json:"agencies"`
	StopCount     int      `json:"stop_count"`
}

// StopFeature is one stop as a GeoJSON Point feature
type StopFeature struct {
	Type       string         `json:"type"`
	Geometry   PointGeometry  `json:"geometry"`
	Properties StopProperties `json:"properties"`
}

// PointGeometry holds coordinates in GeoJSON order: [lng, lat]
type PointGeometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// StopProperties carries the catalog attributes of a stop feature
type StopProperties struct {
	StopID        string   `json:"stop_id"`
	OrigStopID    string   `json:"orig_stop_id"`
	Agency        string   `json:"agency"`
	Name          string   `json:"name"`
	Code          string   `json:"code,omitempty"`
	LocationType  int      `json:"location_type"`
	ParentStation string   `json:"parent_station,omitempty"`
	RoutesServing []string `json:"routes_serving,omitempty"`
}

// Stop converts a feature into the flat Stop shape used by the API
func (f StopFeature) Stop() Stop {
	return Stop{
		ID:            f.Properties.StopID,
		OrigID:        f.Properties.OrigStopID,
		Agency:        f.Properties.Agency,
		Name:          f.Properties.Name,
		Code:          f.Properties.Code,
		Lat:           f.Geometry.Coordinates[1],
		Lng:           f.Geometry.Coordinates[0],
		LocationType:  f.Properties.LocationType,
		ParentStation: f.Properties.ParentStation,
		Routes:        f.Properties.RoutesServing,
	}
}
