// Package location handles the stop catalog and proximity lookups
package location

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/mkyprianou/erchete/internal/models"
)

// StopService manages the consolidated stop catalog built by stopsgen
type StopService struct {
	stops    []models.Stop
	byID     map[string]int
	byOrigID map[string]int
	meta     models.CatalogMetadata
	mu       sync.RWMutex
	loaded   bool
}

// NewStopService creates a new stop service
func NewStopService() *StopService {
	return &StopService{
		byID:     make(map[string]int),
		byOrigID: make(map[string]int),
	}
}

// Load reads the stop catalog from a GeoJSON FeatureCollection file
func (s *StopService) Load(filepath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath)
	if err != nil {
		return fmt.Errorf("reading stops file: %w", err)
	}

	var collection models.StopsCollection
	if err := json.Unmarshal(data, &collection); err != nil {
		return fmt.Errorf("parsing stops GeoJSON: %w", err)
	}
	if collection.Type != "FeatureCollection" {
		return fmt.Errorf("stops file is not a FeatureCollection (got %q)", collection.Type)
	}

	s.stops = s.stops[:0]
	s.byID = make(map[string]int, len(collection.Features))
	s.byOrigID = make(map[string]int, len(collection.Features))
	for _, feature := range collection.Features {
		stop := feature.Stop()
		if stop.ID == "" {
			continue
		}

		idx := len(s.stops)
		s.stops = append(s.stops, stop)
		s.byID[stop.ID] = idx
		// First agency wins when bare stop codes collide across feeds,
		// mirroring how the catalog itself resolves duplicates.
		if stop.OrigID != "" {
			if _, exists := s.byOrigID[stop.OrigID]; !exists {
				s.byOrigID[stop.OrigID] = idx
			}
		}
	}

	s.meta = collection.Metadata
	s.loaded = true
	return nil
}

// FindNearby returns stops within a radius (meters) of a point, closest first
func (s *StopService) FindNearby(lat, lng, radiusMeters float64) []models.StopWithDistance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []models.StopWithDistance
	for _, stop := range s.stops {
		dist := Haversine(lat, lng, stop.Lat, stop.Lng)
		if dist <= radiusMeters {
			results = append(results, withDistance(stop, dist))
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceMeters < results[j].DistanceMeters
	})

	return results
}

// FindClosest returns the N closest stops to a point regardless of radius
func (s *StopService) FindClosest(lat, lng float64, limit int) []models.StopWithDistance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]models.StopWithDistance, 0, len(s.stops))
	for _, stop := range s.stops {
		results = append(results, withDistance(stop, Haversine(lat, lng, stop.Lat, stop.Lng)))
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceMeters < results[j].DistanceMeters
	})

	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	return results
}

// GetByID returns a stop by its catalog ID, falling back to the
// original per-agency ID so callers can use either form.
func (s *StopService) GetByID(id string) (models.Stop, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx, ok := s.byID[id]; ok {
		return s.stops[idx], true
	}
	if idx, ok := s.byOrigID[id]; ok {
		return s.stops[idx], true
	}
	return models.Stop{}, false
}

// Agencies returns the unique agency codes present in the catalog
func (s *StopService) Agencies() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var agencies []string
	for _, stop := range s.stops {
		if stop.Agency != "" && !seen[stop.Agency] {
			seen[stop.Agency] = true
			agencies = append(agencies, stop.Agency)
		}
	}
	sort.Strings(agencies)
	return agencies
}

// Metadata returns the catalog's provenance block
func (s *StopService) Metadata() models.CatalogMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta
}

// Count returns the number of loaded stops
func (s *StopService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stops)
}

// IsLoaded returns true if data has been loaded
func (s *StopService) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func withDistance(stop models.Stop, meters float64) models.StopWithDistance {
	return models.StopWithDistance{
		Stop:           stop,
		DistanceMeters: meters,
		DistanceKm:     MetersToKilometers(meters),
	}
}
