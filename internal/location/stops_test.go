package location

import (
	"os"
	"path/filepath"
	"testing"
)

const testCatalog = `{
  "type": "FeatureCollection",
  "metadata": {
    "name": "Cyprus Public Transport Stops",
    "date_generated": "2026-03-01",
    "gtfs_source": "Cyprus National Access Point / MotionBusCard",
    "license": "CC BY 4.0",
    "agencies": ["LEL", "NIC"],
    "stop_count": 3
  },
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [33.3595, 35.1725]},
      "properties": {
        "stop_id": "NIC_1001", "orig_stop_id": "1001", "agency": "NIC",
        "name": "Plateia Solomou", "code": "1001", "location_type": 0,
        "routes_serving": ["150", "259"]
      }
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [33.3610, 35.1703]},
      "properties": {
        "stop_id": "NIC_1002", "orig_stop_id": "1002", "agency": "NIC",
        "name": "Lidras", "code": "1002", "location_type": 0,
        "routes_serving": ["150"]
      }
    },
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [33.0410, 34.6720]},
      "properties": {
        "stop_id": "LEL_2001", "orig_stop_id": "2001", "agency": "LEL",
        "name": "Palio Limani", "code": "2001", "location_type": 0,
        "routes_serving": ["30A"]
      }
    }
  ]
}`

func writeCatalog(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stops.geojson")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func loadedService(t *testing.T) *StopService {
	t.Helper()
	svc := NewStopService()
	if err := svc.Load(writeCatalog(t, testCatalog)); err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return svc
}

func TestLoadCatalog(t *testing.T) {
	svc := loadedService(t)

	if !svc.IsLoaded() {
		t.Error("IsLoaded() = false after Load")
	}
	if got := svc.Count(); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
	if got := svc.Metadata().License; got != "CC BY 4.0" {
		t.Errorf("Metadata().License = %q", got)
	}
}

func TestLoadCatalogErrors(t *testing.T) {
	svc := NewStopService()

	if err := svc.Load(filepath.Join(t.TempDir(), "missing.geojson")); err == nil {
		t.Error("expected error for missing file")
	}
	if err := svc.Load(writeCatalog(t, `{"type": "Feature"}`)); err == nil {
		t.Error("expected error for non-FeatureCollection input")
	}
	if err := svc.Load(writeCatalog(t, `{{`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestGetByID(t *testing.T) {
	svc := loadedService(t)

	stop, ok := svc.GetByID("NIC_1001")
	if !ok {
		t.Fatal("catalog ID lookup failed")
	}
	if stop.Name != "Plateia Solomou" {
		t.Errorf("Name = %q", stop.Name)
	}

	// The bare per-agency code resolves too.
	stop, ok = svc.GetByID("2001")
	if !ok {
		t.Fatal("orig ID lookup failed")
	}
	if stop.ID != "LEL_2001" {
		t.Errorf("ID = %q, want LEL_2001", stop.ID)
	}

	if _, ok := svc.GetByID("nope"); ok {
		t.Error("unknown ID should not resolve")
	}
}

func TestFindNearby(t *testing.T) {
	svc := loadedService(t)

	// Central Nicosia; the Limassol stop is ~60km out.
	results := svc.FindNearby(35.1720, 33.3600, 1000)
	if len(results) != 2 {
		t.Fatalf("FindNearby returned %d stops, want 2", len(results))
	}
	if results[0].ID != "NIC_1001" {
		t.Errorf("closest = %s, want NIC_1001", results[0].ID)
	}
	if results[0].DistanceMeters >= results[1].DistanceMeters {
		t.Error("results not sorted by distance")
	}

	if got := svc.FindNearby(35.1720, 33.3600, 10); len(got) != 0 {
		t.Errorf("10m radius returned %d stops", len(got))
	}
}

func TestFindClosest(t *testing.T) {
	svc := loadedService(t)

	results := svc.FindClosest(35.1720, 33.3600, 2)
	if len(results) != 2 {
		t.Fatalf("FindClosest returned %d stops, want 2", len(results))
	}
	if results[0].ID != "NIC_1001" || results[1].ID != "NIC_1002" {
		t.Errorf("order = %s, %s", results[0].ID, results[1].ID)
	}

	// No limit returns everything, still sorted.
	all := svc.FindClosest(35.1720, 33.3600, 0)
	if len(all) != 3 {
		t.Fatalf("FindClosest(0) returned %d stops", len(all))
	}
	if all[2].ID != "LEL_2001" {
		t.Errorf("farthest = %s, want LEL_2001", all[2].ID)
	}
}

func TestAgencies(t *testing.T) {
	svc := loadedService(t)

	agencies := svc.Agencies()
	if len(agencies) != 2 || agencies[0] != "LEL" || agencies[1] != "NIC" {
		t.Errorf("Agencies() = %v", agencies)
	}
}

func TestHaversine(t *testing.T) {
	// Nicosia to Limassol is roughly 60km as the crow flies.
	d := Haversine(35.1725, 33.3595, 34.6720, 33.0410)
	if d < 55000 || d > 70000 {
		t.Errorf("Haversine = %.0fm, want between 55km and 70km", d)
	}

	if d := Haversine(35.17, 33.36, 35.17, 33.36); d != 0 {
		t.Errorf("zero-distance Haversine = %f", d)
	}
}
