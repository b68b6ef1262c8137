package gtfs

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mkyprianou/erchete/internal/models"
)

const (
	catalogName    = "Cyprus Public Transport Stops"
	catalogSource  = "Cyprus National Access Point / MotionBusCard"
	catalogLicense = "CC BY 4.0"
)

// Options controls catalog assembly
type Options struct {
	// Prefix namespaces stop IDs with the agency code so catalogs from
	// overlapping feeds cannot collide.
	Prefix bool
	// RouteIndex joins routes/trips/stop_times into a routes_serving
	// list per stop. Skipping it is much faster for a quick preview.
	RouteIndex bool
}

// Dataset pairs an agency code with its parsed archive
type Dataset struct {
	Agency  string
	Archive *Archive
}

// Build merges the datasets into one GeoJSON FeatureCollection. Stops
// are kept when they are boardable (location_type 0 or 1) and carry
// plausible coordinates; when the same ID appears twice the first
// dataset wins.
func Build(datasets []Dataset, opts Options) (*models.StopsCollection, error) {
	if len(datasets) == 0 {
		return nil, fmt.Errorf("no datasets to build from")
	}

	seen := make(map[string]bool)
	agencySet := make(map[string]bool)
	features := []models.StopFeature{}

	for _, ds := range datasets {
		agencySet[ds.Agency] = true

		var stopRoutes map[string][]string
		if opts.RouteIndex {
			stopRoutes = routesServing(ds.Archive)
		}

		for _, row := range ds.Archive.Stops {
			if row.ID == "" {
				continue
			}
			lat, lng, locationType, ok := cleanStop(row)
			if !ok {
				continue
			}

			id := row.ID
			parent := strings.TrimSpace(row.ParentStation)
			if opts.Prefix {
				id = ds.Agency + "_" + id
				if parent != "" {
					parent = ds.Agency + "_" + parent
				}
			}
			if seen[id] {
				continue
			}
			seen[id] = true

			features = append(features, models.StopFeature{
				Type: "Feature",
				Geometry: models.PointGeometry{
					Type:        "Point",
					Coordinates: [2]float64{round6(lng), round6(lat)},
				},
				Properties: models.StopProperties{
					StopID:        id,
					OrigStopID:    row.ID,
					Agency:        ds.Agency,
					Name:          strings.TrimSpace(row.Name),
					Code:          strings.TrimSpace(row.Code),
					LocationType:  locationType,
					ParentStation: parent,
					RoutesServing: stopRoutes[row.ID],
				},
			})
		}
	}

	agencies := make([]string, 0, len(agencySet))
	for agency := range agencySet {
		agencies = append(agencies, agency)
	}
	sort.Strings(agencies)

	return &models.StopsCollection{
		Type: "FeatureCollection",
		Metadata: models.CatalogMetadata{
			Name:          catalogName,
			DateGenerated: time.Now().UTC().Format("2006-01-02"),
			GTFSSource:    catalogSource,
			License:       catalogLicense,
			Agencies:      agencies,
			StopCount:     len(features),
		},
		Features: features,
	}, nil
}

// cleanStop validates one stops.txt row. Blank location_type means 0;
// anything but a boardable stop (0) or station (1) is dropped, as are
// rows with unparseable, out-of-range, or null-island coordinates.
func cleanStop(row *StopRow) (lat, lng float64, locationType int, ok bool) {
	lt := strings.TrimSpace(row.LocationType)
	if lt != "" {
		n, err := strconv.Atoi(lt)
		if err != nil {
			return 0, 0, 0, false
		}
		locationType = n
	}
	if locationType != 0 && locationType != 1 {
		return 0, 0, 0, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(row.Lat), 64)
	if err != nil {
		return 0, 0, 0, false
	}
	lng, err = strconv.ParseFloat(strings.TrimSpace(row.Lon), 64)
	if err != nil {
		return 0, 0, 0, false
	}
	if lat == 0 && lng == 0 {
		return 0, 0, 0, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, 0, false
	}

	return lat, lng, locationType, true
}

// routesServing joins routes -> trips -> stop_times into a sorted,
// de-duplicated list of route names per stop ID.
func routesServing(a *Archive) map[string][]string {
	routeName := make(map[string]string, len(a.Routes))
	for _, r := range a.Routes {
		if r.ID == "" {
			continue
		}
		name := strings.TrimSpace(r.ShortName)
		if name == "" {
			name = strings.TrimSpace(r.LongName)
		}
		if name == "" {
			name = r.ID
		}
		routeName[r.ID] = name
	}

	tripRoute := make(map[string]string, len(a.Trips))
	for _, t := range a.Trips {
		if t.ID != "" && t.RouteID != "" {
			tripRoute[t.ID] = t.RouteID
		}
	}

	byStop := make(map[string]map[string]bool)
	for _, st := range a.StopTimes {
		name, ok := routeName[tripRoute[st.TripID]]
		if !ok {
			continue
		}
		if byStop[st.StopID] == nil {
			byStop[st.StopID] = make(map[string]bool)
		}
		byStop[st.StopID][name] = true
	}

	result := make(map[string][]string, len(byStop))
	for stopID, names := range byStop {
		list := make([]string, 0, len(names))
		for name := range names {
			list = append(list, name)
		}
		sort.Strings(list)
		result[stopID] = list
	}
	return result
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
