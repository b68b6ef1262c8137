// Package gtfs builds the consolidated stop catalog from GTFS static
// archives. One archive per agency; the builder merges them into a
// single GeoJSON FeatureCollection served by the API.
package gtfs

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spkg/bom"
)

// maxArchiveBytes caps a downloaded GTFS zip. The national feeds are a
// few MB each.
const maxArchiveBytes = 128 << 20

// StopRow is one stops.txt record. Coordinates and location_type stay
// strings here; agencies ship blank and garbage values and the builder
// decides row by row instead of failing the whole file.
type StopRow struct {
	ID            string `csv:"stop_id"`
	Code          string `csv:"stop_code"`
	Name          string `csv:"stop_name"`
	Lat           string `csv:"stop_lat"`
	Lon           string `csv:"stop_lon"`
	LocationType  string `csv:"location_type"`
	ParentStation string `csv:"parent_station"`
}

// RouteRow is one routes.txt record
type RouteRow struct {
	ID        string `csv:"route_id"`
	ShortName string `csv:"route_short_name"`
	LongName  string `csv:"route_long_name"`
}

// TripRow is one trips.txt record
type TripRow struct {
	ID      string `csv:"trip_id"`
	RouteID string `csv:"route_id"`
}

// StopTimeRow is the (trip, stop) pair from one stop_times.txt record
type StopTimeRow struct {
	TripID string `csv:"trip_id"`
	StopID string `csv:"stop_id"`
}

// Archive holds the parsed members of one agency's GTFS static zip.
// Only stops.txt is required; without the other members the builder
// simply skips route denormalization for that agency.
type Archive struct {
	Stops     []*StopRow
	Routes    []*RouteRow
	Trips     []*TripRow
	StopTimes []*StopTimeRow
}

// LoadArchive parses a GTFS static zip from memory
func LoadArchive(buf []byte) (*Archive, error) {
	r, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, fmt.Errorf("unzipping: %w", err)
	}

	members := map[string]io.ReadCloser{
		"stops.txt":      nil,
		"routes.txt":     nil,
		"trips.txt":      nil,
		"stop_times.txt": nil,
	}
	defer func() {
		for _, rc := range members {
			if rc != nil {
				rc.Close()
			}
		}
	}()

	for _, f := range r.File {
		// Some agencies wrap the files in a directory.
		if f.FileInfo().IsDir() {
			continue
		}
		path := strings.Split(f.Name, "/")
		name := strings.ToLower(path[len(path)-1])

		if _, wanted := members[name]; !wanted || members[name] != nil {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", f.Name, err)
		}
		members[name] = rc
	}

	if members["stops.txt"] == nil {
		return nil, fmt.Errorf("missing stops.txt")
	}

	// LazyCSVReader survives sloppy quoting; the BOM reader strips
	// unicode BOMs if present.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		return gocsv.LazyCSVReader(bom.NewReader(in))
	})

	archive := &Archive{}
	if err := gocsv.Unmarshal(members["stops.txt"], &archive.Stops); err != nil {
		return nil, fmt.Errorf("parsing stops.txt: %w", err)
	}

	if members["routes.txt"] != nil {
		if err := gocsv.Unmarshal(members["routes.txt"], &archive.Routes); err != nil {
			return nil, fmt.Errorf("parsing routes.txt: %w", err)
		}
	}
	if members["trips.txt"] != nil {
		if err := gocsv.Unmarshal(members["trips.txt"], &archive.Trips); err != nil {
			return nil, fmt.Errorf("parsing trips.txt: %w", err)
		}
	}
	if members["stop_times.txt"] != nil {
		// stop_times.txt dwarfs the rest of the archive; stream it
		// instead of unmarshaling in one go.
		err := gocsv.UnmarshalToCallbackWithError(members["stop_times.txt"], func(row *StopTimeRow) error {
			archive.StopTimes = append(archive.StopTimes, row)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("parsing stop_times.txt: %w", err)
		}
	}

	return archive, nil
}

// OpenArchive loads a GTFS static zip from disk
func OpenArchive(path string) (*Archive, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading archive: %w", err)
	}
	return LoadArchive(buf)
}

// FetchArchive downloads and parses a GTFS static zip
func FetchArchive(ctx context.Context, url string, timeout time.Duration) (*Archive, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading %s: unexpected status %d", url, resp.StatusCode)
	}

	buf, err := io.ReadAll(io.LimitReader(resp.Body, maxArchiveBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return LoadArchive(buf)
}
