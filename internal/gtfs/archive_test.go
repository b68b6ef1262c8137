package gtfs

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, files map[string][]string) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for filename, content := range files {
		f, err := w.Create(filename)
		require.NoError(t, err)
		_, err = f.Write([]byte(strings.Join(content, "\n")))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func nicosiaFeed() map[string][]string {
	return map[string][]string{
		"stops.txt": {
			"stop_id,stop_code,stop_name,stop_lat,stop_lon,location_type,parent_station",
			"1001,1001,Plateia Solomou,35.172500,33.359500,0,",
			"1002,1002,Lidras,35.170300,33.361000,,",
			"9000,,Kentrikos Stathmos,35.171000,33.358000,1,",
		},
		"routes.txt": {
			"route_id,route_short_name,route_long_name",
			"r150,150,Lefkosia - Aglantzia",
			"r259,259,Lefkosia Kentro",
		},
		"trips.txt": {
			"trip_id,route_id,service_id",
			"t1,r150,wk",
			"t2,r259,wk",
		},
		"stop_times.txt": {
			"trip_id,arrival_time,departure_time,stop_id,stop_sequence",
			"t1,08:00:00,08:00:00,1001,1",
			"t1,08:05:00,08:05:00,1002,2",
			"t2,09:00:00,09:00:00,1001,1",
		},
	}
}

func TestLoadArchive(t *testing.T) {
	archive, err := LoadArchive(buildZip(t, nicosiaFeed()))
	require.NoError(t, err)

	require.Len(t, archive.Stops, 3)
	assert.Equal(t, "1001", archive.Stops[0].ID)
	assert.Equal(t, "Plateia Solomou", archive.Stops[0].Name)
	assert.Equal(t, "35.172500", archive.Stops[0].Lat)

	require.Len(t, archive.Routes, 2)
	assert.Equal(t, "150", archive.Routes[0].ShortName)

	require.Len(t, archive.Trips, 2)
	require.Len(t, archive.StopTimes, 3)
	assert.Equal(t, "1001", archive.StopTimes[0].StopID)
}

func TestLoadArchiveStripsBOM(t *testing.T) {
	files := nicosiaFeed()
	files["stops.txt"][0] = "\xEF\xBB\xBF" + files["stops.txt"][0]

	archive, err := LoadArchive(buildZip(t, files))
	require.NoError(t, err)
	require.Len(t, archive.Stops, 3)
	assert.Equal(t, "1001", archive.Stops[0].ID)
}

func TestLoadArchiveNestedDirectories(t *testing.T) {
	files := map[string][]string{}
	for name, content := range nicosiaFeed() {
		files["gtfs/"+name] = content
	}

	archive, err := LoadArchive(buildZip(t, files))
	require.NoError(t, err)
	assert.Len(t, archive.Stops, 3)
}

func TestLoadArchiveMissingStops(t *testing.T) {
	files := nicosiaFeed()
	delete(files, "stops.txt")

	_, err := LoadArchive(buildZip(t, files))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stops.txt")
}

func TestLoadArchiveOptionalMembers(t *testing.T) {
	files := nicosiaFeed()
	delete(files, "routes.txt")
	delete(files, "trips.txt")
	delete(files, "stop_times.txt")

	archive, err := LoadArchive(buildZip(t, files))
	require.NoError(t, err)
	assert.Len(t, archive.Stops, 3)
	assert.Empty(t, archive.Routes)
	assert.Empty(t, archive.StopTimes)
}

func TestLoadArchiveNotAZip(t *testing.T) {
	_, err := LoadArchive([]byte("definitely not a zip"))
	require.Error(t, err)
}

func TestFetchArchive(t *testing.T) {
	payload := buildZip(t, nicosiaFeed())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	archive, err := FetchArchive(context.Background(), srv.URL, 2*time.Second)
	require.NoError(t, err)
	assert.Len(t, archive.Stops, 3)
}

func TestFetchArchiveBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := FetchArchive(context.Background(), srv.URL, 2*time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
