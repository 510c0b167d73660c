package openapi_server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/natevvv/osm-district-roads/pkg/area"
	"github.com/natevvv/osm-district-roads/pkg/road"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	north, err := area.New("North", orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}})
	require.NoError(t, err)
	east, err := area.New("North East", orb.Polygon{{{5, 5}, {10, 5}, {10, 10}, {5, 10}, {5, 5}}})
	require.NoError(t, err)

	records := []road.Record{
		{Name: "Oak Avenue", RoadType: "Avenue", Coordinates: []orb.LineString{{{1, 1}, {6, 6}}},
			Length: 120, SegmentCount: 2, Size: road.Large, Areas: []string{"North"}, SubAreas: []string{"North East"}},
		{Name: "Elm Lane", RoadType: "Lane", Coordinates: []orb.LineString{{{20, 20}, {21, 21}}},
			Length: 40, SegmentCount: 1, Size: road.Small, Areas: []string{}, SubAreas: []string{}},
		{Name: "Main Street / Route 9", Coordinates: []orb.LineString{{{30, 30}, {31, 31}}},
			Length: 80, SegmentCount: 3, Size: road.Medium, Areas: []string{}, SubAreas: []string{}},
	}
	service := NewDefaultApiService(records, area.NewResolver([]*area.Area{north}, nil), area.NewResolver([]*area.Area{east}, area.Planar))
	srv := httptest.NewServer(NewRouter(NewDefaultApiController(service)))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp.StatusCode
}

func TestListRoads(t *testing.T) {
	srv := testServer(t)

	var list RoadList
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/roads", &list))
	require.Len(t, list.Roads, 3)
	assert.Equal(t, "Elm Lane", list.Roads[0].Name)
	assert.Equal(t, []string{}, list.Roads[0].Areas)
	assert.Equal(t, "Main Street / Route 9", list.Roads[1].Name)
	assert.Equal(t, "Oak Avenue", list.Roads[2].Name)

	list = RoadList{}
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/roads?area=North+East", &list))
	require.Len(t, list.Roads, 1)
	assert.Equal(t, "Oak Avenue", list.Roads[0].Name)

	list = RoadList{}
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/roads?size=small", &list))
	require.Len(t, list.Roads, 1)
	assert.Equal(t, "Elm Lane", list.Roads[0].Name)

	var msg string
	assert.Equal(t, http.StatusBadRequest, getJSON(t, srv.URL+"/roads?size=huge", &msg))
}

func TestGetRoad(t *testing.T) {
	srv := testServer(t)

	var rec road.Record
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/roads/Oak%20Avenue", &rec))
	assert.Equal(t, "Avenue", rec.RoadType)
	assert.Equal(t, []orb.LineString{{{1, 1}, {6, 6}}}, rec.Coordinates)

	var msg string
	assert.Equal(t, http.StatusNotFound, getJSON(t, srv.URL+"/roads/Nowhere", &msg))
}

func TestGetRoadWithSlashInName(t *testing.T) {
	srv := testServer(t)

	name, ok := road.NormalizeName(road.TagValue{"Main Street", "Route 9"})
	require.True(t, ok)
	require.Equal(t, "Main Street / Route 9", name)

	var rec road.Record
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/roads/"+url.PathEscape(name), &rec))
	assert.Equal(t, name, rec.Name)
	assert.Equal(t, 3, rec.SegmentCount)
}

func TestListAreas(t *testing.T) {
	srv := testServer(t)

	var names AreaNames
	assert.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/areas", &names))
	assert.Equal(t, []string{"North"}, names.Areas)
	assert.Equal(t, []string{"North East"}, names.SubAreas)
}

func TestLookupAreas(t *testing.T) {
	srv := testServer(t)

	post := func(body string, v any) int {
		resp, err := http.Post(srv.URL+"/areas/lookup", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
		return resp.StatusCode
	}

	var names AreaNames
	assert.Equal(t, http.StatusOK, post(`{"lat": 7, "lon": 7}`, &names))
	assert.Equal(t, []string{"North"}, names.Areas)
	assert.Equal(t, []string{"North East"}, names.SubAreas)

	names = AreaNames{}
	assert.Equal(t, http.StatusOK, post(`{"lat": 2, "lon": 3}`, &names))
	assert.Equal(t, []string{"North"}, names.Areas)
	assert.Equal(t, []string{}, names.SubAreas)

	var msg string
	assert.Equal(t, http.StatusUnprocessableEntity, post(`{"lat": 1}`, &msg))
	assert.Equal(t, http.StatusBadRequest, post(`{"lat": 1, "lon": 2, "zoom": 3}`, &msg))
	assert.Equal(t, http.StatusBadRequest, post(`{"lat": 91, "lon": 0}`, &msg))
}
