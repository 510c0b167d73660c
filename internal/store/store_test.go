package store

import (
	"context"
	"testing"

	"github.com/natevvv/osm-district-roads/internal/district"
	"github.com/natevvv/osm-district-roads/pkg/road"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var square = orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func testUpload() *district.Upload {
	owner := int64(1)
	return &district.Upload{
		District: district.District{Key: "old-town", Name: "Old Town", Status: district.Active, RoadCount: 2,
			Border: geojson.NewGeometry(square), Owner: &owner, CreatedBy: &owner},
		Areas: []district.AreaObject{
			{TempID: "area-1", Name: "North", SubArea: 0, Border: geojson.NewGeometry(square)},
			{TempID: "subarea-1", Name: "North East", SubArea: 1},
		},
		Roads: []district.RoadObject{
			{TempID: "road-1", Key: "old-town-oak-avenue", Name: "Oak Avenue", Type: "Avenue", Length: 120,
				Size: road.Large, Segments: 2, Areas: []string{"North", "area-1"},
				Coordinates: []orb.LineString{{{0, 0}, {1, 0}}}, SubAreas: 1},
			{TempID: "road-2", Key: "old-town-elm-lane", Name: "Elm Lane", Length: 40, Size: road.Small,
				Segments: 1, Areas: []string{}, Coordinates: []orb.LineString{{{0, 1}, {1, 1}}}},
		},
		DistrictMembers: []district.Member{district.NewMember(1), {UserID: 2, Role: "editor", Permissions: []string{"roads:write"}, Active: 1}},
		Attachments:     []district.Attachment{{Filename: "map.pdf", StorageKey: "maps/old-town.pdf"}},
		Events: []district.Event{
			{ActorID: &owner, ObjectType: "road", ObjectTempID: "road-1", EventType: "created", Payload: map[string]any{"source": "osm"}},
		},
	}
}

func TestMigrateIdempotent(t *testing.T) {
	s := openTestStore(t)
	assert.NoError(t, s.Migrate(context.Background()))
}

func TestSaveUpload(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	id, err := s.SaveUpload(ctx, testUpload())
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := s.DistrictID(ctx, "old-town")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	roads, err := s.Roads(ctx, id)
	require.NoError(t, err)
	require.Len(t, roads, 2)
	assert.Equal(t, "Elm Lane", roads[0].Name)
	assert.Equal(t, []string{}, roads[0].Areas)
	assert.Equal(t, "", roads[0].Type)

	oak := roads[1]
	assert.Equal(t, "old-town-oak-avenue", oak.Key)
	assert.Equal(t, "Avenue", oak.Type)
	assert.Equal(t, road.Large, oak.Size)
	assert.Equal(t, 2, oak.Segments)
	assert.Equal(t, 1, oak.SubAreas)
	assert.Equal(t, []string{"North"}, oak.Areas)
	assert.Equal(t, []orb.LineString{{{0, 0}, {1, 0}}}, oak.Coordinates)

	areas, err := s.Areas(ctx, id)
	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, "North", areas[0].Name)
	assert.Equal(t, square, areas[0].Border.Geometry())
	assert.Equal(t, 1, areas[1].SubArea)
	assert.Nil(t, areas[1].Border)

	var objectID int64
	require.NoError(t, s.db.QueryRow(`SELECT object_id FROM events`).Scan(&objectID))
	assert.NotZero(t, objectID)
}

func TestSaveUploadRollsBack(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.SaveUpload(ctx, testUpload())
	require.NoError(t, err)

	u := testUpload()
	u.District.Key = "old-town-2"
	// road keys are globally unique, so the second insert fails halfway
	_, err = s.SaveUpload(ctx, u)
	require.Error(t, err)

	_, err = s.DistrictID(ctx, "old-town-2")
	assert.ErrorIs(t, err, ErrNotFound)

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM areas`).Scan(&n))
	assert.Equal(t, 2, n)
}

func TestSaveUploadValidates(t *testing.T) {
	s := openTestStore(t)
	u := testUpload()
	u.Roads[0].Areas = []string{"Atlantis"}
	_, err := s.SaveUpload(context.Background(), u)
	assert.ErrorIs(t, err, district.ErrInvalidRoad)
}
