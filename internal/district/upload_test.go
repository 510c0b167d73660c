package district

import (
	"bytes"
	"strings"
	"testing"

	"github.com/natevvv/osm-district-roads/pkg/area"
	"github.com/natevvv/osm-district-roads/pkg/road"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords() []road.Record {
	return []road.Record{
		{
			Name:         "Oak Avenue",
			RoadType:     "Avenue",
			Coordinates:  []orb.LineString{{{0, 0}, {1, 0}}},
			Length:       120,
			SegmentCount: 2,
			Size:         road.Large,
			Areas:        []string{"North"},
			SubAreas:     []string{"North East"},
		},
		{
			Name:         "St. John's Road",
			Coordinates:  []orb.LineString{{{0, 1}, {1, 1}}},
			Length:       40,
			SegmentCount: 1,
			Size:         road.Small,
		},
	}
}

func TestRoadObjects(t *testing.T) {
	roads := RoadObjects(testRecords(), "old-town")
	require.Len(t, roads, 2)

	assert.Equal(t, "road-1", roads[0].TempID)
	assert.Equal(t, "old-town-oak-avenue", roads[0].Key)
	assert.Equal(t, "Avenue", roads[0].Type)
	assert.Equal(t, 2, roads[0].Segments)
	assert.Equal(t, []string{"North"}, roads[0].Areas)
	assert.Equal(t, 1, roads[0].SubAreas)

	assert.Equal(t, "road-2", roads[1].TempID)
	assert.Equal(t, "old-town-st-john-s-road", roads[1].Key)
	assert.Equal(t, []string{}, roads[1].Areas)
	assert.Equal(t, 0, roads[1].SubAreas)

	for i := range roads {
		assert.NoError(t, roads[i].Validate())
	}
}

func TestRoadObjectsTruncates(t *testing.T) {
	long := strings.Repeat("a", 300)
	roads := RoadObjects([]road.Record{{Name: long}}, "d")
	assert.Len(t, roads[0].Key, 255)
	assert.Len(t, roads[0].Name, 255)
	assert.NoError(t, roads[0].Validate())
}

func TestRoadObjectValidate(t *testing.T) {
	valid := func() RoadObject {
		return RoadObject{TempID: "road-1", Key: "d-main", Name: "Main", Size: road.Medium}
	}
	r := valid()
	assert.NoError(t, r.Validate())

	r = valid()
	r.Key = "D-Main"
	assert.ErrorIs(t, r.Validate(), ErrInvalidRoad)

	r = valid()
	r.Length = -1
	assert.ErrorIs(t, r.Validate(), ErrInvalidRoad)

	r = valid()
	r.Size = "huge"
	assert.ErrorIs(t, r.Validate(), ErrInvalidRoad)

	r = valid()
	r.SubAreas = 2
	assert.ErrorIs(t, r.Validate(), ErrInvalidRoad)
}

func TestAreaObjects(t *testing.T) {
	a, err := area.New("North", square)
	require.NoError(t, err)
	owner := int64(7)

	areas := AreaObjects([]*area.Area{a}, false, &owner)
	require.Len(t, areas, 1)
	assert.Equal(t, "area-1", areas[0].TempID)
	assert.Equal(t, 0, areas[0].SubArea)
	assert.Equal(t, &owner, areas[0].CreatedBy)
	assert.NoError(t, areas[0].Validate())

	subs := AreaObjects([]*area.Area{a}, true, nil)
	assert.Equal(t, "subarea-1", subs[0].TempID)
	assert.Equal(t, 1, subs[0].SubArea)
}

func TestMemberAttachmentEvent(t *testing.T) {
	m := NewMember(3)
	assert.NoError(t, m.Validate())
	m.UserID = 0
	assert.ErrorIs(t, m.Validate(), ErrInvalidMember)

	size := int64(-1)
	a := Attachment{Filename: "map.pdf", StorageKey: "s3://x", Size: &size}
	assert.ErrorIs(t, a.Validate(), ErrInvalidAttachment)
	a.Size = nil
	assert.NoError(t, a.Validate())

	e := Event{ObjectType: "road", EventType: "created"}
	assert.ErrorIs(t, e.Validate(), ErrInvalidEvent)
	e.ObjectTempID = "road-1"
	assert.NoError(t, e.Validate())
}

func testUpload(t *testing.T) *Upload {
	a, err := area.New("North", square)
	require.NoError(t, err)
	return &Upload{
		District:        District{Key: "old-town", Name: "Old Town", Status: Active, RoadCount: 2, Border: geojson.NewGeometry(square)},
		Areas:           append(AreaObjects([]*area.Area{a}, false, nil), AreaObjects([]*area.Area{{Name: "North East", Geometry: square}}, true, nil)...),
		Roads:           RoadObjects(testRecords(), "old-town"),
		DistrictMembers: []Member{NewMember(1)},
		Events:          []Event{{ObjectType: "district", ObjectTempID: "old-town", EventType: "created"}},
	}
}

func TestUploadValidate(t *testing.T) {
	u := testUpload(t)
	require.NoError(t, u.Validate())

	u.Roads[0].Areas = []string{"Nowhere"}
	assert.ErrorIs(t, u.Validate(), ErrInvalidRoad)

	u = testUpload(t)
	u.Roads[1].Key = u.Roads[0].Key
	assert.ErrorIs(t, u.Validate(), ErrInvalidRoad)

	u = testUpload(t)
	u.Areas[1].TempID = u.Areas[0].TempID
	assert.ErrorIs(t, u.Validate(), ErrInvalidArea)
}

func TestUploadReadWrite(t *testing.T) {
	u := testUpload(t)
	var buf bytes.Buffer
	require.NoError(t, u.Write(&buf))
	assert.Contains(t, buf.String(), `"district_border_coordinates"`)

	got, err := ReadUpload(&buf)
	require.NoError(t, err)
	assert.Equal(t, u.District.Key, got.District.Key)
	assert.Equal(t, square, got.District.Border.Geometry())
	assert.Equal(t, u.Roads, got.Roads)
	require.NoError(t, got.Validate())
}
