package pipeline

import (
	"context"
	"testing"

	"github.com/natevvv/osm-district-roads/pkg/area"
	"github.com/natevvv/osm-district-roads/pkg/road"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func segment(id, name string, length float64, pts ...orb.Point) road.Segment {
	s := road.Segment{EdgeID: id, Points: orb.LineString(pts), Length: &length}
	if name != "" {
		s.Name = road.TagValue{name}
	}
	return s
}

func fixture() []road.Segment {
	return []road.Segment{
		segment("1", "Oak Avenue", 10, orb.Point{0, 0}, orb.Point{1, 0}),
		segment("2", "Elm Street", 5, orb.Point{0, 2}, orb.Point{1, 2}),
		segment("3", "Oak Avenue", 20, orb.Point{2, 0}, orb.Point{1, 0}),
		segment("4", "", 7, orb.Point{9, 9}, orb.Point{8, 8}),
		segment("5", "Oak Avenue", 30, orb.Point{2, 0}, orb.Point{3, 0}),
		segment("6", "Elm Street", 1, orb.Point{5, 5}),
		segment("7", "Pine Road", 100, orb.Point{0, 5}, orb.Point{0, 6}),
	}
}

func TestBuild(t *testing.T) {
	res, err := Build(context.Background(), fixture(), Options{Workers: 3})
	require.NoError(t, err)

	require.Len(t, res.Roads, 3)
	oak, elm, pine := res.Roads[0], res.Roads[1], res.Roads[2]

	assert.Equal(t, "Oak Avenue", oak.Name)
	assert.Equal(t, "Avenue", oak.RoadType)
	assert.Equal(t, []orb.LineString{{{0, 0}, {1, 0}, {2, 0}, {3, 0}}}, oak.Coordinates)
	assert.Equal(t, 60.0, oak.Length)
	assert.Equal(t, 3, oak.SegmentCount)
	assert.Equal(t, road.Medium, oak.Size)

	assert.Equal(t, "Elm Street", elm.Name)
	assert.Equal(t, 1, elm.SegmentCount)
	assert.Equal(t, road.Small, elm.Size)

	assert.Equal(t, "Pine Road", pine.Name)
	assert.Equal(t, road.Large, pine.Size)

	assert.Equal(t, 1, res.Dropped)
	assert.Equal(t, 2, res.Merges)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, 5, res.Failures[0].Index)
	assert.Equal(t, "6", res.Failures[0].ID)
	assert.ErrorIs(t, res.Failures[0], road.ErrTooFewPoints)
}

func TestBuildFailFast(t *testing.T) {
	_, err := Build(context.Background(), fixture(), Options{Workers: 2, FailFast: true})
	require.Error(t, err)

	var serr *road.SegmentError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 5, serr.Index)
}

func TestBuildDeterministicAcrossWorkers(t *testing.T) {
	one, err := Build(context.Background(), fixture(), Options{Workers: 1})
	require.NoError(t, err)
	many, err := Build(context.Background(), fixture(), Options{Workers: 8})
	require.NoError(t, err)
	assert.Equal(t, one.Roads, many.Roads)
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Build(ctx, fixture(), Options{Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildEmpty(t *testing.T) {
	res, err := Build(context.Background(), nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Roads)
	assert.Empty(t, res.Failures)
}

func TestAssignAreas(t *testing.T) {
	west, err := area.New("West", orb.Polygon{{{-0.5, -0.5}, {1.5, -0.5}, {1.5, 0.5}, {-0.5, 0.5}, {-0.5, -0.5}}})
	require.NoError(t, err)
	east, err := area.New("East", orb.Polygon{{{2.5, -0.5}, {4, -0.5}, {4, 0.5}, {2.5, 0.5}, {2.5, -0.5}}})
	require.NoError(t, err)
	downtown, err := area.New("Downtown", orb.Polygon{{{-1, 4}, {1, 4}, {1, 7}, {-1, 7}, {-1, 4}}})
	require.NoError(t, err)

	res, err := Build(context.Background(), fixture(), Options{Workers: 2})
	require.NoError(t, err)

	areas := area.NewResolver([]*area.Area{west, east}, area.RayCasting)
	subAreas := area.NewResolver([]*area.Area{downtown}, area.Planar)

	once := AssignAreas(res.Roads, areas, subAreas)
	assert.Equal(t, []string{"East", "West"}, once[0].Areas)
	assert.Empty(t, once[0].SubAreas)
	assert.Empty(t, once[1].Areas)
	assert.Equal(t, []string{"Downtown"}, once[2].SubAreas)

	twice := AssignAreas(once, areas, subAreas)
	assert.Equal(t, once, twice)

	onlyAreas := AssignAreas(res.Roads, areas, nil)
	assert.Equal(t, []string{}, onlyAreas[2].SubAreas)
}
