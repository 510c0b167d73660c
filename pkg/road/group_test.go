package road

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(name TagValue, pts ...orb.Point) Segment {
	return Segment{Name: name, Points: orb.LineString(pts)}
}

func TestGroupSegments(t *testing.T) {
	segments := []Segment{
		named(TagValue{"Oak Avenue"}, orb.Point{0, 0}, orb.Point{1, 0}),
		named(nil, orb.Point{5, 5}, orb.Point{6, 6}),
		named(TagValue{"Elm Street"}, orb.Point{0, 1}, orb.Point{1, 1}),
		named(TagValue{"unnamed"}, orb.Point{5, 5}, orb.Point{6, 6}),
		named(TagValue{"Oak Avenue"}, orb.Point{1, 0}, orb.Point{2, 0}),
		named(TagValue{"Elm Street", "Route 9"}, orb.Point{3, 3}, orb.Point{4, 4}),
	}

	groups, dropped := GroupSegments(segments)
	assert.Equal(t, 2, dropped)
	require.Len(t, groups, 3)

	assert.Equal(t, "Oak Avenue", groups[0].Name)
	require.Len(t, groups[0].Segments, 2)
	assert.Equal(t, orb.Point{0, 0}, groups[0].Segments[0].First())
	assert.Equal(t, orb.Point{1, 0}, groups[0].Segments[1].First())

	assert.Equal(t, "Elm Street", groups[1].Name)
	assert.Equal(t, "Elm Street / Route 9", groups[2].Name)
}

func TestGroupSegmentsEmpty(t *testing.T) {
	groups, dropped := GroupSegments(nil)
	assert.Empty(t, groups)
	assert.Zero(t, dropped)
}
