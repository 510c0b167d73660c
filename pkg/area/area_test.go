package area

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, size float64) orb.Ring {
	return orb.Ring{{x0, y0}, {x0 + size, y0}, {x0 + size, y0 + size}, {x0, y0 + size}, {x0, y0}}
}

func TestNew(t *testing.T) {
	a, err := New("North", orb.Polygon{square(0, 0, 1)})
	require.NoError(t, err)
	assert.Equal(t, "North", a.Name)
	assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1, 1}}, a.Bound())

	m, err := New("Islands", orb.MultiPolygon{{square(0, 0, 1)}, {square(5, 5, 1)}})
	require.NoError(t, err)
	assert.Len(t, m.outer, 2)
}

func TestNewRejects(t *testing.T) {
	tests := []struct {
		name string
		g    orb.Geometry
		want error
	}{
		{"line string", orb.LineString{{0, 0}, {1, 1}}, ErrUnsupportedGeometry},
		{"point", orb.Point{0, 0}, ErrUnsupportedGeometry},
		{"two distinct vertices", orb.Polygon{{{0, 0}, {1, 1}, {0, 0}, {1, 1}}}, ErrDegenerateRing},
		{"empty polygon", orb.Polygon{}, ErrDegenerateRing},
		{"empty multipolygon", orb.MultiPolygon{}, ErrDegenerateRing},
		{"degenerate hole", orb.Polygon{square(0, 0, 4), {{1, 1}, {2, 2}, {1, 1}}}, ErrDegenerateRing},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("Bad", tt.g)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var perr *PolygonError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "Bad", perr.Name)
		})
	}
}

func TestContains(t *testing.T) {
	a, err := New("Unit", orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 1}}})
	require.NoError(t, err)

	for _, c := range []Containment{RayCasting, Planar} {
		assert.True(t, a.Contains(orb.Point{0.5, 0.5}, c))
		assert.False(t, a.Contains(orb.Point{2, 2}, c))
		assert.False(t, a.Contains(orb.Point{-0.5, 0.5}, c))
	}
}

func TestContainsIgnoresHoles(t *testing.T) {
	a, err := New("Donut", orb.Polygon{square(0, 0, 4), square(1, 1, 2)})
	require.NoError(t, err)
	assert.True(t, a.Contains(orb.Point{2, 2}, RayCasting))
	assert.True(t, a.Contains(orb.Point{2, 2}, Planar))
}

func TestParseContainment(t *testing.T) {
	for _, name := range []string{"", "ray", "RAY", "planar", " orb "} {
		c, err := ParseContainment(name)
		require.NoError(t, err, name)
		assert.NotNil(t, c)
	}
	_, err := ParseContainment("shapely")
	assert.Error(t, err)
}
