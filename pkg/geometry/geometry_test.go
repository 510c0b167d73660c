package geometry

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestMakePoint(t *testing.T) {
	p := MakePoint(48.1, 11.5)
	assert.Equal(t, 11.5, p.Lon())
	assert.Equal(t, 48.1, p.Lat())
}

func TestPlanarDistance(t *testing.T) {
	assert.Equal(t, 5.0, PlanarDistance(orb.Point{0, 0}, orb.Point{3, 4}))
	assert.Equal(t, 0.0, PlanarDistance(orb.Point{1, 1}, orb.Point{1, 1}))
}

func TestHaversine(t *testing.T) {
	// one degree along the equator on a sphere of the mean radius
	want := EarthRadius * math.Pi / 180
	assert.InDelta(t, want, Haversine(orb.Point{0, 0}, orb.Point{1, 0}), 1e-6)
	assert.InDelta(t, 111194.93, Haversine(orb.Point{0, 0}, orb.Point{0, 1}), 0.01)
	assert.Equal(t, 0.0, Haversine(orb.Point{7, 7}, orb.Point{7, 7}))
}

func TestLineLength(t *testing.T) {
	ls := orb.LineString{{0, 0}, {1, 0}, {2, 0}}
	assert.InDelta(t, 2*EarthRadius*math.Pi/180, LineLength(ls), 1e-6)
	assert.Equal(t, 0.0, LineLength(orb.LineString{{0, 0}}))
	assert.Equal(t, 0.0, LineLength(nil))
}
