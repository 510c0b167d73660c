// Package geometry holds the small set of coordinate primitives the road
// pipeline needs. Coordinates are orb points in (longitude, latitude) order.
package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// EarthRadius is the mean earth radius in meters used for every reported length.
const EarthRadius = 6371000.0

// MakePoint builds a point from latitude and longitude.
func MakePoint(lat, lon float64) orb.Point {
	return orb.Point{lon, lat}
}

// PlanarDistance is the euclidean distance between a and b with longitude and
// latitude treated as a flat plane. Only meaningful for comparing candidates.
func PlanarDistance(a, b orb.Point) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}

// Haversine returns the great circle distance between a and b in meters.
func Haversine(a, b orb.Point) float64 {
	// orb uses the WGS84 equatorial radius, rescale to the mean radius
	return geo.DistanceHaversine(a, b) * EarthRadius / orb.EarthRadius
}

// LineLength sums the haversine distance over consecutive points of ls.
func LineLength(ls orb.LineString) float64 {
	total := 0.0
	for i := 0; i < len(ls)-1; i++ {
		total += Haversine(ls[i], ls[i+1])
	}
	return total
}
