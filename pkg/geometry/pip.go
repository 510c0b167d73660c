package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// PointInRing reports whether p lies inside ring using even-odd ray casting
// with a ray pointing in the +x direction.
//
// An edge is counted when p's y lies in the half-open interval (minY, maxY] of
// the edge, so a vertex shared by two edges is counted once. The ring does not
// need to repeat its first vertex; indices wrap around. Points lying exactly on
// an edge or vertex get whatever the half-open rule yields.
func PointInRing(p orb.Point, ring orb.Ring) bool {
	n := len(ring)
	if n < 3 {
		return false
	}

	px, py := p[0], p[1]
	inside := false
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[(i+1)%n]
		if py <= math.Min(a[1], b[1]) || py > math.Max(a[1], b[1]) {
			continue
		}
		if px > math.Max(a[0], b[0]) {
			continue
		}
		if a[0] == b[0] {
			inside = !inside
			continue
		}
		x := (py-a[1])*(b[0]-a[0])/(b[1]-a[1]) + a[0]
		if px <= x {
			inside = !inside
		}
	}
	return inside
}
