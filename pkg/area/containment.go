package area

import (
	"strings"

	"github.com/natevvv/osm-district-roads/pkg/geometry"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/rotisserie/eris"
)

// Containment decides whether a point lies inside a ring. Both implementations
// agree away from the boundary; points on an edge or vertex may differ.
type Containment func(p orb.Point, r orb.Ring) bool

var (
	// RayCasting is the half-open even-odd rule of geometry.PointInRing.
	RayCasting Containment = geometry.PointInRing
	// Planar delegates to orb's ring test.
	Planar Containment = func(p orb.Point, r orb.Ring) bool { return planar.RingContains(r, p) }
)

// ParseContainment maps a configuration value to a strategy: "ray" or "planar".
func ParseContainment(name string) (Containment, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "ray", "raycasting":
		return RayCasting, nil
	case "planar", "orb":
		return Planar, nil
	}
	return nil, eris.Errorf("area: unknown containment %q", name)
}
