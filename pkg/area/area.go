// Package area resolves which named administrative areas a road runs through.
package area

import (
	"fmt"

	"github.com/natevvv/osm-district-roads/pkg/geometry"
	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
)

var (
	ErrUnsupportedGeometry = eris.New("area: geometry must be a Polygon or MultiPolygon")
	ErrDegenerateRing      = geometry.ErrDegenerateRing
)

// PolygonError reports an area whose geometry cannot be used for membership tests.
type PolygonError struct {
	Name string
	Err  error
}

func (e *PolygonError) Error() string {
	return fmt.Sprintf("area %q: %v", e.Name, e.Err)
}

func (e *PolygonError) Unwrap() error { return e.Err }

// Area is a named Polygon or MultiPolygon. Membership is tested against the
// outer ring of every polygon; holes are ignored.
type Area struct {
	Name     string
	Geometry orb.Geometry
	outer    []orb.Ring
	bound    orb.Bound
}

// New validates g and builds an Area from it.
func New(name string, g orb.Geometry) (*Area, error) {
	var polygons []orb.Polygon
	switch v := g.(type) {
	case orb.Polygon:
		polygons = []orb.Polygon{v}
	case orb.MultiPolygon:
		polygons = v
	default:
		return nil, &PolygonError{Name: name, Err: eris.Wrapf(ErrUnsupportedGeometry, "got %T", g)}
	}
	if len(polygons) == 0 {
		return nil, &PolygonError{Name: name, Err: eris.Wrap(ErrDegenerateRing, "no polygons")}
	}

	a := &Area{Name: name, Geometry: g}
	for i, p := range polygons {
		if len(p) == 0 {
			return nil, &PolygonError{Name: name, Err: eris.Wrapf(ErrDegenerateRing, "polygon %d has no rings", i)}
		}
		for j, r := range p {
			if err := geometry.ValidateRing(r); err != nil {
				return nil, &PolygonError{Name: name, Err: eris.Wrapf(err, "polygon %d ring %d", i, j)}
			}
		}
		a.outer = append(a.outer, p[0])
	}
	a.bound = g.Bound()
	return a, nil
}

// Bound is the bounding box of the whole geometry.
func (a *Area) Bound() orb.Bound { return a.bound }

// Contains reports whether p lies inside any outer ring according to c.
func (a *Area) Contains(p orb.Point, c Containment) bool {
	if !a.bound.Contains(p) {
		return false
	}
	for _, r := range a.outer {
		if c(p, r) {
			return true
		}
	}
	return false
}
