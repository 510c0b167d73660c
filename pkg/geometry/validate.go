package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
)

var (
	ErrTooFewPoints   = eris.New("geometry: fewer than 2 points")
	ErrNonFinite      = eris.New("geometry: non-finite coordinate")
	ErrDegenerateRing = eris.New("geometry: ring has fewer than 3 distinct vertices")
)

// ValidatePoint rejects NaN and infinite coordinates.
func ValidatePoint(p orb.Point) error {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return eris.Wrapf(ErrNonFinite, "point %v", p)
		}
	}
	return nil
}

// ValidateLine checks ls has at least two points and every point is finite.
func ValidateLine(ls orb.LineString) error {
	if len(ls) < 2 {
		return eris.Wrapf(ErrTooFewPoints, "got %d", len(ls))
	}
	for i, p := range ls {
		if err := ValidatePoint(p); err != nil {
			return eris.Wrapf(err, "index %d", i)
		}
	}
	return nil
}

// ValidateRing checks r has at least three distinct finite vertices.
func ValidateRing(r orb.Ring) error {
	distinct := make(map[orb.Point]struct{}, len(r))
	for i, p := range r {
		if err := ValidatePoint(p); err != nil {
			return eris.Wrapf(err, "index %d", i)
		}
		distinct[p] = struct{}{}
	}
	if len(distinct) < 3 {
		return eris.Wrapf(ErrDegenerateRing, "got %d", len(distinct))
	}
	return nil
}
