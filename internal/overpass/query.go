// Package overpass fetches the road ways inside a district from an Overpass API endpoint.
package overpass

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
)

var ErrNotPolygon = eris.New("overpass: district boundary must be a Polygon")

// PolygonFilter renders the outer ring of a polygon as the "lat lon lat lon"
// list expected by the poly filter.
func PolygonFilter(g orb.Geometry) (string, error) {
	p, ok := g.(orb.Polygon)
	if !ok {
		return "", eris.Wrapf(ErrNotPolygon, "got %T", g)
	}
	if len(p) == 0 || len(p[0]) < 3 {
		return "", eris.Wrap(ErrNotPolygon, "outer ring has fewer than 3 points")
	}

	parts := make([]string, 0, 2*len(p[0]))
	for _, pt := range p[0] {
		parts = append(parts,
			strconv.FormatFloat(pt.Lat(), 'f', -1, 64),
			strconv.FormatFloat(pt.Lon(), 'f', -1, 64))
	}
	return strings.Join(parts, " "), nil
}

// Query builds the request for every highway way inside the polygon filter,
// followed by the nodes those ways reference.
func Query(filter string, timeoutSecs int) string {
	return fmt.Sprintf(`[out:json][timeout:%d];
(
  way["highway"](poly:"%s");
);
out body;
>;
out skel qt;
`, timeoutSecs, filter)
}
