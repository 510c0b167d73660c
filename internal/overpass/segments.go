package overpass

import (
	"encoding/json"

	"github.com/natevvv/osm-district-roads/pkg/geometry"
	"github.com/natevvv/osm-district-roads/pkg/road"
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// Segments turns every way tagged highway into a road segment. Coordinates
// come from the referenced nodes present in o; missing nodes are skipped, so
// a way may end up with fewer than two points and fail validation later.
func Segments(o *osm.OSM) []road.Segment {
	points := make(map[osm.NodeID]orb.Point, len(o.Nodes))
	for _, n := range o.Nodes {
		points[n.ID] = n.Point()
	}

	var segments []road.Segment
	for _, w := range o.Ways {
		highway := w.Tags.Find("highway")
		if highway == "" {
			continue
		}

		var ls orb.LineString
		for _, wn := range w.Nodes {
			if p, ok := points[wn.ID]; ok {
				ls = append(ls, p)
			}
		}
		length := geometry.LineLength(ls)
		osmid, _ := json.Marshal(int64(w.ID))

		s := road.Segment{
			EdgeID:  w.ID.FeatureID().String(),
			Points:  ls,
			Highway: road.TagValue{highway},
			Length:  &length,
			OneWay:  w.Tags.Find("oneway") == "yes",
			OSMID:   osmid,
		}
		if name := w.Tags.Find("name"); name != "" {
			s.Name = road.TagValue{name}
		}
		if len(w.Nodes) > 0 {
			s.StartNode = int64(w.Nodes[0].ID)
			s.EndNode = int64(w.Nodes[len(w.Nodes)-1].ID)
		}
		segments = append(segments, s)
	}
	return segments
}
