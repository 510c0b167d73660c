package road

import (
	"github.com/natevvv/osm-district-roads/pkg/slice"
	"github.com/paulmach/orb"
)

// Record is the stitched result for one road name.
type Record struct {
	Name         string           `json:"name"`
	RoadType     string           `json:"road_type,omitempty"`
	Coordinates  []orb.LineString `json:"coordinates"`
	Length       float64          `json:"length"`
	SegmentCount int              `json:"segment_count"`
	Size         Size             `json:"size,omitempty"`
	Areas        []string         `json:"areas"`
	SubAreas     []string         `json:"sub_areas"`
}

// Record builds the record for name from the merged chains. Merge must have run.
func (m *Merger) Record(name string) Record {
	roadType, _ := ExtractRoadType(name)
	return Record{
		Name:         name,
		RoadType:     roadType,
		Coordinates:  m.Chains(),
		Length:       m.Length(),
		SegmentCount: len(m.segments),
		Areas:        []string{},
		SubAreas:     []string{},
	}
}

// PointCount is the number of points over all chains.
func (r Record) PointCount() int {
	n := 0
	for _, c := range r.Coordinates {
		n += len(c)
	}
	return n
}

// WithAreas returns a copy of r with areas and subAreas merged into its
// membership lists. Lists stay sorted and free of duplicates, so applying the
// same names twice changes nothing.
func (r Record) WithAreas(areas, subAreas []string) Record {
	r.Areas = slice.Union(r.Areas, areas)
	r.SubAreas = slice.Union(r.SubAreas, subAreas)
	return r
}

func (r Record) WithSize(s Size) Record {
	r.Size = s
	return r
}
