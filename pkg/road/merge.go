package road

import (
	"math"
	"slices"

	"github.com/natevvv/osm-district-roads/pkg/geometry"
	"github.com/natevvv/osm-district-roads/pkg/slice"
	"github.com/paulmach/orb"
)

type StitchOptions struct {
	// MaxGap is the largest planar distance a join may bridge. Zero disables
	// the limit and every group stitches into a single chain.
	MaxGap float64
}

// Merger stitches the segments of one named road into chains by repeatedly
// attaching the unused segment whose endpoint lies nearest to the end of the
// chain being built. Segments are never modified.
type Merger struct {
	segments        []Segment
	opts            StitchOptions
	chains          []orb.LineString
	length          float64
	mergeCount   int
	prependCount int
}

func NewMerger(segments []Segment, opts StitchOptions) *Merger {
	return &Merger{
		segments: segments,
		opts:     opts,
	}
}

// Merge stitches every segment or none. A malformed segment is reported as a
// *SegmentError and leaves the merger without chains.
func (m *Merger) Merge() error {
	m.chains = nil
	m.length = 0
	m.mergeCount, m.prependCount = 0, 0

	for i := range m.segments {
		if err := m.segments[i].Validate(); err != nil {
			return &SegmentError{Index: i, ID: m.segments[i].EdgeID, Err: err}
		}
	}
	used := slice.MakeFixedSizeSlice(len(m.segments))
	if used.Full() {
		return nil
	}

	m.startChain(used.FirstUnset(), &used)
	for !used.Full() {
		chain := m.chains[len(m.chains)-1]

		if i, reversed, ok := m.nearest(chain[len(chain)-1], &used, false); ok {
			m.appendSegment(i, reversed)
			used.Add(i)
			continue
		}
		if i, reversed, ok := m.nearest(chain[0], &used, true); ok {
			m.prependSegment(i, reversed)
			used.Add(i)
			continue
		}
		m.startChain(used.FirstUnset(), &used)
	}
	return nil
}

// nearest scans the unused segments for the endpoint closest to anchor. The
// first segment reaching the minimum wins. For an end anchor the segment is
// reversed when its last point is the closer one, for a front anchor when its
// first point is.
func (m *Merger) nearest(anchor orb.Point, used *slice.FixedSizeSlice, front bool) (int, bool, bool) {
	best := math.Inf(1)
	index, reversed := -1, false
	for i := range m.segments {
		if used.Has(i) {
			continue
		}
		seg := &m.segments[i]
		if d := geometry.PlanarDistance(anchor, seg.First()); d < best && m.reachable(d) {
			best, index, reversed = d, i, front
		}
		if d := geometry.PlanarDistance(anchor, seg.Last()); d < best && m.reachable(d) {
			best, index, reversed = d, i, !front
		}
	}
	return index, reversed, index >= 0
}

func (m *Merger) reachable(d float64) bool {
	return m.opts.MaxGap <= 0 || d <= m.opts.MaxGap
}

func (m *Merger) points(i int, reversed bool) orb.LineString {
	pts := slices.Clone(m.segments[i].Points)
	if reversed {
		slice.ReverseInPlace(pts)
	}
	return pts
}

func (m *Merger) startChain(i int, used *slice.FixedSizeSlice) {
	m.chains = append(m.chains, m.points(i, false))
	m.length += m.segments[i].Meters()
	used.Add(i)
}

func (m *Merger) appendSegment(i int, reversed bool) {
	last := len(m.chains) - 1
	chain := m.chains[last]
	pts := m.points(i, reversed)
	// coincident join point is kept once, a gap becomes a plain vertex
	if chain[len(chain)-1] == pts[0] {
		pts = pts[1:]
	}
	m.chains[last] = append(chain, pts...)
	m.length += m.segments[i].Meters()
	m.mergeCount++
}

func (m *Merger) prependSegment(i int, reversed bool) {
	last := len(m.chains) - 1
	chain := m.chains[last]
	pts := m.points(i, reversed)
	if pts[len(pts)-1] == chain[0] {
		pts = pts[:len(pts)-1]
	}
	m.chains[last] = append(pts, chain...)
	m.length += m.segments[i].Meters()
	m.mergeCount++
	m.prependCount++
}

func (m *Merger) Chains() []orb.LineString {
	return m.chains
}

// Length is the summed length in meters of every stitched segment.
func (m *Merger) Length() float64 {
	return m.length
}

// MergeCount is the number of segments joined onto an existing chain.
func (m *Merger) MergeCount() int {
	return m.mergeCount
}

func (m *Merger) PrependCount() int {
	return m.prependCount
}
