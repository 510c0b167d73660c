package pbf

import (
	"encoding/json"
	"io"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/natevvv/osm-district-roads/pkg/geometry"
	"github.com/natevvv/osm-district-roads/pkg/road"
	"github.com/paulmach/orb"
	"github.com/qedus/osmpbf"
	"github.com/rotisserie/eris"
)

// RoadImporter reads the highway ways of an .osm.pbf extract as road segments.
type RoadImporter struct {
	filename string
	keep     func(orb.LineString) bool
	roads    []road.Segment
	nodes    map[int64]orb.Point
}

// NewRoadImporter creates an importer for filename. keep, when not nil,
// decides whether a way's geometry belongs to the district.
func NewRoadImporter(filename string, keep func(orb.LineString) bool) *RoadImporter {
	return &RoadImporter{
		filename: filename,
		keep:     keep,
		roads:    make([]road.Segment, 0),
		nodes:    make(map[int64]orb.Point),
	}
}

func (ri *RoadImporter) Import() error {
	if err := ri.collectNodes(); err != nil {
		return err
	}

	file, err := os.Open(ri.filename)
	if err != nil {
		return eris.Wrapf(err, "pbf: open %s", ri.filename)
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	err = decoder.Start(runtime.GOMAXPROCS(-1))
	if err != nil {
		return eris.Wrap(err, "pbf: start decoder")
	}

	var wg sync.WaitGroup
	roadsChan := make(chan road.Segment, 1000)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for segment := range roadsChan {
			ri.roads = append(ri.roads, segment)
		}
	}()

	var decodeErr error
	for {
		v, err := decoder.Decode()
		if err != nil {
			if err != io.EOF {
				decodeErr = eris.Wrap(err, "pbf: decode ways")
			}
			break
		}
		if w, ok := v.(*osmpbf.Way); ok {
			if segment, ok := ri.segmentFromWay(w); ok {
				roadsChan <- segment
			}
		}
	}
	close(roadsChan)

	wg.Wait()
	return decodeErr
}

// segmentFromWay converts a way tagged highway. Node references missing from
// the extract are skipped.
func (ri *RoadImporter) segmentFromWay(w *osmpbf.Way) (road.Segment, bool) {
	highway, ok := w.Tags["highway"]
	if !ok {
		return road.Segment{}, false
	}

	points := make(orb.LineString, 0, len(w.NodeIDs))
	for _, nodeID := range w.NodeIDs {
		if point, ok := ri.nodes[nodeID]; ok {
			points = append(points, point)
		}
	}
	if len(points) == 0 {
		return road.Segment{}, false
	}
	if ri.keep != nil && !ri.keep(points) {
		return road.Segment{}, false
	}

	length := geometry.LineLength(points)
	osmid, _ := json.Marshal(w.ID)
	segment := road.Segment{
		EdgeID:  "way/" + strconv.FormatInt(w.ID, 10),
		Points:  points,
		Highway: road.TagValue{highway},
		Length:  &length,
		OneWay:  w.Tags["oneway"] == "yes",
		OSMID:   osmid,
	}
	if name := w.Tags["name"]; name != "" {
		segment.Name = road.TagValue{name}
	}
	if len(w.NodeIDs) > 0 {
		segment.StartNode = w.NodeIDs[0]
		segment.EndNode = w.NodeIDs[len(w.NodeIDs)-1]
	}
	return segment, true
}

func (ri *RoadImporter) Roads() []road.Segment {
	return ri.roads
}

func (ri *RoadImporter) NodeCount() int {
	return len(ri.nodes)
}

func (ri *RoadImporter) collectNodes() error {
	file, err := os.Open(ri.filename)
	if err != nil {
		return eris.Wrapf(err, "pbf: open %s", ri.filename)
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	err = decoder.Start(runtime.GOMAXPROCS(-1))
	if err != nil {
		return eris.Wrap(err, "pbf: start decoder")
	}

	for {
		v, err := decoder.Decode()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return eris.Wrap(err, "pbf: decode nodes")
		}
		if n, ok := v.(*osmpbf.Node); ok {
			ri.nodes[n.ID] = geometry.MakePoint(n.Lat, n.Lon)
		}
	}
}

// InBound keeps ways with at least one point inside b.
func InBound(b orb.Bound) func(orb.LineString) bool {
	return func(ls orb.LineString) bool {
		for _, p := range ls {
			if b.Contains(p) {
				return true
			}
		}
		return false
	}
}
