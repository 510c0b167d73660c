package pbf

import (
	"encoding/json"
	"os"

	"github.com/natevvv/osm-district-roads/pkg/road"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"
)

// ExportRoadJson writes records as a name to record JSON object.
func ExportRoadJson(records []road.Record, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return eris.Wrapf(err, "pbf: create %s", filename)
	}
	defer file.Close()

	return road.WriteRecords(file, records)
}

// ExportSegmentJson writes raw segments as a JSON array.
func ExportSegmentJson(segments []road.Segment, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return eris.Wrapf(err, "pbf: create %s", filename)
	}
	defer file.Close()

	return road.WriteSegments(file, segments)
}

// RoadFeatures builds one MultiLineString feature per record, carrying the
// record fields as properties.
func RoadFeatures(records []road.Record) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range records {
		f := geojson.NewFeature(orb.MultiLineString(r.Coordinates))
		f.Properties["name"] = r.Name
		if r.RoadType != "" {
			f.Properties["road_type"] = r.RoadType
		}
		f.Properties["length"] = r.Length
		f.Properties["segment_count"] = r.SegmentCount
		if r.Size != "" {
			f.Properties["size"] = string(r.Size)
		}
		f.Properties["areas"] = r.Areas
		f.Properties["sub_areas"] = r.SubAreas
		fc.Append(f)
	}
	return fc
}

// ExportRoadGeoJson writes records as a GeoJSON FeatureCollection.
func ExportRoadGeoJson(records []road.Record, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return eris.Wrapf(err, "pbf: create %s", filename)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	return eris.Wrap(enc.Encode(RoadFeatures(records)), "pbf: write geojson")
}
