// Package boundary loads district, area and sub-area outlines from GeoJSON files.
package boundary

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/natevvv/osm-district-roads/pkg/area"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

var ErrNoGeometry = eris.New("boundary: no geometry found")

// ReadGeometry decodes a FeatureCollection, a Feature or a bare geometry and
// returns the first geometry it holds. A MultiLineString made of a single
// closed line is returned as a Polygon.
func ReadGeometry(data []byte) (orb.Geometry, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, eris.Wrap(err, "boundary: decode")
	}

	var g orb.Geometry
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, eris.Wrap(err, "boundary: decode feature collection")
		}
		for _, f := range fc.Features {
			if f.Geometry != nil {
				g = f.Geometry
				break
			}
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, eris.Wrap(err, "boundary: decode feature")
		}
		g = f.Geometry
	case "":
		return nil, eris.New("boundary: missing type")
	default:
		geom, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, eris.Wrap(err, "boundary: decode geometry")
		}
		g = geom.Geometry()
	}
	if g == nil {
		return nil, ErrNoGeometry
	}
	return Polygonal(g), nil
}

// Polygonal converts a MultiLineString holding exactly one closed line into a
// Polygon. Any other geometry is returned unchanged.
func Polygonal(g orb.Geometry) orb.Geometry {
	mls, ok := g.(orb.MultiLineString)
	if !ok || len(mls) != 1 || len(mls[0]) < 4 {
		return g
	}
	line := mls[0]
	if line[0] != line[len(line)-1] {
		return g
	}
	return orb.Polygon{orb.Ring(slices.Clone(line))}
}

// LoadGeometry reads the first geometry of a GeoJSON file.
func LoadGeometry(path string) (orb.Geometry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: read %s", path)
	}
	g, err := ReadGeometry(data)
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: %s", path)
	}
	return g, nil
}

// LoadArea reads one area file. The area is named after the file without its extension.
func LoadArea(path string) (*area.Area, error) {
	g, err := LoadGeometry(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	a, err := area.New(name, g)
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: %s", path)
	}
	return a, nil
}

// LoadAreaDir reads every *.geojson file of dir in name order. Files that fail
// to load are returned as failures so the caller can decide to skip them. A
// missing directory yields no areas.
func LoadAreaDir(dir string) ([]*area.Area, []error, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		zap.L().Warn("area directory not found", zap.String("dir", dir))
		return nil, nil, nil
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.geojson"))
	if err != nil {
		return nil, nil, eris.Wrapf(err, "boundary: list %s", dir)
	}
	if len(paths) == 0 {
		zap.L().Warn("no geojson files found", zap.String("dir", dir))
	}
	slices.Sort(paths)

	var (
		areas    []*area.Area
		failures []error
	)
	for _, p := range paths {
		a, err := LoadArea(p)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		areas = append(areas, a)
	}
	return areas, failures, nil
}
