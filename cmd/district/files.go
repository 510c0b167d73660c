package main

import (
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/natevvv/osm-district-roads/internal/boundary"
	"github.com/natevvv/osm-district-roads/pkg/area"
	"github.com/natevvv/osm-district-roads/pkg/road"
)

func readSegmentsFile(path string) ([]road.Segment, []*road.SegmentError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return road.ReadSegments(f)
}

func readRecordsFile(path string) ([]road.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return road.ReadRecords(f)
}

// loadAreas loads the configured area and sub-area directories. Unreadable
// boundary files are logged and skipped.
func loadAreas() (areas, subAreas []*area.Area, err error) {
	load := func(dir string) ([]*area.Area, error) {
		loaded, failures, err := boundary.LoadAreaDir(dir)
		if err != nil {
			return nil, err
		}
		for _, f := range failures {
			zap.L().Warn("skipping area file", zap.String("dir", dir), zap.Error(f))
		}
		return loaded, nil
	}
	if areas, err = load(cfg.Areas.Dir); err != nil {
		return nil, nil, err
	}
	if subAreas, err = load(cfg.Areas.SubDir); err != nil {
		return nil, nil, err
	}
	zap.L().Info("loaded areas",
		zap.Int("areas", len(areas)),
		zap.Int("sub_areas", len(subAreas)))
	return areas, subAreas, nil
}

func loadResolvers() (areas, subAreas *area.Resolver, err error) {
	containment, err := area.ParseContainment(cfg.Areas.Containment)
	if err != nil {
		return nil, nil, err
	}
	a, s, err := loadAreas()
	if err != nil {
		return nil, nil, err
	}
	return area.NewResolver(a, containment), area.NewResolver(s, containment), nil
}
