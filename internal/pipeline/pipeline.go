// Package pipeline turns raw road segments into sized, area-tagged road records.
package pipeline

import (
	"context"
	"time"

	"github.com/natevvv/osm-district-roads/pkg/area"
	"github.com/natevvv/osm-district-roads/pkg/road"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options controls a pipeline run.
type Options struct {
	// Workers bounds the number of roads stitched concurrently.
	Workers int
	Stitch  road.StitchOptions
	// FailFast aborts the run on the first malformed segment instead of
	// skipping it.
	FailFast bool
}

// Result is the outcome of Build.
type Result struct {
	Roads []road.Record
	// Failures lists the skipped segments, one *road.SegmentError each.
	Failures []*road.SegmentError
	// Dropped counts segments without a usable name.
	Dropped  int
	Merges   int
	Prepends int
}

// Build validates segments, groups them by name, stitches each group and
// assigns size classes. Records come out in the order their name first
// appears in segments.
func Build(ctx context.Context, segments []road.Segment, opts Options) (*Result, error) {
	log := zap.L().With(zap.Int("segments", len(segments)))
	start := time.Now()

	res := &Result{}
	valid := make([]road.Segment, 0, len(segments))
	for i := range segments {
		if err := segments[i].Validate(); err != nil {
			serr := &road.SegmentError{Index: i, ID: segments[i].EdgeID, Err: err}
			if opts.FailFast {
				return nil, serr
			}
			log.Warn("skipping malformed segment", zap.Error(serr))
			res.Failures = append(res.Failures, serr)
			continue
		}
		valid = append(valid, segments[i])
	}

	groups, dropped := road.GroupSegments(valid)
	res.Dropped = dropped

	records := make([]road.Record, len(groups))
	merges := make([]int, len(groups))
	prepends := make([]int, len(groups))

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, grp := range groups {
		i, grp := i, grp
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m := road.NewMerger(grp.Segments, opts.Stitch)
			if err := m.Merge(); err != nil {
				return err
			}
			records[i] = m.Record(grp.Name)
			merges[i] = m.MergeCount()
			prepends[i] = m.PrependCount()
			if len(m.Chains()) > 1 {
				zap.L().Debug("road split into several chains",
					zap.String("road", grp.Name),
					zap.Int("chains", len(m.Chains())))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range merges {
		res.Merges += merges[i]
		res.Prepends += prepends[i]
	}
	res.Roads = road.ApplySizes(records)

	log.Info("stitched roads",
		zap.Int("roads", len(res.Roads)),
		zap.Int("merges", res.Merges),
		zap.Int("prepends", res.Prepends),
		zap.Int("dropped", res.Dropped),
		zap.Int("failures", len(res.Failures)),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// AssignAreas returns copies of records with their areas and sub-areas
// resolved. Either resolver may be nil. Running it again on its own output
// changes nothing.
func AssignAreas(records []road.Record, areas, subAreas *area.Resolver) []road.Record {
	out := make([]road.Record, len(records))
	for i, r := range records {
		var a, s []string
		if areas != nil {
			a = areas.Resolve(r.Coordinates)
		}
		if subAreas != nil {
			s = subAreas.Resolve(r.Coordinates)
		}
		out[i] = r.WithAreas(a, s)
	}
	return out
}
