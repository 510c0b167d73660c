package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/natevvv/osm-district-roads/internal/pbf"
	"github.com/natevvv/osm-district-roads/internal/pipeline"
	"github.com/natevvv/osm-district-roads/pkg/road"
)

var (
	formatInput    string
	formatOutput   string
	formatGeoJSON  string
	formatAreas    bool
	formatFailFast bool
)

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Stitch segments into named roads with type, size and areas",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		start := time.Now()
		segments, failures, err := readSegmentsFile(formatInput)
		if err != nil {
			return err
		}
		for _, f := range failures {
			if formatFailFast {
				return f
			}
			zap.L().Warn("skipping segment", zap.Error(f))
		}
		zap.L().Info("read segments",
			zap.Int("segments", len(segments)),
			zap.Int("malformed", len(failures)),
			zap.Duration("elapsed", time.Since(start)))

		res, err := pipeline.Build(ctx, segments, pipeline.Options{
			Workers:  cfg.Stitch.Workers,
			Stitch:   road.StitchOptions{MaxGap: cfg.Stitch.MaxGap},
			FailFast: formatFailFast,
		})
		if err != nil {
			return err
		}
		records := res.Roads

		if formatAreas {
			areas, subAreas, err := loadResolvers()
			if err != nil {
				return err
			}
			records = pipeline.AssignAreas(records, areas, subAreas)
		}

		start = time.Now()
		if err := pbf.ExportRoadJson(records, formatOutput); err != nil {
			return err
		}
		if formatGeoJSON != "" {
			if err := pbf.ExportRoadGeoJson(records, formatGeoJSON); err != nil {
				return err
			}
		}
		zap.L().Info("wrote roads",
			zap.String("file", formatOutput),
			zap.Int("roads", len(records)),
			zap.Duration("elapsed", time.Since(start)))
		return nil
	},
}

func init() {
	formatCmd.Flags().StringVarP(&formatInput, "input", "i", "roads.json", "segment JSON input")
	formatCmd.Flags().StringVarP(&formatOutput, "output", "o", "formatted_roads.json", "road records output")
	formatCmd.Flags().StringVar(&formatGeoJSON, "geojson", "", "also write a GeoJSON FeatureCollection")
	formatCmd.Flags().BoolVar(&formatAreas, "areas", false, "resolve areas and sub-areas from the configured directories")
	formatCmd.Flags().BoolVar(&formatFailFast, "fail-fast", false, "abort on the first malformed segment")
	rootCmd.AddCommand(formatCmd)
}
