package main

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/natevvv/osm-district-roads/internal/boundary"
	"github.com/natevvv/osm-district-roads/internal/overpass"
	"github.com/natevvv/osm-district-roads/internal/pbf"
)

var (
	fetchBoundary string
	fetchOutput   string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the road segments of a district from Overpass",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		border, err := boundary.LoadGeometry(fetchBoundary)
		if err != nil {
			return err
		}
		filter, err := overpass.PolygonFilter(border)
		if err != nil {
			return err
		}
		query := overpass.Query(filter, cfg.Overpass.QueryTimeoutSecs)

		start := time.Now()
		client := overpass.NewClient(cfg.Overpass.URL, time.Duration(cfg.Overpass.TimeoutSecs)*time.Second)
		data, err := client.Fetch(ctx, query)
		if err != nil {
			return err
		}
		segments := overpass.Segments(data)
		zap.L().Info("fetched segments",
			zap.Int("segments", len(segments)),
			zap.Duration("elapsed", time.Since(start)))

		if err := pbf.ExportSegmentJson(segments, fetchOutput); err != nil {
			return eris.Wrap(err, "fetch: export")
		}
		zap.L().Info("wrote segments", zap.String("file", fetchOutput))
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchBoundary, "boundary", "b", "district.geojson", "district boundary GeoJSON")
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "roads.json", "segment JSON output")
	rootCmd.AddCommand(fetchCmd)
}
