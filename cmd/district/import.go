package main

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/natevvv/osm-district-roads/internal/boundary"
	"github.com/natevvv/osm-district-roads/internal/pbf"
)

var (
	importPbfFile  string
	importBoundary string
	importOutput   string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Read the road segments of a district from an .osm.pbf extract",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var keep func(orb.LineString) bool
		if importBoundary != "" {
			border, err := boundary.LoadGeometry(importBoundary)
			if err != nil {
				return err
			}
			keep = pbf.InBound(border.Bound())
		}

		start := time.Now()
		roadImporter := pbf.NewRoadImporter(importPbfFile, keep)
		if err := roadImporter.Import(); err != nil {
			return err
		}
		zap.L().Info("imported segments",
			zap.Int("segments", len(roadImporter.Roads())),
			zap.Int("nodes", roadImporter.NodeCount()),
			zap.Duration("elapsed", time.Since(start)))

		start = time.Now()
		if err := pbf.ExportSegmentJson(roadImporter.Roads(), importOutput); err != nil {
			return err
		}
		zap.L().Info("wrote segments",
			zap.String("file", importOutput),
			zap.Duration("elapsed", time.Since(start)))
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importPbfFile, "file", "f", "district.osm.pbf", "PBF extract")
	importCmd.Flags().StringVarP(&importBoundary, "boundary", "b", "", "keep only ways inside this boundary's bounding box")
	importCmd.Flags().StringVarP(&importOutput, "output", "o", "roads.json", "segment JSON output")
	rootCmd.AddCommand(importCmd)
}
