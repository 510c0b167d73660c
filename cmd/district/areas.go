package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/natevvv/osm-district-roads/internal/pbf"
	"github.com/natevvv/osm-district-roads/internal/pipeline"
)

var areasFile string

var areasCmd = &cobra.Command{
	Use:   "areas",
	Short: "Add area and sub-area membership to a road records file in place",
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, err := readRecordsFile(areasFile)
		if err != nil {
			return err
		}
		areas, subAreas, err := loadResolvers()
		if err != nil {
			return err
		}
		records = pipeline.AssignAreas(records, areas, subAreas)

		tagged := 0
		for _, r := range records {
			if len(r.Areas) > 0 || len(r.SubAreas) > 0 {
				tagged++
			}
		}
		if err := pbf.ExportRoadJson(records, areasFile); err != nil {
			return err
		}
		zap.L().Info("updated areas",
			zap.String("file", areasFile),
			zap.Int("roads", len(records)),
			zap.Int("tagged", tagged))
		return nil
	},
}

func init() {
	areasCmd.Flags().StringVarP(&areasFile, "file", "f", "formatted_roads.json", "road records file")
	rootCmd.AddCommand(areasCmd)
}
