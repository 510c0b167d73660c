package main

import (
	"os"

	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/natevvv/osm-district-roads/internal/boundary"
	"github.com/natevvv/osm-district-roads/internal/sqlgen"
)

var (
	sqlInput      string
	sqlOutput     string
	sqlDistrictID int64
	sqlName       string
	sqlBoundary   string
	sqlCreatedBy  int64
	sqlOwner      int64
	sqlMembers    []int64
	sqlAreas      bool
)

var sqlCmd = &cobra.Command{
	Use:   "sql",
	Short: "Generate SQL INSERT statements for a district, its members, areas and roads",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var queries []string

		if sqlName != "" {
			var border orb.Geometry
			if sqlBoundary != "" {
				g, err := boundary.LoadGeometry(sqlBoundary)
				if err != nil {
					return err
				}
				border = g
			}
			q, err := sqlgen.District(sqlName, sqlCreatedBy, sqlOwner, border)
			if err != nil {
				return err
			}
			queries = append(queries, q)
		}

		for _, userID := range sqlMembers {
			queries = append(queries, sqlgen.Member(sqlDistrictID, userID))
		}

		if sqlAreas {
			areas, subAreas, err := loadAreas()
			if err != nil {
				return err
			}
			for _, a := range areas {
				q, err := sqlgen.Area(sqlDistrictID, a.Name, a.Geometry, false, sqlCreatedBy)
				if err != nil {
					return err
				}
				queries = append(queries, q)
			}
			for _, a := range subAreas {
				q, err := sqlgen.Area(sqlDistrictID, a.Name, a.Geometry, true, sqlCreatedBy)
				if err != nil {
					return err
				}
				queries = append(queries, q)
			}
		}

		roads := 0
		if sqlInput != "" {
			records, err := readRecordsFile(sqlInput)
			if err != nil {
				return err
			}
			for _, rec := range records {
				q, err := sqlgen.Road(sqlDistrictID, rec)
				if err != nil {
					zap.L().Warn("skipping road", zap.String("road", rec.Name), zap.Error(err))
					continue
				}
				queries = append(queries, q)
				roads++
			}
		}

		if len(queries) == 0 {
			return eris.New("sql: nothing to generate, pass --name, --member, --areas or --input")
		}
		if err := os.WriteFile(sqlOutput, []byte(sqlgen.Script(queries)+"\n"), 0o644); err != nil {
			return eris.Wrapf(err, "sql: write %s", sqlOutput)
		}
		zap.L().Info("wrote sql",
			zap.String("file", sqlOutput),
			zap.Int("statements", len(queries)),
			zap.Int("roads", roads))
		return nil
	},
}

func init() {
	sqlCmd.Flags().StringVarP(&sqlInput, "input", "i", "", "road records file")
	sqlCmd.Flags().StringVarP(&sqlOutput, "output", "o", "district.sql", "SQL output")
	sqlCmd.Flags().Int64Var(&sqlDistrictID, "district-id", 1, "district id for member, area and road rows")
	sqlCmd.Flags().StringVar(&sqlName, "name", "", "emit a district row with this name")
	sqlCmd.Flags().StringVarP(&sqlBoundary, "boundary", "b", "", "district boundary GeoJSON for the district row")
	sqlCmd.Flags().Int64Var(&sqlCreatedBy, "created-by", 1, "user id of the creator")
	sqlCmd.Flags().Int64Var(&sqlOwner, "owner", 1, "user id of the district owner")
	sqlCmd.Flags().Int64SliceVar(&sqlMembers, "member", nil, "user ids to add as district members")
	sqlCmd.Flags().BoolVar(&sqlAreas, "areas", false, "emit area and sub-area rows from the configured directories")
	rootCmd.AddCommand(sqlCmd)
}
