package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/natevvv/osm-district-roads/internal/boundary"
	"github.com/natevvv/osm-district-roads/internal/district"
)

var (
	uploadInput     string
	uploadOutput    string
	uploadBoundary  string
	uploadName      string
	uploadKey       string
	uploadCreatedBy int64
	uploadMembers   []int64
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Assemble the district upload payload",
	RunE: func(cmd *cobra.Command, _ []string) error {
		border, err := boundary.LoadGeometry(uploadBoundary)
		if err != nil {
			return err
		}
		d, err := district.NewDistrict(uploadBoundary, border, uploadName, uploadKey)
		if err != nil {
			return err
		}
		var createdBy *int64
		if uploadCreatedBy > 0 {
			createdBy = &uploadCreatedBy
			d.CreatedBy = createdBy
			d.Owner = createdBy
		}

		areas, subAreas, err := loadAreas()
		if err != nil {
			return err
		}
		u := &district.Upload{
			District: *d,
			Areas:    append(district.AreaObjects(areas, false, createdBy), district.AreaObjects(subAreas, true, createdBy)...),
		}
		if uploadInput != "" {
			records, err := readRecordsFile(uploadInput)
			if err != nil {
				return err
			}
			u.Roads = district.RoadObjects(records, d.Key)
			u.District.RoadCount = len(u.Roads)
		}
		for _, id := range uploadMembers {
			u.DistrictMembers = append(u.DistrictMembers, district.NewMember(id))
		}
		if err := u.Validate(); err != nil {
			return err
		}

		f, err := os.Create(uploadOutput)
		if err != nil {
			return eris.Wrapf(err, "upload: create %s", uploadOutput)
		}
		defer f.Close()
		if err := u.Write(f); err != nil {
			return err
		}
		zap.L().Info("wrote upload",
			zap.String("file", uploadOutput),
			zap.String("district", d.Key),
			zap.Int("areas", len(u.Areas)),
			zap.Int("roads", len(u.Roads)),
			zap.Int("members", len(u.DistrictMembers)))
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadInput, "input", "i", "formatted_roads.json", "road records file, empty for none")
	uploadCmd.Flags().StringVarP(&uploadOutput, "output", "o", "district_upload.json", "upload payload output")
	uploadCmd.Flags().StringVarP(&uploadBoundary, "boundary", "b", "district.geojson", "district boundary GeoJSON")
	uploadCmd.Flags().StringVar(&uploadName, "name", "", "district name (default from the boundary file name)")
	uploadCmd.Flags().StringVar(&uploadKey, "key", "", "district key (default slug of the name)")
	uploadCmd.Flags().Int64Var(&uploadCreatedBy, "created-by", 0, "user id of the creator and owner")
	uploadCmd.Flags().Int64SliceVar(&uploadMembers, "member", nil, "user ids to add as district members")
	rootCmd.AddCommand(uploadCmd)
}
