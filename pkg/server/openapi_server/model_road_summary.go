// SPDX-License-Identifier: MIT

package openapi_server

import "github.com/natevvv/osm-district-roads/pkg/road"

// RoadSummary is a road record without its coordinates.
type RoadSummary struct {
	Name         string   `json:"name"`
	RoadType     string   `json:"road_type,omitempty"`
	Length       float64  `json:"length"`
	Size         string   `json:"size,omitempty"`
	SegmentCount int      `json:"segment_count"`
	Areas        []string `json:"areas"`
	SubAreas     []string `json:"sub_areas"`
}

func NewRoadSummary(r road.Record) RoadSummary {
	return RoadSummary{
		Name:         r.Name,
		RoadType:     r.RoadType,
		Length:       r.Length,
		Size:         string(r.Size),
		SegmentCount: r.SegmentCount,
		Areas:        nonNil(r.Areas),
		SubAreas:     nonNil(r.SubAreas),
	}
}

type RoadList struct {
	Roads []RoadSummary `json:"roads"`
}

// AreaNames lists area and sub-area names, for the whole district or for
// one point.
type AreaNames struct {
	Areas    []string `json:"areas"`
	SubAreas []string `json:"sub_areas"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
