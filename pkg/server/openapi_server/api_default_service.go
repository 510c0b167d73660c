package openapi_server

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/natevvv/osm-district-roads/pkg/area"
	"github.com/natevvv/osm-district-roads/pkg/geometry"
	"github.com/natevvv/osm-district-roads/pkg/road"
)

// DefaultApiService is a service that implements the logic for the DefaultApiServicer
// This service should implement the business logic for every endpoint for the DefaultApi API.
// Include any external packages or services that will be required by this service.
type DefaultApiService struct {
	roads    []road.Record
	byName   map[string]int
	areas    *area.Resolver
	subAreas *area.Resolver
}

// NewDefaultApiService creates a default api service over a processed
// district. Nil resolvers serve no areas.
func NewDefaultApiService(records []road.Record, areas, subAreas *area.Resolver) DefaultApiServicer {
	if areas == nil {
		areas = area.NewResolver(nil, nil)
	}
	if subAreas == nil {
		subAreas = area.NewResolver(nil, nil)
	}
	roads := slices.Clone(records)
	slices.SortStableFunc(roads, func(a, b road.Record) int { return strings.Compare(a.Name, b.Name) })
	byName := make(map[string]int, len(roads))
	for i, r := range roads {
		byName[r.Name] = i
	}
	return &DefaultApiService{
		roads:    roads,
		byName:   byName,
		areas:    areas,
		subAreas: subAreas,
	}
}

// ListRoads - List road summaries
func (s *DefaultApiService) ListRoads(ctx context.Context, filter RoadFilter) (ImplResponse, error) {
	if filter.Size != "" && !road.Size(filter.Size).Valid() {
		return Response(http.StatusBadRequest, "Unknown size "+filter.Size), nil
	}
	summaries := make([]RoadSummary, 0, len(s.roads))
	for _, r := range s.roads {
		if filter.Size != "" && string(r.Size) != filter.Size {
			continue
		}
		if filter.Area != "" && !slices.Contains(r.Areas, filter.Area) && !slices.Contains(r.SubAreas, filter.Area) {
			continue
		}
		summaries = append(summaries, NewRoadSummary(r))
	}
	return Response(http.StatusOK, RoadList{Roads: summaries}), nil
}

// GetRoad - Get one road record by name
func (s *DefaultApiService) GetRoad(ctx context.Context, name string) (ImplResponse, error) {
	i, ok := s.byName[name]
	if !ok {
		return Response(http.StatusNotFound, "Unknown road "+name), nil
	}
	return Response(http.StatusOK, s.roads[i]), nil
}

func (s *DefaultApiService) ListAreas(ctx context.Context) (ImplResponse, error) {
	return Response(http.StatusOK, AreaNames{Areas: s.areas.Names(), SubAreas: s.subAreas.Names()}), nil
}

// LookupAreas - Areas and sub-areas containing a point
func (s *DefaultApiService) LookupAreas(ctx context.Context, req LookupRequest) (ImplResponse, error) {
	lat, lon := *req.Lat, *req.Lon
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Response(http.StatusBadRequest, "Coordinates out of range"), nil
	}
	p := geometry.MakePoint(lat, lon)
	return Response(http.StatusOK, AreaNames{Areas: s.areas.Lookup(p), SubAreas: s.subAreas.Lookup(p)}), nil
}
