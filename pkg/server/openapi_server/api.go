// SPDX-License-Identifier: MIT

package openapi_server

import (
	"context"
	"net/http"
)

// DefaultApiRouter defines the required methods for binding the api requests to a responses for the DefaultApi
// The DefaultApiRouter implementation should parse necessary information from the http request,
// pass the data to a DefaultApiServicer to perform the required actions, then write the service results to the http response.
type DefaultApiRouter interface {
	ListRoads(http.ResponseWriter, *http.Request)
	GetRoad(http.ResponseWriter, *http.Request)
	ListAreas(http.ResponseWriter, *http.Request)
	LookupAreas(http.ResponseWriter, *http.Request)
}

// DefaultApiServicer defines the api actions for the DefaultApi service
// This interface intended to stay up to date with the openapi yaml used to generate it,
// while the service implementation can ignored with the .openapi-generator-ignore file
// and updated with the logic required for the API.
type DefaultApiServicer interface {
	ListRoads(context.Context, RoadFilter) (ImplResponse, error)
	GetRoad(context.Context, string) (ImplResponse, error)
	ListAreas(context.Context) (ImplResponse, error)
	LookupAreas(context.Context, LookupRequest) (ImplResponse, error)
}

// RoadFilter narrows the road listing. Empty fields match everything.
type RoadFilter struct {
	Area string
	Size string
}
