package openapi_server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
)

// DefaultApiController binds http requests to an api service and writes the service results to the http response
type DefaultApiController struct {
	service      DefaultApiServicer
	errorHandler ErrorHandler
}

// DefaultApiOption for how the controller is set up.
type DefaultApiOption func(*DefaultApiController)

// WithDefaultApiErrorHandler inject ErrorHandler into controller
func WithDefaultApiErrorHandler(h ErrorHandler) DefaultApiOption {
	return func(c *DefaultApiController) {
		c.errorHandler = h
	}
}

// NewDefaultApiController creates a default api controller
func NewDefaultApiController(s DefaultApiServicer, opts ...DefaultApiOption) Router {
	controller := &DefaultApiController{
		service:      s,
		errorHandler: DefaultErrorHandler,
	}

	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

// Routes returns all of the api route for the DefaultApiController
func (c *DefaultApiController) Routes() Routes {
	return Routes{
		{
			"ListRoads",
			strings.ToUpper("Get"),
			"/roads",
			c.ListRoads,
		},
		{
			"GetRoad",
			strings.ToUpper("Get"),
			"/roads/{name}",
			c.GetRoad,
		},
		{
			"ListAreas",
			strings.ToUpper("Get"),
			"/areas",
			c.ListAreas,
		},
		{
			"LookupAreas",
			strings.ToUpper("Post"),
			"/areas/lookup",
			c.LookupAreas,
		},
	}
}

// ListRoads - List road summaries
func (c *DefaultApiController) ListRoads(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := RoadFilter{Area: query.Get("area"), Size: query.Get("size")}
	result, err := c.service.ListRoads(r.Context(), filter)
	// If an error occurred, encode the error with the status code
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	// If no error, encode the body and the result code
	setCORSHeaders(w, http.MethodGet)
	EncodeJSONResponse(result.Body, &result.Code, w)
}

// GetRoad - Get one road record by name
func (c *DefaultApiController) GetRoad(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(mux.Vars(r)["name"])
	if err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	result, err := c.service.GetRoad(r.Context(), name)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	setCORSHeaders(w, http.MethodGet)
	EncodeJSONResponse(result.Body, &result.Code, w)
}

func (c *DefaultApiController) ListAreas(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.ListAreas(r.Context())
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	setCORSHeaders(w, http.MethodGet)
	EncodeJSONResponse(result.Body, &result.Code, w)
}

// LookupAreas - Areas and sub-areas containing a point
func (c *DefaultApiController) LookupAreas(w http.ResponseWriter, r *http.Request) {
	lookupRequestParam := LookupRequest{}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&lookupRequestParam); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	if err := AssertLookupRequestRequired(lookupRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.LookupAreas(r.Context(), lookupRequestParam)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	setCORSHeaders(w, http.MethodPost)
	EncodeJSONResponse(result.Body, &result.Code, w)
}

func setCORSHeaders(w http.ResponseWriter, method string) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", method)
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
