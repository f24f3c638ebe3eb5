package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mfreitag/yelp-fusion/pkg/yelp"
)

// SearchHandler handles business search requests.
type SearchHandler struct {
	client yelp.Client
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(client yelp.Client) *SearchHandler {
	return &SearchHandler{client: client}
}

// SearchInput is the request body for the search endpoint.
type SearchInput struct {
	Body struct {
		Term       string   `json:"term,omitempty" doc:"Search keyword" example:"coffee"`
		Location   string   `json:"location,omitempty" doc:"Free-form location" example:"San Francisco, CA"`
		Latitude   float64  `json:"latitude,omitempty" minimum:"-90" maximum:"90" doc:"Latitude of the search center"`
		Longitude  float64  `json:"longitude,omitempty" minimum:"-180" maximum:"180" doc:"Longitude of the search center"`
		Radius     int      `json:"radius,omitempty" minimum:"0" maximum:"40000" doc:"Search radius in meters"`
		Categories []string `json:"categories,omitempty" doc:"Category aliases to filter by"`
		Locale     string   `json:"locale,omitempty" doc:"Locale code" example:"en_US"`
		Limit      int      `json:"limit,omitempty" minimum:"0" doc:"Total results wanted; values above 50 paginate upstream" example:"120"`
		Offset     int      `json:"offset,omitempty" minimum:"0" doc:"Starting position in the result set"`
		SortBy     string   `json:"sort_by,omitempty" doc:"Sort order" enum:"best_match,rating,review_count,distance,"`
		Price      []int    `json:"price,omitempty" doc:"Price tiers, each 1 through 4"`
		OpenNow    bool     `json:"open_now,omitempty" doc:"Only businesses open now"`
		OpenAt     int64    `json:"open_at,omitempty" doc:"Only businesses open at this Unix time"`
		Attributes []string `json:"attributes,omitempty" doc:"Attribute filters, e.g. hot_and_new"`
	}
}

// SearchOutput is the response body for the search endpoint.
type SearchOutput struct {
	Body struct {
		Businesses []yelp.Business `json:"businesses" doc:"Matching businesses across all fetched pages"`
		Total      int             `json:"total" doc:"Total matches the API reports"`
		Region     *yelp.Region    `json:"region,omitempty" doc:"Map region covering the results"`
	}
}

// Search proxies a business search to the Fusion API.
func (h *SearchHandler) Search(
	ctx context.Context,
	input *SearchInput,
) (*SearchOutput, error) {
	resp, err := h.client.Search(ctx, yelp.SearchRequest{
		Term:       input.Body.Term,
		Location:   input.Body.Location,
		Latitude:   input.Body.Latitude,
		Longitude:  input.Body.Longitude,
		Radius:     input.Body.Radius,
		Categories: input.Body.Categories,
		Locale:     input.Body.Locale,
		Limit:      input.Body.Limit,
		Offset:     input.Body.Offset,
		SortBy:     input.Body.SortBy,
		Price:      input.Body.Price,
		OpenNow:    input.Body.OpenNow,
		OpenAt:     input.Body.OpenAt,
		Attributes: input.Body.Attributes,
	})
	if err != nil {
		return nil, upstreamError(err)
	}

	out := &SearchOutput{}
	out.Body.Businesses = resp.Businesses
	out.Body.Total = resp.Total
	out.Body.Region = resp.Region
	return out, nil
}

// RegisterSearchRoutes registers search endpoints with the Huma API.
func RegisterSearchRoutes(api huma.API, h *SearchHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "search-businesses",
		Method:      http.MethodPost,
		Path:        "/api/v1/search",
		Summary:     "Search businesses",
		Description: "Runs a business search against the Yelp Fusion API, fetching as many pages as the requested limit needs.",
		Tags:        []string{"search"},
		Errors:      []int{http.StatusBadRequest, http.StatusBadGateway},
	}, h.Search)
}
