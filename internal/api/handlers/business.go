package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mfreitag/yelp-fusion/pkg/yelp"
)

// BusinessHandler handles business detail lookups.
type BusinessHandler struct {
	client yelp.Client
}

// NewBusinessHandler creates a new BusinessHandler.
func NewBusinessHandler(client yelp.Client) *BusinessHandler {
	return &BusinessHandler{client: client}
}

// GetBusinessInput is the input for fetching one business.
type GetBusinessInput struct {
	ID string `path:"id" doc:"Business ID or alias" example:"north-india-restaurant-san-francisco"`
}

// GetBusinessOutput is the response for fetching one business.
type GetBusinessOutput struct {
	Body yelp.Business
}

// GetBusiness returns the full detail record for a single business.
func (h *BusinessHandler) GetBusiness(
	ctx context.Context,
	input *GetBusinessInput,
) (*GetBusinessOutput, error) {
	biz, err := h.client.BusinessDetails(ctx, input.ID)
	if err != nil {
		return nil, upstreamError(err)
	}

	return &GetBusinessOutput{Body: *biz}, nil
}

// RegisterBusinessRoutes registers business endpoints with the Huma API.
func RegisterBusinessRoutes(api huma.API, h *BusinessHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-business",
		Method:      http.MethodGet,
		Path:        "/api/v1/businesses/{id}",
		Summary:     "Get a business by ID",
		Description: "Returns the detail record for a business by its Fusion ID or alias.",
		Tags:        []string{"businesses"},
		Errors:      []int{http.StatusNotFound, http.StatusBadGateway},
	}, h.GetBusiness)
}
