package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mfreitag/yelp-fusion/pkg/yelp"
)

// ReviewsHandler handles business review lookups.
type ReviewsHandler struct {
	client yelp.Client
}

// NewReviewsHandler creates a new ReviewsHandler.
func NewReviewsHandler(client yelp.Client) *ReviewsHandler {
	return &ReviewsHandler{client: client}
}

// GetReviewsInput is the input for fetching reviews of one business.
type GetReviewsInput struct {
	ID     string `path:"id" doc:"Business ID or alias"`
	Locale string `query:"locale" doc:"Locale for review language" example:"fr_FR"`
}

// GetReviewsOutput is the response for fetching reviews.
type GetReviewsOutput struct {
	Body yelp.ReviewsResponse
}

// GetReviews returns review excerpts for a single business.
func (h *ReviewsHandler) GetReviews(
	ctx context.Context,
	input *GetReviewsInput,
) (*GetReviewsOutput, error) {
	reviews, err := h.client.BusinessReviews(ctx, input.ID, input.Locale)
	if err != nil {
		return nil, upstreamError(err)
	}

	return &GetReviewsOutput{Body: *reviews}, nil
}

// RegisterReviewRoutes registers review endpoints with the Huma API.
func RegisterReviewRoutes(api huma.API, h *ReviewsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-business-reviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/businesses/{id}/reviews",
		Summary:     "Get reviews for a business",
		Description: "Returns up to three review excerpts for a business, optionally in a specific locale.",
		Tags:        []string{"businesses"},
		Errors:      []int{http.StatusNotFound, http.StatusBadGateway},
	}, h.GetReviews)
}
