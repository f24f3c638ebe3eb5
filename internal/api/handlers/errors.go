package handlers

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mfreitag/yelp-fusion/pkg/yelp"
)

// upstreamError converts a yelp client error into the matching HTTP error.
// Parameter problems and 4xx API rejections propagate as client errors
// carrying the API's own detail; everything else is a bad gateway.
func upstreamError(err error) error {
	if errors.Is(err, yelp.ErrInvalidRequest) {
		return huma.Error400BadRequest(err.Error())
	}

	var apiErr *yelp.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusNotFound:
			return huma.Error404NotFound(err.Error())
		case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
			return huma.Error400BadRequest(err.Error())
		}
	}

	return huma.Error502BadGateway("yelp API error: " + err.Error())
}
