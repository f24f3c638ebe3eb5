// Package yelp provides a Yelp Fusion v3 API client abstracted behind
// interfaces for testability.
//
// The client exchanges client credentials for an OAuth2 access token on the
// first query and exposes business search, business details, and business
// reviews as plain request/response calls. Search transparently paginates:
// the API caps each request at 50 results, so larger limits are satisfied by
// sequential requests with increasing offsets.
package yelp

import (
	"context"
)

// Client defines the interface for querying the Fusion API.
type Client interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
	BusinessDetails(ctx context.Context, id string) (*Business, error)
	BusinessReviews(ctx context.Context, id, locale string) (*ReviewsResponse, error)
}

// TokenProvider defines the interface for obtaining OAuth2 access tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}
