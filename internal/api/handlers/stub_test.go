package handlers_test

import (
	"context"

	"github.com/mfreitag/yelp-fusion/pkg/yelp"
)

// stubClient implements yelp.Client with a function per method so each
// test can trap the call it cares about.
type stubClient struct {
	searchFunc  func(ctx context.Context, req yelp.SearchRequest) (*yelp.SearchResponse, error)
	detailsFunc func(ctx context.Context, id string) (*yelp.Business, error)
	reviewsFunc func(ctx context.Context, id, locale string) (*yelp.ReviewsResponse, error)
}

func (s *stubClient) Search(
	ctx context.Context,
	req yelp.SearchRequest,
) (*yelp.SearchResponse, error) {
	return s.searchFunc(ctx, req)
}

func (s *stubClient) BusinessDetails(
	ctx context.Context,
	id string,
) (*yelp.Business, error) {
	return s.detailsFunc(ctx, id)
}

func (s *stubClient) BusinessReviews(
	ctx context.Context,
	id, locale string,
) (*yelp.ReviewsResponse, error) {
	return s.reviewsFunc(ctx, id, locale)
}

// stubTokens implements yelp.TokenProvider with fixed results.
type stubTokens struct {
	token string
	err   error
}

func (s stubTokens) Token(context.Context) (string, error) {
	return s.token, s.err
}
