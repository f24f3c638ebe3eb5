package yelp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// BusinessDetails implements Client.BusinessDetails, returning the full
// business record for the given business ID or alias. Exactly one request
// is issued and the decoded body is returned unmodified.
func (c *FusionClient) BusinessDetails(
	ctx context.Context,
	id string,
) (*Business, error) {
	if id == "" {
		return nil, errors.New("business id is required")
	}

	var biz Business
	err := c.getJSON(ctx, "details", businessPath+url.PathEscape(id), nil, &biz)
	if err != nil {
		return nil, fmt.Errorf("fetching business %s: %w", id, err)
	}

	return &biz, nil
}

// BusinessReviews implements Client.BusinessReviews. A non-empty locale
// selects the review language/country variant. Exactly one request is
// issued and the decoded body is returned unmodified.
func (c *FusionClient) BusinessReviews(
	ctx context.Context,
	id, locale string,
) (*ReviewsResponse, error) {
	if id == "" {
		return nil, errors.New("business id is required")
	}

	params := url.Values{}
	if locale != "" {
		params.Set("locale", locale)
	}

	var reviews ReviewsResponse
	path := businessPath + url.PathEscape(id) + "/reviews"
	if err := c.getJSON(ctx, "reviews", path, params, &reviews); err != nil {
		return nil, fmt.Errorf("fetching reviews for business %s: %w", id, err)
	}

	return &reviews, nil
}
