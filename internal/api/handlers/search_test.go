package handlers_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreitag/yelp-fusion/internal/api/handlers"
	"github.com/mfreitag/yelp-fusion/pkg/yelp"
)

func TestSearchHandler_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       any
		search     func(t *testing.T, req yelp.SearchRequest) (*yelp.SearchResponse, error)
		wantStatus int
		wantBody   string
	}{
		{
			name: "valid request returns businesses",
			body: map[string]any{
				"term":     "coffee",
				"location": "San Francisco, CA",
				"limit":    5,
			},
			search: func(t *testing.T, req yelp.SearchRequest) (*yelp.SearchResponse, error) {
				t.Helper()
				assert.Equal(t, "coffee", req.Term)
				assert.Equal(t, "San Francisco, CA", req.Location)
				assert.Equal(t, 5, req.Limit)
				return &yelp.SearchResponse{
					Businesses: []yelp.Business{
						{ID: "four-barrel-coffee", Name: "Four Barrel Coffee", Rating: 4},
						{ID: "sightglass-coffee", Name: "Sightglass Coffee", Rating: 4.5},
					},
					Total: 240,
				}, nil
			},
			wantStatus: http.StatusOK,
			wantBody:   `"total":240`,
		},
		{
			name: "latitude outside range returns 422",
			body: map[string]any{
				"term":     "coffee",
				"latitude": -100,
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `expected number >= -90`,
		},
		{
			name: "invalid sort order returns 422",
			body: map[string]any{
				"term":    "coffee",
				"sort_by": "cheapest",
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `expected value to be one of`,
		},
		{
			name: "client-side parameter rejection returns 400",
			body: map[string]any{
				"term":     "coffee",
				"open_now": true,
				"open_at":  1700000000,
			},
			search: func(t *testing.T, _ yelp.SearchRequest) (*yelp.SearchResponse, error) {
				t.Helper()
				return nil, fmt.Errorf(
					"%w: open_now and open_at cannot be combined", yelp.ErrInvalidRequest,
				)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `open_now and open_at cannot be combined`,
		},
		{
			name: "yelp 400 rejection returns 400",
			body: map[string]any{"term": "coffee"},
			search: func(t *testing.T, _ yelp.SearchRequest) (*yelp.SearchResponse, error) {
				t.Helper()
				return nil, &yelp.APIError{
					StatusCode:  http.StatusBadRequest,
					Code:        "VALIDATION_ERROR",
					Description: "Please specify a location or a latitude and longitude",
				}
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `VALIDATION_ERROR`,
		},
		{
			name: "yelp 500 returns 502",
			body: map[string]any{"term": "coffee", "location": "SF"},
			search: func(t *testing.T, _ yelp.SearchRequest) (*yelp.SearchResponse, error) {
				t.Helper()
				return nil, &yelp.APIError{
					StatusCode: http.StatusInternalServerError,
					Code:       "INTERNAL_ERROR",
				}
			},
			wantStatus: http.StatusBadGateway,
			wantBody:   `yelp API error`,
		},
		{
			name: "network error returns 502",
			body: map[string]any{"term": "coffee", "location": "SF"},
			search: func(t *testing.T, _ yelp.SearchRequest) (*yelp.SearchResponse, error) {
				t.Helper()
				return nil, errors.New("connection refused")
			},
			wantStatus: http.StatusBadGateway,
			wantBody:   `connection refused`,
		},
		{
			name:       "invalid JSON returns 400",
			body:       strings.NewReader(`not json`),
			wantStatus: http.StatusBadRequest,
			wantBody:   ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := &stubClient{
				searchFunc: func(_ context.Context, req yelp.SearchRequest) (*yelp.SearchResponse, error) {
					if tt.search == nil {
						t.Error("search should not reach the client")
						return nil, errors.New("unexpected call")
					}
					return tt.search(t, req)
				},
			}

			h := handlers.NewSearchHandler(client)

			_, api := humatest.New(t)
			handlers.RegisterSearchRoutes(api, h)

			resp := api.Post("/api/v1/search", tt.body)
			require.Equal(t, tt.wantStatus, resp.Code)
			if tt.wantBody != "" {
				assert.Contains(t, resp.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestSearchHandler_ForwardsAllFilters(t *testing.T) {
	t.Parallel()

	var got yelp.SearchRequest
	client := &stubClient{
		searchFunc: func(_ context.Context, req yelp.SearchRequest) (*yelp.SearchResponse, error) {
			got = req
			return &yelp.SearchResponse{}, nil
		},
	}

	h := handlers.NewSearchHandler(client)

	_, api := humatest.New(t)
	handlers.RegisterSearchRoutes(api, h)

	resp := api.Post("/api/v1/search", map[string]any{
		"term":       "ramen",
		"latitude":   37.7749,
		"longitude":  -122.4194,
		"radius":     5000,
		"categories": []string{"ramen", "japanese"},
		"locale":     "en_US",
		"limit":      75,
		"offset":     10,
		"sort_by":    "rating",
		"price":      []int{1, 2},
		"open_now":   true,
		"attributes": []string{"hot_and_new"},
	})
	require.Equal(t, http.StatusOK, resp.Code)

	assert.Equal(t, "ramen", got.Term)
	assert.InDelta(t, 37.7749, got.Latitude, 0.0001)
	assert.InDelta(t, -122.4194, got.Longitude, 0.0001)
	assert.Equal(t, 5000, got.Radius)
	assert.Equal(t, []string{"ramen", "japanese"}, got.Categories)
	assert.Equal(t, "en_US", got.Locale)
	assert.Equal(t, 75, got.Limit)
	assert.Equal(t, 10, got.Offset)
	assert.Equal(t, yelp.SortRating, got.SortBy)
	assert.Equal(t, []int{1, 2}, got.Price)
	assert.True(t, got.OpenNow)
	assert.Equal(t, []string{"hot_and_new"}, got.Attributes)
}
