package yelp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mfreitag/yelp-fusion/internal/metrics"
)

const (
	defaultBaseURL = "https://api.yelp.com"
	searchPath     = "/v3/businesses/search"
	businessPath   = "/v3/businesses/"

	// maxPageSize is the largest result count the API returns per request.
	maxPageSize = 50
)

// FusionClient implements Client against the public Fusion v3 endpoints.
type FusionClient struct {
	tokens  TokenProvider
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

// FusionOption configures the FusionClient.
type FusionOption func(*FusionClient)

// WithBaseURL overrides the default Fusion API base URL.
func WithBaseURL(u string) FusionOption {
	return func(c *FusionClient) {
		c.baseURL = u
	}
}

// WithFusionHTTPClient overrides the default HTTP client.
func WithFusionHTTPClient(hc *http.Client) FusionOption {
	return func(c *FusionClient) {
		c.client = hc
	}
}

// WithLogger sets a logger for per-page search progress.
func WithLogger(l *log.Logger) FusionOption {
	return func(c *FusionClient) {
		c.logger = l
	}
}

// NewFusionClient creates a Fusion API client on top of the given token
// provider.
func NewFusionClient(tokens TokenProvider, opts ...FusionOption) *FusionClient {
	c := &FusionClient{
		tokens:  tokens,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// New creates a FusionClient from raw credentials using the default
// endpoints. No network call is made until the first query.
func New(clientID, clientSecret string, opts ...FusionOption) *FusionClient {
	return NewFusionClient(NewOAuthTokenProvider(clientID, clientSecret), opts...)
}

// Search implements Client.Search, fetching as many pages as needed to
// satisfy req.Limit. The API caps each request at 50 results, so larger
// limits are split into sequential requests with increasing offsets; each
// page's offset is the starting offset plus the count collected so far.
// A req.Limit of zero issues a single request with the API's default page
// size. Pagination stops early when a page comes back short of its
// requested limit, since no further results exist. A failed page aborts
// the whole search.
func (c *FusionClient) Search(
	ctx context.Context,
	req SearchRequest,
) (*SearchResponse, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	requested := req.Limit
	if requested == 0 {
		return c.searchPage(ctx, req)
	}

	pageSize := min(maxPageSize, requested)
	startOffset := req.Offset

	result := &SearchResponse{}

	for len(result.Businesses) < requested {
		page := req
		page.Limit = min(pageSize, requested-len(result.Businesses))
		page.Offset = startOffset + len(result.Businesses)

		resp, err := c.searchPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("searching at offset %d: %w", page.Offset, err)
		}

		if result.Region == nil {
			result.Region = resp.Region
		}
		result.Businesses = append(result.Businesses, resp.Businesses...)
		result.Total = resp.Total

		if c.logger != nil {
			c.logger.Debug("fetched search page",
				"offset", page.Offset,
				"returned", len(resp.Businesses),
				"collected", len(result.Businesses),
				"total", resp.Total,
			)
		}

		// A short page means the API has no more results.
		if len(resp.Businesses) < page.Limit {
			break
		}
	}

	if len(result.Businesses) > requested {
		result.Businesses = result.Businesses[:requested]
	}

	return result, nil
}

// searchPage issues exactly one search request.
func (c *FusionClient) searchPage(
	ctx context.Context,
	req SearchRequest,
) (*SearchResponse, error) {
	var resp SearchResponse
	if err := c.getJSON(ctx, "search", searchPath, req.values(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// getJSON issues one authenticated GET to the given path and decodes the
// JSON body into dst. Non-2xx statuses surface as *APIError and
// undecodable bodies as *DecodeError.
func (c *FusionClient) getJSON(
	ctx context.Context,
	endpoint, path string,
	params url.Values,
	dst any,
) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("getting auth token: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating HTTP request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+token)

	metrics.FusionAPICallsTotal.WithLabelValues(endpoint).Inc()
	start := time.Now()

	resp, err := c.client.Do(httpReq)
	if err != nil {
		metrics.FusionAPIErrorsTotal.WithLabelValues(endpoint).Inc()
		return fmt.Errorf("executing %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	metrics.FusionRequestDuration.WithLabelValues(endpoint).Observe(
		time.Since(start).Seconds(),
	)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.FusionAPIErrorsTotal.WithLabelValues(endpoint).Inc()
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.FusionAPIErrorsTotal.WithLabelValues(endpoint).Inc()
		return newAPIError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		metrics.FusionAPIErrorsTotal.WithLabelValues(endpoint).Inc()
		return &DecodeError{Endpoint: endpoint, Err: err}
	}

	return nil
}
