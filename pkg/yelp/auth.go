package yelp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mfreitag/yelp-fusion/internal/metrics"
)

const defaultTokenURL = "https://api.yelp.com/oauth2/token" //nolint:gosec // not a credential

// OAuthTokenProvider implements TokenProvider using the Fusion OAuth2
// client credentials flow. The token is cached together with its absolute
// expiry instant and refreshed lazily on the first call after expiry; a
// token is considered valid strictly until that instant, with no
// refresh-ahead window. Thread-safe via mutex.
type OAuthTokenProvider struct {
	clientID     string
	clientSecret string
	tokenURL     string
	client       *http.Client

	mu      sync.Mutex
	token   string
	expiry  time.Time
	nowFunc func() time.Time // for testing
}

// OAuthOption configures the OAuthTokenProvider.
type OAuthOption func(*OAuthTokenProvider)

// WithTokenURL overrides the default Fusion token endpoint.
func WithTokenURL(u string) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.tokenURL = u
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(c *http.Client) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.client = c
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) OAuthOption {
	return func(p *OAuthTokenProvider) {
		p.nowFunc = f
	}
}

// NewOAuthTokenProvider creates a new Fusion OAuth2 token provider. The
// credentials are held for the lifetime of the provider; no network call
// is made until the first Token call.
func NewOAuthTokenProvider(
	clientID, clientSecret string,
	opts ...OAuthOption,
) *OAuthTokenProvider {
	p := &OAuthTokenProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     defaultTokenURL,
		client:       &http.Client{Timeout: 10 * time.Second},
		nowFunc:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// Token returns a valid OAuth2 access token, refreshing if none is held or
// the held one has expired.
func (p *OAuthTokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.nowFunc().Before(p.expiry) {
		return p.token, nil
	}

	return p.refreshLocked(ctx)
}

func (p *OAuthTokenProvider) refreshLocked(
	ctx context.Context,
) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {p.clientID},
		"client_secret": {p.clientSecret},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.tokenURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		metrics.TokenRefreshFailuresTotal.Inc()
		return "", fmt.Errorf("executing token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.TokenRefreshFailuresTotal.Inc()
		return "", fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.TokenRefreshFailuresTotal.Inc()

		var payload apiErrorResponse
		_ = json.Unmarshal(body, &payload) //nolint:errcheck // best-effort error parsing
		return "", &AuthError{
			StatusCode:  resp.StatusCode,
			Code:        payload.Error.Code,
			Description: payload.Error.Description,
		}
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		metrics.TokenRefreshFailuresTotal.Inc()
		return "", &AuthError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("parsing token response: %w", err),
		}
	}

	// The old token is replaced wholesale; expiry is the issue instant
	// plus the granted lifetime, pinned to UTC.
	p.token = tokenResp.AccessToken
	p.expiry = p.nowFunc().UTC().Add(
		time.Duration(tokenResp.ExpiresIn) * time.Second,
	)

	metrics.TokenRefreshesTotal.Inc()

	return p.token, nil
}
