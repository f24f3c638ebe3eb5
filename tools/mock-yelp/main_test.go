package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func loadTestFixture(t *testing.T) *searchFixture {
	t.Helper()
	path := filepath.Join("testdata", "businesses.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	var fixture searchFixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return &fixture
}

func TestLoadFixture(t *testing.T) {
	fixture := loadTestFixture(t)
	if len(fixture.Businesses) == 0 {
		t.Fatal("expected businesses in fixture")
	}
	for i, raw := range fixture.Businesses {
		var key businessKey
		if err := json.Unmarshal(raw, &key); err != nil {
			t.Fatalf("parsing fixture business %d: %v", i, err)
		}
		if key.ID == "" || key.Alias == "" || key.Name == "" {
			t.Errorf("business %d missing id/alias/name", i)
		}
	}
}

func TestTokenHandler_Success(t *testing.T) {
	handler := tokenHandler(testLogger())
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {"app-id"},
		"client_secret": {"app-secret"},
	}
	req := httptest.NewRequest(http.MethodPost, "/oauth2/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["access_token"] == nil || resp["access_token"] == "" {
		t.Error("expected non-empty access_token")
	}
	if resp["token_type"] != "Bearer" {
		t.Errorf("token_type=%v, want Bearer", resp["token_type"])
	}
	if resp["expires_in"] != float64(86400) {
		t.Errorf("expires_in=%v, want 86400", resp["expires_in"])
	}
}

func TestTokenHandler_BadGrantType(t *testing.T) {
	handler := tokenHandler(testLogger())
	form := url.Values{
		"grant_type":    {"password"},
		"client_id":     {"app-id"},
		"client_secret": {"app-secret"},
	}
	req := httptest.NewRequest(http.MethodPost, "/oauth2/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestTokenHandler_MissingCredentials(t *testing.T) {
	handler := tokenHandler(testLogger())
	form := url.Values{"grant_type": {"client_credentials"}}
	req := httptest.NewRequest(http.MethodPost, "/oauth2/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestRequireBearer_MissingToken(t *testing.T) {
	called := false
	handler := requireBearer(testLogger(), func(http.ResponseWriter, *http.Request) {
		called = true
	})
	req := httptest.NewRequest(http.MethodGet, "/v3/businesses/search", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	if called {
		t.Error("handler should not run without a bearer token")
	}
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}
}

type searchReply struct {
	Businesses []json.RawMessage `json:"businesses"`
	Total      int               `json:"total"`
}

func doSearch(t *testing.T, fixture *searchFixture, query string) (*searchReply, int) {
	t.Helper()
	handler := searchHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/v3/businesses/search?"+query, http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	var resp searchReply
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return &resp, w.Code
}

func TestSearchHandler_RequiresLocation(t *testing.T) {
	fixture := loadTestFixture(t)
	_, code := doSearch(t, fixture, "term=coffee")
	if code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", code, http.StatusBadRequest)
	}
}

func TestSearchHandler_TermFilter(t *testing.T) {
	fixture := loadTestFixture(t)
	resp, code := doSearch(t, fixture, "term=coffee&location=SF")
	if code != http.StatusOK {
		t.Fatalf("status=%d, want %d", code, http.StatusOK)
	}
	if resp.Total == 0 {
		t.Error("expected coffee results")
	}
	if resp.Total >= len(fixture.Businesses) {
		t.Error("expected filter to reduce results")
	}
	for _, raw := range resp.Businesses {
		var key businessKey
		_ = json.Unmarshal(raw, &key)
		if !strings.Contains(strings.ToLower(key.Name), "coffee") {
			t.Errorf("business %q does not match term", key.Name)
		}
	}
}

func TestSearchHandler_Pagination(t *testing.T) {
	fixture := loadTestFixture(t)
	total := len(fixture.Businesses)

	resp, _ := doSearch(t, fixture, "location=SF&limit=3")
	if len(resp.Businesses) != 3 {
		t.Errorf("businesses=%d, want 3", len(resp.Businesses))
	}
	if resp.Total != total {
		t.Errorf("total=%d, want %d", resp.Total, total)
	}

	resp, _ = doSearch(t, fixture, "location=SF&limit=50&offset=3")
	if len(resp.Businesses) != total-3 {
		t.Errorf("businesses=%d, want %d", len(resp.Businesses), total-3)
	}
}

func TestSearchHandler_OffsetPastEnd(t *testing.T) {
	fixture := loadTestFixture(t)
	resp, code := doSearch(t, fixture, "location=SF&offset=9999")
	if code != http.StatusOK {
		t.Fatalf("status=%d, want %d", code, http.StatusOK)
	}
	if resp.Businesses == nil {
		t.Error("expected empty array, got null")
	}
	if len(resp.Businesses) != 0 {
		t.Errorf("businesses=%d, want 0", len(resp.Businesses))
	}
}

func TestSearchHandler_LimitOverMax(t *testing.T) {
	fixture := loadTestFixture(t)
	_, code := doSearch(t, fixture, "location=SF&limit=51")
	if code != http.StatusBadRequest {
		t.Fatalf("status=%d, want %d", code, http.StatusBadRequest)
	}
}

func TestDetailsHandler_ByIDAndAlias(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := detailsHandler(testLogger(), fixture)

	var key businessKey
	if err := json.Unmarshal(fixture.Businesses[0], &key); err != nil {
		t.Fatalf("parsing fixture business: %v", err)
	}

	for _, id := range []string{key.ID, key.Alias} {
		req := httptest.NewRequest(http.MethodGet, "/v3/businesses/"+id, http.NoBody)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()

		handler(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status=%d for %q, want %d", w.Code, id, http.StatusOK)
		}
		var got businessKey
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if got.ID != key.ID {
			t.Errorf("id=%q, want %q", got.ID, key.ID)
		}
	}
}

func TestDetailsHandler_NotFound(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := detailsHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/v3/businesses/no-such-business", http.NoBody)
	req.SetPathValue("id", "no-such-business")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestReviewsHandler(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := reviewsHandler(testLogger(), fixture)

	var key businessKey
	if err := json.Unmarshal(fixture.Businesses[0], &key); err != nil {
		t.Fatalf("parsing fixture business: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v3/businesses/"+key.ID+"/reviews", http.NoBody)
	req.SetPathValue("id", key.ID)
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Reviews []map[string]any `json:"reviews"`
		Total   int              `json:"total"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Total != 3 || len(resp.Reviews) != 3 {
		t.Errorf("reviews=%d total=%d, want 3/3", len(resp.Reviews), resp.Total)
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
