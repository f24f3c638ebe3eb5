// Package main implements a mock Yelp Fusion API server for local
// development. It serves canned responses from a JSON fixture to simulate
// the businesses endpoints and the OAuth token endpoint without requiring
// real Yelp credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type searchFixture struct {
	Businesses []json.RawMessage `json:"businesses"`
}

type businessKey struct {
	ID    string `json:"id"`
	Alias string `json:"alias"`
	Name  string `json:"name"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-yelp/testdata/businesses.json", "path to business fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "businesses", len(fixture.Businesses))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth2/token", tokenHandler(logger))
	mux.HandleFunc("GET /v3/businesses/search", requireBearer(logger, searchHandler(logger, fixture)))
	mux.HandleFunc("GET /v3/businesses/{id}", requireBearer(logger, detailsHandler(logger, fixture)))
	mux.HandleFunc("GET /v3/businesses/{id}/reviews", requireBearer(logger, reviewsHandler(logger, fixture)))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock Yelp server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) (*searchFixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var fixture searchFixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &fixture, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

// writeError emits the Fusion API error envelope.
func writeError(w http.ResponseWriter, status int, code, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":        code,
			"description": description,
		},
	})
}

func requireBearer(logger *slog.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" || token == r.Header.Get("Authorization") {
			logger.Warn("request missing bearer token", "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "TOKEN_MISSING",
				"An access token must be supplied in order to use this endpoint.")
			return
		}
		next(w, r)
	}
}

func tokenHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "could not parse request body")
			return
		}

		if grant := r.PostFormValue("grant_type"); grant != "client_credentials" {
			logger.Warn("token request with bad grant type", "grant_type", grant)
			writeError(w, http.StatusBadRequest, "GRANT_TYPE_ERROR",
				"grant_type must be client_credentials")
			return
		}

		if r.PostFormValue("client_id") == "" || r.PostFormValue("client_secret") == "" {
			logger.Warn("token request missing credentials")
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR",
				"client_id and client_secret are required")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "mock-token-" + strconv.FormatInt(int64(os.Getpid()), 16),
			"token_type":   "Bearer",
			"expires_in":   86400,
		})
		logger.Info("issued mock token")
	}
}

func searchHandler(logger *slog.Logger, fixture *searchFixture) http.HandlerFunc {
	// Pre-parse names for filtering.
	type indexedBusiness struct {
		raw  json.RawMessage
		name string
	}
	businesses := make([]indexedBusiness, 0, len(fixture.Businesses))
	for _, raw := range fixture.Businesses {
		var key businessKey
		//nolint:errcheck,gosec // fixture data is trusted; name extraction is best-effort
		json.Unmarshal(raw, &key)
		businesses = append(businesses, indexedBusiness{raw: raw, name: strings.ToLower(key.Name)})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if q.Get("location") == "" && (q.Get("latitude") == "" || q.Get("longitude") == "") {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR",
				"Please specify a location or a latitude and longitude")
			return
		}

		limit := 20
		if s := q.Get("limit"); s != "" {
			v, err := strconv.Atoi(s)
			if err != nil || v < 0 {
				writeError(w, http.StatusBadRequest, "VALIDATION_ERROR",
					fmt.Sprintf("Parameter limit is invalid: %s", s))
				return
			}
			if v > 50 {
				writeError(w, http.StatusBadRequest, "VALIDATION_ERROR",
					fmt.Sprintf("Parameter limit is invalid: %d is greater than the maximum of 50", v))
				return
			}
			limit = v
		}

		offset := 0
		if s := q.Get("offset"); s != "" {
			if v, err := strconv.Atoi(s); err == nil && v >= 0 {
				offset = v
			}
		}

		// Filter by term substring match on name.
		term := strings.ToLower(q.Get("term"))
		var matched []json.RawMessage
		for _, b := range businesses {
			if term == "" || strings.Contains(b.name, term) {
				matched = append(matched, b.raw)
			}
		}

		total := len(matched)

		// Apply pagination.
		if offset >= len(matched) {
			matched = nil
		} else {
			end := min(offset+limit, len(matched))
			matched = matched[offset:end]
		}

		// Return empty array instead of null when no results.
		if matched == nil {
			matched = []json.RawMessage{}
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string]any{
			"businesses": matched,
			"total":      total,
			"region": map[string]any{
				"center": map[string]float64{
					"latitude":  37.7749,
					"longitude": -122.4194,
				},
			},
		})
		logger.Info("search", "term", term, "matched", total, "returned", len(matched), "offset", offset, "limit", limit)
	}
}

func findBusiness(fixture *searchFixture, id string) (json.RawMessage, bool) {
	for _, raw := range fixture.Businesses {
		var key businessKey
		//nolint:errcheck,gosec // fixture data is trusted
		json.Unmarshal(raw, &key)
		if key.ID == id || key.Alias == id {
			return raw, true
		}
	}
	return nil, false
}

func detailsHandler(logger *slog.Logger, fixture *searchFixture) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		raw, ok := findBusiness(fixture, id)
		if !ok {
			logger.Warn("business not found", "id", id)
			writeError(w, http.StatusNotFound, "BUSINESS_NOT_FOUND",
				fmt.Sprintf("The requested business could not be found: %s", id))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		w.Write(raw)
		logger.Info("business details", "id", id)
	}
}

func reviewsHandler(logger *slog.Logger, fixture *searchFixture) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		raw, ok := findBusiness(fixture, id)
		if !ok {
			logger.Warn("business not found for reviews", "id", id)
			writeError(w, http.StatusNotFound, "BUSINESS_NOT_FOUND",
				fmt.Sprintf("The requested business could not be found: %s", id))
			return
		}

		var key businessKey
		//nolint:errcheck,gosec // fixture data is trusted
		json.Unmarshal(raw, &key)

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(cannedReviews(key))
		logger.Info("business reviews", "id", id)
	}
}

// cannedReviews fabricates a stable review set for a fixture business.
func cannedReviews(key businessKey) map[string]any {
	review := func(id, name, text string, rating float64, created string) map[string]any {
		return map[string]any{
			"id":           id,
			"url":          "https://www.yelp.com/biz/" + key.Alias + "?hrid=" + id,
			"text":         text,
			"rating":       rating,
			"time_created": created,
			"user": map[string]any{
				"id":          "user-" + id,
				"profile_url": "https://www.yelp.com/user_details?userid=user-" + id,
				"image_url":   "",
				"name":        name,
			},
		}
	}

	return map[string]any{
		"reviews": []map[string]any{
			review(key.ID+"-r1", "Dana M.",
				"Went to "+key.Name+" last weekend and it did not disappoint...",
				5, "2025-11-02 14:21:08"),
			review(key.ID+"-r2", "Priya K.",
				"Solid spot. Service was a little slow but worth the wait...",
				4, "2025-10-18 09:47:33"),
			review(key.ID+"-r3", "Jordan T.",
				"Decent, though I expected more given the hype...",
				3, "2025-09-30 19:02:51"),
		},
		"total":              3,
		"possible_languages": []string{"en"},
	}
}
