package main

import "errors"

// KnownMetrics is the set of metric names exported by yelp-fusion plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"yf_http_request_duration_seconds": true,
	"yf_http_requests_total":           true,

	// Health metrics.
	"yf_healthz_up": true,
	"yf_readyz_up":  true,

	// Fusion API metrics.
	"yf_fusion_api_calls_total":          true,
	"yf_fusion_api_errors_total":         true,
	"yf_fusion_request_duration_seconds": true,

	// Token metrics.
	"yf_token_refreshes_total":        true,
	"yf_token_refresh_failures_total": true,

	// Watch metrics.
	"yf_watch_runs_total":                     true,
	"yf_watch_run_errors_total":               true,
	"yf_watch_new_businesses_total":           true,
	"yf_watch_run_duration_seconds":           true,
	"yf_scheduler_next_run_timestamp_seconds": true,

	// Notification metrics.
	"yf_notifications_sent_total":    true,
	"yf_notification_failures_total": true,

	// Recording rules.
	"yf:http_requests:rate5m":   true,
	"yf:http_errors:rate5m":     true,
	"yf:fusion_calls:rate5m":    true,
	"yf:fusion_errors:rate5m":   true,
	"yf:token_failures:rate15m": true,
	"yf:watch_errors:rate15m":   true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
