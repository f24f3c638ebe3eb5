package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// TokenRefreshes returns a stat panel showing OAuth token refreshes in the
// past 24 hours. A healthy service refreshes only when a token expires.
func TokenRefreshes() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Token Refreshes (24h)").
		Description("OAuth token exchanges in the last 24 hours").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`increase(yf_token_refreshes_total{job="yelp-fusion"}[24h])`,
			"", "A",
		)).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// TokenFailures returns a stat panel showing failed token exchanges in the
// past 24 hours.
func TokenFailures() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Token Failures (24h)").
		Description("Failed OAuth token exchanges in the last 24 hours").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`increase(yf_token_refresh_failures_total{job="yelp-fusion"}[24h])`,
			"", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
