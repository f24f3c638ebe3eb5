package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// APICallsRate returns a timeseries panel showing upstream Fusion API calls
// per second, split by endpoint.
func APICallsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Fusion API Calls").
		Description("Upstream Fusion API requests per second by endpoint").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`sum(rate(yf_fusion_api_calls_total{job="yelp-fusion"}[5m])) by (endpoint)`,
			"{{endpoint}}", "A",
		)).
		Unit("reqps").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// FusionErrorRate returns a timeseries panel showing upstream Fusion API
// errors per second, split by endpoint.
func FusionErrorRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Fusion API Errors").
		Description("Upstream Fusion API errors per second by endpoint").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`sum(rate(yf_fusion_api_errors_total{job="yelp-fusion"}[5m])) by (endpoint)`,
			"{{endpoint}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.1, 1)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// FusionLatency returns a timeseries panel showing the p95 upstream request
// latency by endpoint.
func FusionLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Fusion Latency (p95)").
		Description("95th percentile upstream Fusion API request duration").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(ThirdWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(yf_fusion_request_duration_seconds_bucket{job="yelp-fusion"}[5m])) by (le, endpoint))`,
			"{{endpoint}}",
			"A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
