package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// WatchRunRate returns a timeseries panel showing watch poll executions per
// hour, split by watch.
func WatchRunRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Watch Polls / h").
		Description("Watch poll executions per hour by watch").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(yf_watch_runs_total{job="yelp-fusion"}[15m])) by (watch) * 3600`,
			"{{watch}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// WatchErrors returns a timeseries panel showing watch poll failures per
// hour.
func WatchErrors() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Watch Errors / h").
		Description("Failed watch polls per hour").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`yf:watch_errors:rate15m * 3600`, "errors/h", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenYellowRed(0.5, 2)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// NewBusinesses returns a timeseries panel showing newly discovered
// businesses in the past day, split by watch.
func NewBusinesses() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("New Businesses (24h)").
		Description("Businesses seen for the first time in the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`increase(yf_watch_new_businesses_total{job="yelp-fusion"}[24h])`,
			"{{watch}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// WatchDuration returns a timeseries panel showing the p95 watch poll cycle
// duration.
func WatchDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Poll Duration (p95)").
		Description("95th percentile duration of a full watch poll cycle").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(yf_watch_run_duration_seconds_bucket{job="yelp-fusion"}[15m])) by (le))`,
			"p95",
			"A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
