// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/mfreitag/yelp-fusion/tools/dashgen/panels"
)

// BuildOverview constructs the Yelp Fusion Overview dashboard with all
// metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Yelp Fusion Overview").
		Uid("yf-overview").
		Tags([]string{"yf", "yelp-fusion"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.UptimeStat()).
		WithPanel(panels.NextRunStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 3: Fusion API.
	b.WithRow(dashboard.NewRowBuilder("Fusion API").
		WithPanel(panels.APICallsRate()).
		WithPanel(panels.FusionErrorRate()).
		WithPanel(panels.FusionLatency()))

	// Row 4: Token.
	b.WithRow(dashboard.NewRowBuilder("Token").
		WithPanel(panels.TokenRefreshes()).
		WithPanel(panels.TokenFailures()))

	// Row 5: Watches.
	b.WithRow(dashboard.NewRowBuilder("Watches").
		WithPanel(panels.WatchRunRate()).
		WithPanel(panels.WatchErrors()).
		WithPanel(panels.NewBusinesses()).
		WithPanel(panels.WatchDuration()))

	// Row 6: Notifications.
	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.NotificationsSent()).
		WithPanel(panels.NotificationFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
