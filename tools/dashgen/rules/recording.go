package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "yf-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "yf-recording",
					Rules: []Rule{
						{
							Record: "yf:http_requests:rate5m",
							Expr:   `sum(rate(yf_http_requests_total[5m]))`,
						},
						{
							Record: "yf:http_errors:rate5m",
							Expr:   `sum(rate(yf_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "yf:fusion_calls:rate5m",
							Expr:   `sum(rate(yf_fusion_api_calls_total[5m]))`,
						},
						{
							Record: "yf:fusion_errors:rate5m",
							Expr:   `sum(rate(yf_fusion_api_errors_total[5m]))`,
						},
						{
							Record: "yf:token_failures:rate15m",
							Expr:   `rate(yf_token_refresh_failures_total[15m])`,
						},
						{
							Record: "yf:watch_errors:rate15m",
							Expr:   `sum(rate(yf_watch_run_errors_total[15m]))`,
						},
					},
				},
			},
		},
	}
}
