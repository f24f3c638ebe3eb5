package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// yelp-fusion operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "yf-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "yf-alerts",
					Rules: []Rule{
						{
							Alert: "YfDown",
							Expr:  `absent(up{job="yelp-fusion"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Yelp Fusion proxy is down",
								"description": "The yelp-fusion job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "YfReadinessDown",
							Expr:  `yf_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "Yelp Fusion readiness check is failing",
								"description": "The readiness probe has been reporting not-ready for more than 2 minutes. Token exchange against the Fusion API is likely failing.",
							},
						},
						{
							Alert: "YfHighErrorRate",
							Expr:  `yf:http_errors:rate5m / yf:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on the Yelp Fusion proxy",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "YfTokenRefreshFailures",
							Expr:  `yf:token_failures:rate15m > 0`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "OAuth token exchanges are failing",
								"description": "Token exchanges against the Fusion API have been failing for more than 5 minutes. All upstream requests will fail until a token is issued.",
							},
						},
						{
							Alert: "YfFusionErrors",
							Expr:  `yf:fusion_errors:rate5m > 0.1`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Upstream Fusion API error rate is elevated",
								"description": "Fusion API calls are failing at more than 0.1/s for the last 5 minutes.",
							},
						},
						{
							Alert: "YfWatchRunErrors",
							Expr:  `yf:watch_errors:rate15m > 0`,
							For:   "30m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Watch polls are failing",
								"description": "One or more watches have been failing their scheduled polls for more than 30 minutes.",
							},
						},
						{
							Alert: "YfNotificationFailures",
							Expr:  `increase(yf_notification_failures_total[5m]) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Notification delivery failures detected",
								"description": "One or more alert notifications (Discord webhooks) have failed to send.",
							},
						},
					},
				},
			},
		},
	}
}
