// Package validate checks generated dashboards and rule files for PromQL
// syntax errors and references to metrics the service does not export.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/mfreitag/yelp-fusion/tools/dashgen/rules"
)

// Result accumulates validation findings. Parse failures are errors;
// references to unknown metrics are warnings, since they may be standard
// metrics from another exporter.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation found no errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

// Merge folds another result into this one.
func (r *Result) Merge(other Result) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Dashboard validates every query expression in a built dashboard.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("encoding dashboard: %v", err))
		return res
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("decoding dashboard: %v", err))
		return res
	}

	for _, expr := range collectExprs(doc) {
		checkExpr(expr, known, &res)
	}
	return res
}

// RuleFile validates every expression in a PrometheusRule resource.
func RuleFile(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result
	for _, group := range cr.Spec.Groups {
		for _, rule := range group.Rules {
			checkExpr(rule.Expr, known, &res)
		}
	}
	return res
}

// collectExprs walks a decoded JSON document and gathers every string under
// an "expr" key, which is where Grafana panels keep their queries.
func collectExprs(v any) []string {
	var exprs []string
	switch node := v.(type) {
	case map[string]any:
		for key, val := range node {
			if key == "expr" {
				if s, ok := val.(string); ok && s != "" {
					exprs = append(exprs, s)
					continue
				}
			}
			exprs = append(exprs, collectExprs(val)...)
		}
	case []any:
		for _, item := range node {
			exprs = append(exprs, collectExprs(item)...)
		}
	}
	return exprs
}

func checkExpr(expr string, known map[string]bool, res *Result) {
	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("invalid PromQL %q: %v", expr, err))
		return
	}

	//nolint:errcheck // the inspector never returns an error
	parser.Inspect(parsed, func(node parser.Node, _ []parser.Node) error {
		if vs, ok := node.(*parser.VectorSelector); ok && vs.Name != "" {
			if !knownMetric(vs.Name, known) {
				res.Warnings = append(res.Warnings,
					fmt.Sprintf("expression %q references unknown metric %q", expr, vs.Name))
			}
		}
		return nil
	})
}

// knownMetric also accepts the _bucket, _sum, and _count series that
// histograms expose alongside their base name.
func knownMetric(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}
