package domain

import (
	"github.com/rewritelab/tnorm/internal/rule"
	"github.com/rewritelab/tnorm/internal/term"
)

// metricSet builds the metric-algebra domain: add/2 and mul/2 over num/1
// leaves and opaque metric references. Identity and annihilation rules fold
// the neutral elements complexity scanners tend to emit. Metric expressions
// are reduced innermost so nested constants collapse before their parents
// are inspected.
func metricSet() (*rule.Set, error) {
	rules := []rule.Rule{
		{
			ID:            "add-zero-right",
			Left:          term.MustParse(`add(:[x], num("0"))`),
			Right:         term.MustParse(":[x]"),
			Justification: "drops the additive identity",
		},
		{
			ID:            "add-zero-left",
			Left:          term.MustParse(`add(num("0"), :[x])`),
			Right:         term.MustParse(":[x]"),
			Justification: "drops the additive identity",
		},
		{
			ID:            "mul-one-right",
			Left:          term.MustParse(`mul(:[x], num("1"))`),
			Right:         term.MustParse(":[x]"),
			Justification: "drops the multiplicative identity",
		},
		{
			ID:            "mul-one-left",
			Left:          term.MustParse(`mul(num("1"), :[x])`),
			Right:         term.MustParse(":[x]"),
			Justification: "drops the multiplicative identity",
		},
		{
			ID:            "mul-zero-right",
			Left:          term.MustParse(`mul(:[x], num("0"))`),
			Right:         term.MustParse(`num("0")`),
			Justification: "annihilation: the factor is at least one node",
		},
		{
			ID:            "mul-zero-left",
			Left:          term.MustParse(`mul(num("0"), :[x])`),
			Right:         term.MustParse(`num("0")`),
			Justification: "annihilation: the factor is at least one node",
		},
	}
	for i := range rules {
		rules[i].Domain = "metric-algebra"
	}
	return rule.NewSet("metric-algebra", rule.LeftmostInnermost, rule.NodeCount, rules)
}
