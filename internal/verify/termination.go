package verify

import (
	"github.com/rewritelab/tnorm/internal/rule"
)

// RuleCheck is the termination-measure outcome for a single rule: the
// measures of both sides under the synthetic substitution and whether the
// rule strictly decreases.
type RuleCheck struct {
	RuleID        string `json:"rule_id"`
	Justification string `json:"justification,omitempty"`
	LeftMeasure   int    `json:"left_measure"`
	RightMeasure  int    `json:"right_measure"`
	Decreases     bool   `json:"decreases"`
}

// CheckTermination instantiates each rule's sides with a fixed synthetic
// substitution (every variable replaced by a unique fresh atom of default
// weight) and requires measure(left) > measure(right). This is a syntactic
// proxy for "the rule decreases under all substitutions", which holds
// whenever the measure is monotone and subadditive over children, the
// documented precondition for domain-supplied measures.
func CheckTermination(rs *rule.Set) []RuleCheck {
	checks := make([]RuleCheck, 0, len(rs.Rules))
	for _, r := range rs.Rules {
		left := skolemize(r.Left)
		right := skolemize(r.Right)
		lm := rs.Measure(left)
		rm := rs.Measure(right)
		checks = append(checks, RuleCheck{
			RuleID:        r.ID,
			Justification: r.Justification,
			LeftMeasure:   lm,
			RightMeasure:  rm,
			Decreases:     lm > rm,
		})
	}
	return checks
}
