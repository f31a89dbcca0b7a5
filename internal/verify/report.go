// Package verify decides whether a rule set is safe to ship: it computes
// all critical pairs between overlapping rules and checks every rule
// strictly decreases the domain's termination measure. By Newman's lemma,
// local confluence (all critical pairs joinable) plus termination imply
// global confluence: a unique normal form regardless of reduction order.
package verify

import (
	"github.com/google/uuid"

	"github.com/rewritelab/tnorm/internal/rule"
)

// Verdict summarizes a rule set's verification outcome.
type Verdict string

const (
	VerdictConfluentTerminating Verdict = "confluent-and-terminating"
	VerdictNonConfluent         Verdict = "non-confluent"
	VerdictNonTerminating       Verdict = "non-terminating"
	// VerdictIndeterminate means the joinability search itself exceeded
	// its budget, so confluence is neither proved nor refuted.
	VerdictIndeterminate Verdict = "indeterminate"
)

// Report is the verification outcome for one domain's rule set. Reports are
// produced on demand and not persisted by the engine; the run id lets an
// external gate tell audit runs apart.
type Report struct {
	RunID   string      `json:"run_id"`
	Domain  string      `json:"domain"`
	Order   string      `json:"order"`
	Pairs   []Pair      `json:"critical_pairs"`
	Rules   []RuleCheck `json:"termination"`
	Verdict Verdict     `json:"verdict"`
}

// VerifySet runs both checks over rs. Joinability reuses the caller's
// normalization budget. When a set fails both checks the verdict is
// non-terminating: termination is the premise of Newman's lemma, so
// confluence findings carry no weight without it, though both sections of
// the report still enumerate every failure.
func VerifySet(rs *rule.Set, budget int) *Report {
	report := &Report{
		RunID:  uuid.NewString(),
		Domain: rs.Domain,
		Order:  rs.Order.String(),
		Rules:  CheckTermination(rs),
	}
	report.Pairs = CriticalPairs(rs)
	checkAllJoinable(report.Pairs, rs, budget)
	report.Verdict = verdictFor(report)
	return report
}

func verdictFor(r *Report) Verdict {
	for _, check := range r.Rules {
		if !check.Decreases {
			return VerdictNonTerminating
		}
	}
	for _, pair := range r.Pairs {
		if !pair.Indeterminate && !pair.Joinable {
			return VerdictNonConfluent
		}
	}
	for _, pair := range r.Pairs {
		if pair.Indeterminate {
			return VerdictIndeterminate
		}
	}
	return VerdictConfluentTerminating
}

// FailingRules lists the ids of rules that do not strictly decrease the
// measure.
func (r *Report) FailingRules() []string {
	var ids []string
	for _, check := range r.Rules {
		if !check.Decreases {
			ids = append(ids, check.RuleID)
		}
	}
	return ids
}

// NonJoinable returns the first non-joinable critical pair, the minimal
// counterexample named by a non-confluent verdict.
func (r *Report) NonJoinable() *Pair {
	for i := range r.Pairs {
		if !r.Pairs[i].Indeterminate && !r.Pairs[i].Joinable {
			return &r.Pairs[i]
		}
	}
	return nil
}
