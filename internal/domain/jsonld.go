package domain

import (
	"github.com/rewritelab/tnorm/internal/rule"
	"github.com/rewritelab/tnorm/internal/term"
)

// jsonldSet builds the key-value context domain: ctx/2 cons cells of
// entry/2 pairs ending in the empty atom, plus merge/2 for combining
// contexts. Null-valued entries are dropped (a null mapping removes the
// key), exact adjacent duplicates collapse (a non-linear pattern: the key
// and the value must both agree), and merging with the empty context is
// the identity.
func jsonldSet() (*rule.Set, error) {
	rules := []rule.Rule{
		{
			ID:            "drop-null-entry",
			Left:          term.MustParse("ctx(entry(:[k], null), :[rest])"),
			Right:         term.MustParse(":[rest]"),
			Justification: "removes the entry cell and its null mapping",
		},
		{
			ID:            "dedupe-entry",
			Left:          term.MustParse("ctx(entry(:[k], :[v]), ctx(entry(:[k], :[v]), :[rest]))"),
			Right:         term.MustParse("ctx(entry(:[k], :[v]), :[rest])"),
			Justification: "removes one of two identical adjacent entries",
		},
		{
			ID:            "merge-empty-left",
			Left:          term.MustParse("merge(empty, :[c])"),
			Right:         term.MustParse(":[c]"),
			Justification: "drops the merge node and the empty context",
		},
		{
			ID:            "merge-empty-right",
			Left:          term.MustParse("merge(:[c], empty)"),
			Right:         term.MustParse(":[c]"),
			Justification: "drops the merge node and the empty context",
		},
	}
	for i := range rules {
		rules[i].Domain = "jsonld-context"
	}
	return rule.NewSet("jsonld-context", rule.LeftmostOutermost, rule.NodeCount, rules)
}
