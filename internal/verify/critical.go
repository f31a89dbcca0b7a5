package verify

import (
	"encoding/json"
	"sync"

	"github.com/rewritelab/tnorm/internal/rewriter"
	"github.com/rewritelab/tnorm/internal/rule"
	"github.com/rewritelab/tnorm/internal/term"
)

// Pair is a critical pair: the smallest term exhibiting an overlap of two
// rules' left-hand sides, together with the two divergent one-step reducts.
// Peak, Left, and Right are skolemized, so joinability is decided over
// ground terms.
type Pair struct {
	RuleA    string
	RuleB    string
	Position term.Path
	Peak     term.Term
	Left     term.Term
	Right    term.Term

	// Joinability outcome, filled in by checkJoinable.
	LeftNorm      term.Term
	RightNorm     term.Term
	Joinable      bool
	Indeterminate bool
}

// MarshalJSON renders terms in their textual expression form so audit
// reports stay machine-readable without a term-tree JSON schema.
func (p Pair) MarshalJSON() ([]byte, error) {
	out := struct {
		RuleA         string    `json:"rule_a"`
		RuleB         string    `json:"rule_b"`
		Position      term.Path `json:"position"`
		Peak          string    `json:"peak"`
		Left          string    `json:"left"`
		Right         string    `json:"right"`
		Joinable      bool      `json:"joinable"`
		Indeterminate bool      `json:"indeterminate,omitempty"`
	}{
		RuleA:         p.RuleA,
		RuleB:         p.RuleB,
		Position:      p.Position,
		Peak:          p.Peak.String(),
		Left:          p.Left.String(),
		Right:         p.Right.String(),
		Joinable:      p.Joinable,
		Indeterminate: p.Indeterminate,
	}
	if out.Position == nil {
		out.Position = term.Path{}
	}
	return json.Marshal(out)
}

// CriticalPairs enumerates every way two rules' left-hand sides can overlap
// on a shared subterm. For each ordered rule pair (including a rule with
// itself) it unifies rule A's pattern at each non-variable position with a
// renamed copy of rule B's pattern; the trivial self-overlap of a rule at
// its own root is excluded.
func CriticalPairs(rs *rule.Set) []Pair {
	var pairs []Pair
	for _, a := range rs.Rules {
		for _, b := range rs.Rules {
			// Renaming apart: b's variables get a suffix no parsed
			// pattern can carry.
			bLeft := rename(b.Left, "·b")
			bRight := rename(b.Right, "·b")

			for _, pos := range term.PreOrderPositions(a.Left) {
				if a.ID == b.ID && len(pos) == 0 {
					continue
				}
				focus, ok := term.At(a.Left, pos)
				if !ok || focus.Kind() == term.KindVar {
					// Overlaps at variable positions are resolved by the
					// substitution itself and are never critical.
					continue
				}
				binding := term.Substitution{}
				if !unify(focus, bLeft, binding) {
					continue
				}

				peak := apply(a.Left, binding)
				reductA := apply(a.Right, binding)
				inner := apply(bRight, binding)
				reductB, ok := term.ReplaceAt(peak, pos, inner)
				if !ok {
					continue
				}

				pairs = append(pairs, Pair{
					RuleA:    a.ID,
					RuleB:    b.ID,
					Position: pos,
					Peak:     skolemize(peak),
					Left:     skolemize(reductA),
					Right:    skolemize(reductB),
				})
			}
		}
	}
	return pairs
}

// checkJoinable renormalizes both reducts under the full rule set and marks
// the pair joinable iff the normal forms are structurally equal. If either
// renormalization exhausts its budget the outcome is indeterminate.
func (p *Pair) checkJoinable(rs *rule.Set, budget int) {
	left := rewriter.Normalize(p.Left, rs, budget)
	right := rewriter.Normalize(p.Right, rs, budget)
	if left.Status == rewriter.BudgetExceeded || right.Status == rewriter.BudgetExceeded {
		p.Indeterminate = true
		return
	}
	p.LeftNorm = left.Output
	p.RightNorm = right.Output
	p.Joinable = term.Equal(left.Output, right.Output)
}

// checkAllJoinable runs the per-pair joinability checks concurrently. Pairs
// are independent, so this is the natural unit of parallel work when
// auditing a large rule set.
func checkAllJoinable(pairs []Pair, rs *rule.Set, budget int) {
	var wg sync.WaitGroup
	for i := range pairs {
		wg.Add(1)
		go func(p *Pair) {
			defer wg.Done()
			p.checkJoinable(rs, budget)
		}(&pairs[i])
	}
	wg.Wait()
}
