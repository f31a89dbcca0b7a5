// Package rewriter reduces terms to normal form by exhaustively applying a
// domain's rules. Rule order is the primary key when several rules apply:
// the first-listed rule wins, and positions are only the secondary key,
// visited in the set's declared traversal order. Every step restarts the
// scan from the top-level term.
package rewriter

import (
	"github.com/rewritelab/tnorm/internal/rule"
	"github.com/rewritelab/tnorm/internal/term"
)

// DefaultBudget caps reduction steps when the caller does not choose one.
// The budget is a safety net only; a verified-terminating rule set reaches
// a fixed point in at most measure(input) steps.
const DefaultBudget = 10000

// Status reports how a normalization run ended.
type Status int

const (
	// Completed means no rule applies anywhere in the output term.
	Completed Status = iota
	// BudgetExceeded means the step budget ran out before a fixed point.
	BudgetExceeded
)

func (s Status) String() string {
	switch s {
	case Completed:
		return "completed"
	case BudgetExceeded:
		return "budget-exceeded"
	default:
		return "unknown"
	}
}

// Result is the outcome of one normalization run: the input, the output
// (a normal form when Status is Completed), and the audit trail of applied
// rule ids in application order.
type Result struct {
	Input   term.Term
	Output  term.Term
	Applied []string
	Status  Status
}

// Normalize reduces t under rs until no rule applies or budget steps have
// been taken. A budget <= 0 selects DefaultBudget.
func Normalize(t term.Term, rs *rule.Set, budget int) Result {
	if budget <= 0 {
		budget = DefaultBudget
	}
	current := t
	var applied []string
	for steps := 0; steps < budget; steps++ {
		id, next, ok := step(current, rs)
		if !ok {
			return Result{Input: t, Output: current, Applied: applied, Status: Completed}
		}
		applied = append(applied, id)
		current = next
	}
	// Budget spent; distinguish landing exactly on a normal form from
	// stopping mid-reduction.
	if _, _, ok := step(current, rs); !ok {
		return Result{Input: t, Output: current, Applied: applied, Status: Completed}
	}
	return Result{Input: t, Output: current, Applied: applied, Status: BudgetExceeded}
}

// step performs a single reduction: the first rule, at its first matching
// position in traversal order, rewrites its redex. Returns false when the
// term is a normal form.
func step(t term.Term, rs *rule.Set) (string, term.Term, bool) {
	positions := positionsFor(t, rs.Order)
	for _, r := range rs.Rules {
		for _, pos := range positions {
			focus, ok := term.At(t, pos)
			if !ok {
				continue
			}
			binding, ok := term.Match(r.Left, focus)
			if !ok {
				continue
			}
			replacement, err := term.Substitute(r.Right, binding)
			if err != nil {
				// Unreachable for a validated set: every right-hand
				// variable is bound by the left-hand match.
				continue
			}
			next, ok := term.ReplaceAt(t, pos, replacement)
			if !ok {
				continue
			}
			return r.ID, next, true
		}
	}
	return "", nil, false
}

func positionsFor(t term.Term, order rule.Order) []term.Path {
	if order == rule.LeftmostInnermost {
		return term.PostOrderPositions(t)
	}
	return term.PreOrderPositions(t)
}
