package rule

import (
	"fmt"

	"github.com/rewritelab/tnorm/internal/term"
)

// Order fixes the redex-selection policy of a rule set. It is declared once
// per domain so normalization is deterministic and auditable.
type Order int

const (
	// LeftmostOutermost tries positions root-first, children left to right.
	LeftmostOutermost Order = iota
	// LeftmostInnermost fully visits children before their parent.
	LeftmostInnermost
)

func (o Order) String() string {
	switch o {
	case LeftmostOutermost:
		return "leftmost-outermost"
	case LeftmostInnermost:
		return "leftmost-innermost"
	default:
		return "unknown"
	}
}

// ParseOrder parses the textual order names used in rule configuration.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "", "leftmost-outermost", "outermost":
		return LeftmostOutermost, nil
	case "leftmost-innermost", "innermost":
		return LeftmostInnermost, nil
	default:
		return 0, fmt.Errorf("unknown traversal order %q", s)
	}
}

// Rule rewrites a left-hand pattern into a right-hand replacement. The
// justification documents why the rule strictly decreases the domain's
// termination measure; it is carried into verification reports.
type Rule struct {
	ID            string
	Domain        string
	Left          term.Term
	Right         term.Term
	Justification string
}

// Measure is a well-founded complexity function over terms. Domain authors
// must supply measures that are monotone and subadditive over children;
// weighted node counts (see Weights) satisfy both for any weights >= 1.
type Measure func(term.Term) int

// NodeCount is the default measure: every node weighs 1.
func NodeCount(t term.Term) int {
	return term.Size(t)
}

// Weights configures a weighted node-count measure. Symbols maps operator
// names and Atoms maps atom values to weights; anything absent weighs
// Default (or 1 when Default is 0). Penalizing non-canonical constructs
// lets rules that grow the tree, like version padding, still strictly
// decrease the measure.
type Weights struct {
	Symbols map[string]int
	Atoms   map[string]int
	Default int
}

// Measure returns the weighted node-count function for w.
func (w Weights) Measure(t term.Term) int {
	def := w.Default
	if def <= 0 {
		def = 1
	}
	switch x := t.(type) {
	case term.Atom:
		if weight, ok := w.Atoms[x.Value]; ok {
			return weight
		}
		return def
	case term.Var:
		return def
	case term.Op:
		n := def
		if weight, ok := w.Symbols[x.Symbol]; ok {
			n = weight
		}
		for _, arg := range x.Args {
			n += w.Measure(arg)
		}
		return n
	}
	return def
}

// InvalidRuleError reports a rule definition the registry refused to load.
type InvalidRuleError struct {
	Domain string
	RuleID string
	Reason string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid rule %q in domain %q: %s", e.RuleID, e.Domain, e.Reason)
}

// Set is a named, ordered, immutable collection of rules sharing one domain
// tag. Rule order is significant: the rewriter treats first-listed as the
// tie-break when several rules apply.
type Set struct {
	Domain  string
	Order   Order
	Measure Measure
	Rules   []Rule

	arity map[string]int
}

// NewSet validates the rules and builds an immutable set. It rejects rules
// whose right-hand side references a variable the left never binds, rules
// without ids, and symbol arities that disagree across the set. A nil
// measure defaults to NodeCount.
func NewSet(domain string, order Order, measure Measure, rules []Rule) (*Set, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("domain %q: rule set is empty", domain)
	}
	if measure == nil {
		measure = NodeCount
	}
	s := &Set{
		Domain:  domain,
		Order:   order,
		Measure: measure,
		Rules:   rules,
		arity:   make(map[string]int),
	}
	seen := make(map[string]bool)
	for _, r := range rules {
		if r.ID == "" {
			return nil, &InvalidRuleError{Domain: domain, RuleID: r.ID, Reason: "missing rule id"}
		}
		if seen[r.ID] {
			return nil, &InvalidRuleError{Domain: domain, RuleID: r.ID, Reason: "duplicate rule id"}
		}
		seen[r.ID] = true

		bound := make(map[string]bool)
		for _, name := range term.Vars(r.Left) {
			bound[name] = true
		}
		for _, name := range term.Vars(r.Right) {
			if !bound[name] {
				return nil, &InvalidRuleError{
					Domain: domain,
					RuleID: r.ID,
					Reason: fmt.Sprintf("right-hand side references unbound variable %q", name),
				}
			}
		}

		for _, side := range []term.Term{r.Left, r.Right} {
			if err := s.recordArities(r.ID, side); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

// recordArities walks one rule side and checks each operator symbol against
// the arities already seen in the set.
func (s *Set) recordArities(ruleID string, t term.Term) error {
	op, ok := t.(term.Op)
	if !ok {
		return nil
	}
	if prev, known := s.arity[op.Symbol]; known && prev != len(op.Args) {
		return &InvalidRuleError{
			Domain: s.Domain,
			RuleID: ruleID,
			Reason: fmt.Sprintf("symbol %q used with arity %d and %d", op.Symbol, len(op.Args), prev),
		}
	}
	s.arity[op.Symbol] = len(op.Args)
	for _, arg := range op.Args {
		if err := s.recordArities(ruleID, arg); err != nil {
			return err
		}
	}
	return nil
}

// Arity returns the child count the set's rules fix for symbol, if any.
func (s *Set) Arity(symbol string) (int, bool) {
	n, ok := s.arity[symbol]
	return n, ok
}

// MalformedTermError reports an input term that violates the domain's
// expected shape. It is detected before any rule is tried and is always
// recoverable by the caller.
type MalformedTermError struct {
	Domain string
	Reason string
}

func (e *MalformedTermError) Error() string {
	return fmt.Sprintf("malformed term for domain %q: %s", e.Domain, e.Reason)
}

// ValidateTerm checks an input term against the set: input terms must be
// ground (no pattern variables), and any operator symbol the rules mention
// must be used with its fixed arity. Symbols the rules never mention pass
// through as inert constructors.
func (s *Set) ValidateTerm(t term.Term) error {
	switch x := t.(type) {
	case term.Var:
		return &MalformedTermError{Domain: s.Domain, Reason: fmt.Sprintf("pattern variable %q not allowed in input", x.Name)}
	case term.Op:
		if arity, known := s.arity[x.Symbol]; known && arity != len(x.Args) {
			return &MalformedTermError{
				Domain: s.Domain,
				Reason: fmt.Sprintf("symbol %q expects %d children, got %d", x.Symbol, arity, len(x.Args)),
			}
		}
		for _, arg := range x.Args {
			if err := s.ValidateTerm(arg); err != nil {
				return err
			}
		}
	}
	return nil
}
