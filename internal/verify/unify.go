package verify

import "github.com/rewritelab/tnorm/internal/term"

// unify extends binding to a most general unifier of a and b, treating
// pattern variables from both sides as unifiable. Callers must rename the
// two sides apart first. Robinson-style with an occurs check: a variable
// never binds to a term containing itself, so unification of overlapping
// patterns always terminates.
func unify(a, b term.Term, binding term.Substitution) bool {
	a = walk(a, binding)
	b = walk(b, binding)

	if va, ok := a.(term.Var); ok {
		if vb, ok := b.(term.Var); ok && va.Name == vb.Name {
			return true
		}
		if occurs(va.Name, b, binding) {
			return false
		}
		binding[va.Name] = b
		return true
	}
	if vb, ok := b.(term.Var); ok {
		if occurs(vb.Name, a, binding) {
			return false
		}
		binding[vb.Name] = a
		return true
	}

	switch x := a.(type) {
	case term.Atom:
		y, ok := b.(term.Atom)
		return ok && x.Value == y.Value
	case term.Op:
		y, ok := b.(term.Op)
		if !ok || x.Symbol != y.Symbol || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !unify(x.Args[i], y.Args[i], binding) {
				return false
			}
		}
		return true
	}
	return false
}

// walk chases variable bindings until it reaches a non-variable or an
// unbound variable.
func walk(t term.Term, binding term.Substitution) term.Term {
	for {
		v, ok := t.(term.Var)
		if !ok {
			return t
		}
		bound, ok := binding[v.Name]
		if !ok {
			return t
		}
		t = bound
	}
}

// occurs reports whether name occurs in t under the current binding.
func occurs(name string, t term.Term, binding term.Substitution) bool {
	t = walk(t, binding)
	switch x := t.(type) {
	case term.Var:
		return x.Name == name
	case term.Op:
		for _, arg := range x.Args {
			if occurs(name, arg, binding) {
				return true
			}
		}
	}
	return false
}

// apply substitutes binding throughout t, chasing chains so the result
// contains only unbound variables.
func apply(t term.Term, binding term.Substitution) term.Term {
	t = walk(t, binding)
	if op, ok := t.(term.Op); ok {
		args := make([]term.Term, len(op.Args))
		for i, arg := range op.Args {
			args[i] = apply(arg, binding)
		}
		return term.Op{Symbol: op.Symbol, Args: args}
	}
	return t
}

// rename suffixes every variable in t so two rules' variables cannot
// collide during unification.
func rename(t term.Term, suffix string) term.Term {
	switch x := t.(type) {
	case term.Var:
		return term.Var{Name: x.Name + suffix}
	case term.Op:
		args := make([]term.Term, len(x.Args))
		for i, arg := range x.Args {
			args[i] = rename(arg, suffix)
		}
		return term.Op{Symbol: x.Symbol, Args: args}
	}
	return t
}

// skolemize replaces every remaining variable with a fresh atom derived
// from the variable name. The "·" prefix cannot be produced by any
// domain syntax, so fresh atoms never collide with real ones. Equal
// variable names map to equal atoms, which keeps the two reducts of a
// critical pair consistent.
func skolemize(t term.Term) term.Term {
	switch x := t.(type) {
	case term.Var:
		return term.Atom{Value: "·" + x.Name}
	case term.Op:
		args := make([]term.Term, len(x.Args))
		for i, arg := range x.Args {
			args[i] = skolemize(arg)
		}
		return term.Op{Symbol: x.Symbol, Args: args}
	}
	return t
}
