package term

import "fmt"

// Substitution maps pattern-variable names to the terms they bound during a
// match. It is produced by Match and consumed by Substitute.
type Substitution map[string]Term

// Match walks pattern and subject in lock-step. An atom pattern matches only
// the identical atom; an operator pattern matches an operator node with the
// same symbol and child count, recursing into children; a variable matches
// any term and records the binding. A variable seen twice must bind to
// structurally equal terms, so non-linear patterns like and(:[x], :[x])
// force both occurrences to agree.
func Match(pattern, subject Term) (Substitution, bool) {
	binding := Substitution{}
	if !match(pattern, subject, binding) {
		return nil, false
	}
	return binding, true
}

func match(pattern, subject Term, binding Substitution) bool {
	switch p := pattern.(type) {
	case Var:
		if prev, bound := binding[p.Name]; bound {
			return Equal(prev, subject)
		}
		binding[p.Name] = subject
		return true
	case Atom:
		s, ok := subject.(Atom)
		return ok && p.Value == s.Value
	case Op:
		s, ok := subject.(Op)
		if !ok || p.Symbol != s.Symbol || len(p.Args) != len(s.Args) {
			return false
		}
		for i := range p.Args {
			if !match(p.Args[i], s.Args[i], binding) {
				return false
			}
		}
		return true
	}
	return false
}

// UnboundVariableError reports a replacement referencing a variable the
// match never bound. Rule-set validation rejects such rules at load time,
// so a well-formed set never surfaces this during rewriting.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("replacement references unbound variable %q", e.Name)
}

// Substitute instantiates a replacement by swapping each variable occurrence
// for its bound term.
func Substitute(replacement Term, binding Substitution) (Term, error) {
	switch r := replacement.(type) {
	case Var:
		bound, ok := binding[r.Name]
		if !ok {
			return nil, &UnboundVariableError{Name: r.Name}
		}
		return bound, nil
	case Atom:
		return r, nil
	case Op:
		args := make([]Term, len(r.Args))
		for i, arg := range r.Args {
			inst, err := Substitute(arg, binding)
			if err != nil {
				return nil, err
			}
			args[i] = inst
		}
		return Op{Symbol: r.Symbol, Args: args}, nil
	}
	return nil, fmt.Errorf("unknown term kind %d", replacement.Kind())
}
