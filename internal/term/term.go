package term

import (
	"strconv"
	"strings"
)

// Kind discriminates the node kinds a Term can be.
type Kind int

const (
	KindAtom Kind = iota // opaque leaf value
	KindOp               // operator node: symbol plus ordered children
	KindVar              // named pattern variable, valid only inside rule patterns
)

// Term is a node in an immutable labeled tree. Rewriting never mutates a
// term in place; every step builds a new tree and shares untouched subtrees.
type Term interface {
	Kind() Kind
	String() string
}

var (
	_ Term = Atom{}
	_ Term = Op{}
	_ Term = Var{}
)

// Atom is an opaque leaf value: a license id, a digit, a symbolic constant.
// Two atoms are equal iff their values are equal strings.
type Atom struct {
	Value string
}

func (Atom) Kind() Kind { return KindAtom }

func (a Atom) String() string {
	if isBareAtom(a.Value) {
		return a.Value
	}
	return strconv.Quote(a.Value)
}

// Op is an operator node: a symbol name plus an ordered sequence of children.
type Op struct {
	Symbol string
	Args   []Term
}

// NewOp builds an operator node from its symbol and children.
func NewOp(symbol string, args ...Term) Op {
	return Op{Symbol: symbol, Args: args}
}

func (Op) Kind() Kind { return KindOp }

func (o Op) String() string {
	var sb strings.Builder
	sb.WriteString(o.Symbol)
	sb.WriteByte('(')
	for i, arg := range o.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// Var is a named pattern variable. It renders in the same hole syntax the
// parser accepts, so String output round-trips through Parse.
type Var struct {
	Name string
}

func (Var) Kind() Kind { return KindVar }

func (v Var) String() string { return ":[" + v.Name + "]" }

// Equal reports structural equality: same kinds, same labels, and equal
// children pairwise. Atom comparison is value equality.
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case Atom:
		y, ok := b.(Atom)
		return ok && x.Value == y.Value
	case Var:
		y, ok := b.(Var)
		return ok && x.Name == y.Name
	case Op:
		y, ok := b.(Op)
		if !ok || x.Symbol != y.Symbol || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// Size counts the nodes of t.
func Size(t Term) int {
	op, ok := t.(Op)
	if !ok {
		return 1
	}
	n := 1
	for _, arg := range op.Args {
		n += Size(arg)
	}
	return n
}

// Vars returns the variable names occurring in t, in first-occurrence order
// and without duplicates.
func Vars(t Term) []string {
	var names []string
	seen := make(map[string]bool)
	var walk func(Term)
	walk = func(t Term) {
		switch x := t.(type) {
		case Var:
			if !seen[x.Name] {
				seen[x.Name] = true
				names = append(names, x.Name)
			}
		case Op:
			for _, arg := range x.Args {
				walk(arg)
			}
		}
	}
	walk(t)
	return names
}

// IsGround reports whether t contains no pattern variables.
func IsGround(t Term) bool {
	return len(Vars(t)) == 0
}

// Path addresses a subterm by the child indexes walked from the root.
// The empty path is the root itself.
type Path []int

// At returns the subterm of t at path p, or false if p walks out of the tree.
func At(t Term, p Path) (Term, bool) {
	for _, i := range p {
		op, ok := t.(Op)
		if !ok || i < 0 || i >= len(op.Args) {
			return nil, false
		}
		t = op.Args[i]
	}
	return t, true
}

// ReplaceAt returns a copy of t with the subterm at path p replaced by repl.
// Subtrees off the path are shared, not copied.
func ReplaceAt(t Term, p Path, repl Term) (Term, bool) {
	if len(p) == 0 {
		return repl, true
	}
	op, ok := t.(Op)
	if !ok || p[0] < 0 || p[0] >= len(op.Args) {
		return nil, false
	}
	child, ok := ReplaceAt(op.Args[p[0]], p[1:], repl)
	if !ok {
		return nil, false
	}
	args := make([]Term, len(op.Args))
	copy(args, op.Args)
	args[p[0]] = child
	return Op{Symbol: op.Symbol, Args: args}, true
}

// PreOrderPositions lists every subterm path of t root-first, children
// left to right. This is the leftmost-outermost visit order.
func PreOrderPositions(t Term) []Path {
	var paths []Path
	var walk func(t Term, p Path)
	walk = func(t Term, p Path) {
		paths = append(paths, p)
		if op, ok := t.(Op); ok {
			for i, arg := range op.Args {
				child := make(Path, len(p), len(p)+1)
				copy(child, p)
				walk(arg, append(child, i))
			}
		}
	}
	walk(t, Path{})
	return paths
}

// PostOrderPositions lists every subterm path of t children-first, left to
// right. This is the leftmost-innermost visit order.
func PostOrderPositions(t Term) []Path {
	var paths []Path
	var walk func(t Term, p Path)
	walk = func(t Term, p Path) {
		if op, ok := t.(Op); ok {
			for i, arg := range op.Args {
				child := make(Path, len(p), len(p)+1)
				copy(child, p)
				walk(arg, append(child, i))
			}
		}
		paths = append(paths, p)
	}
	walk(t, Path{})
	return paths
}

func isBareAtom(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isAtomChar(s[i]) {
			return false
		}
	}
	return true
}
