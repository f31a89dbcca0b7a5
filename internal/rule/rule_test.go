package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewritelab/tnorm/internal/term"
)

func mkRule(id, left, right string) Rule {
	return Rule{
		ID:    id,
		Left:  term.MustParse(left),
		Right: term.MustParse(right),
	}
}

func TestNewSet(t *testing.T) {
	t.Parallel()

	rules := []Rule{
		mkRule("and-idempotent", "and(:[x], :[x])", ":[x]"),
		mkRule("or-idempotent", "or(:[x], :[x])", ":[x]"),
	}

	s, err := NewSet("licenses", LeftmostOutermost, nil, rules)
	require.NoError(t, err)
	assert.Equal(t, "licenses", s.Domain)
	assert.Len(t, s.Rules, 2)

	// Nil measure falls back to plain node count.
	assert.Equal(t, 3, s.Measure(term.MustParse("and(a, b)")))

	arity, known := s.Arity("and")
	assert.True(t, known)
	assert.Equal(t, 2, arity)
	_, known = s.Arity("xor")
	assert.False(t, known)
}

func TestNewSetRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rules  []Rule
		reason string
	}{
		{
			name:   "empty set",
			rules:  nil,
			reason: "rule set is empty",
		},
		{
			name:   "missing rule id",
			rules:  []Rule{mkRule("", "and(:[x], :[x])", ":[x]")},
			reason: "missing rule id",
		},
		{
			name: "duplicate rule id",
			rules: []Rule{
				mkRule("dup", "and(:[x], :[x])", ":[x]"),
				mkRule("dup", "or(:[x], :[x])", ":[x]"),
			},
			reason: "duplicate rule id",
		},
		{
			name:   "unbound right-hand variable",
			rules:  []Rule{mkRule("bad", "and(:[x], :[x])", ":[y]")},
			reason: "unbound variable",
		},
		{
			name: "arity conflict across rules",
			rules: []Rule{
				mkRule("first", "and(:[x], :[x])", ":[x]"),
				mkRule("second", "and(:[x])", ":[x]"),
			},
			reason: "arity",
		},
		{
			name:   "arity conflict within one rule",
			rules:  []Rule{mkRule("self", "f(f(:[x], :[y]))", ":[x]")},
			reason: "arity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSet("licenses", LeftmostOutermost, nil, tt.rules)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestWeightsMeasure(t *testing.T) {
	t.Parallel()

	w := Weights{
		Symbols: map[string]int{"v1": 9, "v2": 6},
		Atoms:   map[string]int{"a": 4},
	}

	tests := []struct {
		name string
		expr string
		want int
	}{
		{name: "plain atom weighs default", expr: "x", want: 1},
		{name: "weighted atom", expr: "a", want: 4},
		{name: "weighted symbol plus children", expr: "v1(x)", want: 10},
		{name: "unweighted symbol", expr: "v3(x, y, z)", want: 4},
		{name: "nested weights add up", expr: "v2(v1(a))", want: 19},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Measure(term.MustParse(tt.expr)))
		})
	}

	// An explicit default rescales everything unweighted.
	heavy := Weights{Default: 3}
	assert.Equal(t, 9, heavy.Measure(term.MustParse("f(x, y)")))
}

func TestValidateTerm(t *testing.T) {
	t.Parallel()

	s, err := NewSet("licenses", LeftmostOutermost, nil, []Rule{
		mkRule("and-idempotent", "and(:[x], :[x])", ":[x]"),
	})
	require.NoError(t, err)

	assert.NoError(t, s.ValidateTerm(term.MustParse("and(MIT, Apache-2.0)")))

	// Symbols the rules never mention pass through as inert constructors.
	assert.NoError(t, s.ValidateTerm(term.MustParse("bundle(MIT, Apache-2.0, GPL-3.0)")))

	var malformed *MalformedTermError

	err = s.ValidateTerm(term.MustParse("and(MIT)"))
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "licenses", malformed.Domain)

	err = s.ValidateTerm(term.MustParse("and(MIT, :[x])"))
	require.ErrorAs(t, err, &malformed)

	// Arity is enforced at any depth.
	err = s.ValidateTerm(term.MustParse("or(MIT, and(MIT, Apache-2.0, GPL-3.0))"))
	require.ErrorAs(t, err, &malformed)
}

func TestParseOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Order
		wantErr bool
	}{
		{input: "", want: LeftmostOutermost},
		{input: "leftmost-outermost", want: LeftmostOutermost},
		{input: "outermost", want: LeftmostOutermost},
		{input: "leftmost-innermost", want: LeftmostInnermost},
		{input: "innermost", want: LeftmostInnermost},
		{input: "rightmost", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseOrder(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}

	assert.Equal(t, "leftmost-outermost", LeftmostOutermost.String())
	assert.Equal(t, "leftmost-innermost", LeftmostInnermost.String())
}
