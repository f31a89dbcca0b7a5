package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		subject string
		want    map[string]string
		ok      bool
	}{
		{
			name:    "variable matches any term",
			pattern: ":[x]",
			subject: "and(MIT, Apache-2.0)",
			want:    map[string]string{"x": "and(MIT, Apache-2.0)"},
			ok:      true,
		},
		{
			name:    "atom matches identical atom only",
			pattern: "MIT",
			subject: "MIT",
			want:    map[string]string{},
			ok:      true,
		},
		{
			name:    "atom mismatch",
			pattern: "MIT",
			subject: "Apache-2.0",
			ok:      false,
		},
		{
			name:    "operator recurses into children",
			pattern: "and(:[x], or(:[y], MIT))",
			subject: "and(GPL-3.0, or(BSD-3-Clause, MIT))",
			want:    map[string]string{"x": "GPL-3.0", "y": "BSD-3-Clause"},
			ok:      true,
		},
		{
			name:    "symbol mismatch",
			pattern: "and(:[x], :[y])",
			subject: "or(MIT, MIT)",
			ok:      false,
		},
		{
			name:    "arity mismatch",
			pattern: "and(:[x], :[y])",
			subject: "and(MIT)",
			ok:      false,
		},
		{
			name:    "non-linear pattern agrees",
			pattern: "and(:[x], :[x])",
			subject: "and(or(MIT, BSD-3-Clause), or(MIT, BSD-3-Clause))",
			want:    map[string]string{"x": "or(MIT, BSD-3-Clause)"},
			ok:      true,
		},
		{
			name:    "non-linear pattern disagrees",
			pattern: "and(:[x], :[x])",
			subject: "and(MIT, Apache-2.0)",
			ok:      false,
		},
		{
			name:    "atom does not match operator",
			pattern: "MIT",
			subject: "and(MIT, MIT)",
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern := MustParse(tt.pattern)
			subject := MustParse(tt.subject)

			binding, ok := Match(pattern, subject)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			require.Len(t, binding, len(tt.want))
			for name, expr := range tt.want {
				bound, present := binding[name]
				require.True(t, present, "missing binding for %s", name)
				assert.True(t, Equal(MustParse(expr), bound))
			}
		})
	}
}

func TestSubstitute(t *testing.T) {
	t.Parallel()

	binding := Substitution{
		"x": Atom{Value: "MIT"},
		"y": NewOp("or", Atom{Value: "a"}, Atom{Value: "b"}),
	}

	got, err := Substitute(MustParse("and(:[x], :[y])"), binding)
	require.NoError(t, err)
	assert.True(t, Equal(MustParse("and(MIT, or(a, b))"), got))

	// Variables absent from the replacement are simply unused.
	got, err = Substitute(MustParse("just(:[x])"), binding)
	require.NoError(t, err)
	assert.True(t, Equal(MustParse("just(MIT)"), got))
}

func TestSubstituteUnboundVariable(t *testing.T) {
	t.Parallel()

	_, err := Substitute(MustParse("and(:[x], :[missing])"), Substitution{"x": Atom{Value: "MIT"}})
	require.Error(t, err)

	var unbound *UnboundVariableError
	require.ErrorAs(t, err, &unbound)
	assert.Equal(t, "missing", unbound.Name)
}

func TestMatchThenSubstituteRoundTrip(t *testing.T) {
	t.Parallel()

	// Matching a pattern against a subject and substituting the pattern
	// itself reproduces the subject.
	pattern := MustParse("and(:[x], or(:[y], :[x]))")
	subject := MustParse("and(MIT, or(Apache-2.0, MIT))")

	binding, ok := Match(pattern, subject)
	require.True(t, ok)

	rebuilt, err := Substitute(pattern, binding)
	require.NoError(t, err)
	assert.True(t, Equal(subject, rebuilt))
}
