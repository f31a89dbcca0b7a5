package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqual(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    Term
		b    Term
		want bool
	}{
		{
			name: "equal atoms",
			a:    Atom{Value: "MIT"},
			b:    Atom{Value: "MIT"},
			want: true,
		},
		{
			name: "different atoms",
			a:    Atom{Value: "MIT"},
			b:    Atom{Value: "Apache-2.0"},
			want: false,
		},
		{
			name: "atom vs variable with same text",
			a:    Atom{Value: "x"},
			b:    Var{Name: "x"},
			want: false,
		},
		{
			name: "equal ops",
			a:    NewOp("and", Atom{Value: "a"}, Atom{Value: "b"}),
			b:    NewOp("and", Atom{Value: "a"}, Atom{Value: "b"}),
			want: true,
		},
		{
			name: "same symbol different arity",
			a:    NewOp("and", Atom{Value: "a"}),
			b:    NewOp("and", Atom{Value: "a"}, Atom{Value: "b"}),
			want: false,
		},
		{
			name: "argument order matters",
			a:    NewOp("and", Atom{Value: "a"}, Atom{Value: "b"}),
			b:    NewOp("and", Atom{Value: "b"}, Atom{Value: "a"}),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, Size(Atom{Value: "x"}))
	assert.Equal(t, 1, Size(Var{Name: "x"}))
	assert.Equal(t, 1, Size(NewOp("nil")))

	// or(and(a, b), c) has 5 nodes.
	tree := NewOp("or",
		NewOp("and", Atom{Value: "a"}, Atom{Value: "b"}),
		Atom{Value: "c"})
	assert.Equal(t, 5, Size(tree))
}

func TestVars(t *testing.T) {
	t.Parallel()

	// First-occurrence order, duplicates collapsed.
	tree := NewOp("pair",
		NewOp("f", Var{Name: "y"}, Var{Name: "x"}),
		Var{Name: "y"})
	assert.Equal(t, []string{"y", "x"}, Vars(tree))

	assert.Empty(t, Vars(Atom{Value: "ground"}))
	assert.True(t, IsGround(NewOp("and", Atom{Value: "a"}, Atom{Value: "b"})))
	assert.False(t, IsGround(NewOp("and", Var{Name: "a"}, Atom{Value: "b"})))
}

func TestAt(t *testing.T) {
	t.Parallel()

	tree := NewOp("or",
		NewOp("and", Atom{Value: "a"}, Atom{Value: "b"}),
		Atom{Value: "c"})

	tests := []struct {
		name string
		path Path
		want Term
		ok   bool
	}{
		{name: "root", path: Path{}, want: tree, ok: true},
		{name: "first child", path: Path{0}, want: NewOp("and", Atom{Value: "a"}, Atom{Value: "b"}), ok: true},
		{name: "nested leaf", path: Path{0, 1}, want: Atom{Value: "b"}, ok: true},
		{name: "into a leaf", path: Path{1, 0}, ok: false},
		{name: "index out of range", path: Path{2}, ok: false},
		{name: "negative index", path: Path{-1}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := At(tree, tt.path)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, Equal(tt.want, got))
			}
		})
	}
}

func TestReplaceAt(t *testing.T) {
	t.Parallel()

	tree := NewOp("or",
		NewOp("and", Atom{Value: "a"}, Atom{Value: "b"}),
		Atom{Value: "c"})

	got, ok := ReplaceAt(tree, Path{0, 1}, Atom{Value: "z"})
	require.True(t, ok)
	want := NewOp("or",
		NewOp("and", Atom{Value: "a"}, Atom{Value: "z"}),
		Atom{Value: "c"})
	assert.True(t, Equal(want, got))

	// The input tree is untouched.
	assert.True(t, Equal(
		NewOp("or", NewOp("and", Atom{Value: "a"}, Atom{Value: "b"}), Atom{Value: "c"}),
		tree))

	// Replacing the root returns the replacement itself.
	got, ok = ReplaceAt(tree, Path{}, Atom{Value: "r"})
	require.True(t, ok)
	assert.True(t, Equal(Atom{Value: "r"}, got))

	_, ok = ReplaceAt(tree, Path{5}, Atom{Value: "z"})
	assert.False(t, ok)
}

func TestTraversalPositions(t *testing.T) {
	t.Parallel()

	tree := NewOp("or",
		NewOp("and", Atom{Value: "a"}, Atom{Value: "b"}),
		Atom{Value: "c"})

	pre := PreOrderPositions(tree)
	assert.Equal(t, []Path{{}, {0}, {0, 0}, {0, 1}, {1}}, pre)

	post := PostOrderPositions(tree)
	assert.Equal(t, []Path{{0, 0}, {0, 1}, {0}, {1}, {}}, post)
}

func TestTermString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		term Term
		want string
	}{
		{name: "bare atom", term: Atom{Value: "Apache-2.0"}, want: "Apache-2.0"},
		{name: "atom with colon is quoted", term: Atom{Value: "rdf:type"}, want: `"rdf:type"`},
		{name: "empty atom is quoted", term: Atom{Value: ""}, want: `""`},
		{name: "variable renders in hole syntax", term: Var{Name: "x"}, want: ":[x]"},
		{
			name: "op with children",
			term: NewOp("and", Atom{Value: "MIT"}, Var{Name: "rest"}),
			want: "and(MIT, :[rest])",
		},
		{name: "nullary op", term: NewOp("end"), want: "end()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.term.String())
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"or(and(MIT, :[x]), \"rdf:type\")",
		"triple(iri(\"ex:s\"), a, lit(\"hi\", \"en\"))",
		"d(0, d(1, end()))",
	}
	for _, input := range inputs {
		parsed, err := Parse(input)
		require.NoError(t, err)
		reparsed, err := Parse(parsed.String())
		require.NoError(t, err)
		assert.True(t, Equal(parsed, reparsed), "round trip changed %s", input)
	}
}
