package rule

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewritelab/tnorm/internal/term"
)

const validConfig = `
domains:
  - domain: licenses
    order: leftmost-outermost
    rules:
      - id: and-idempotent
        left: "and(:[x], :[x])"
        right: ":[x]"
        justification: "removes one conjunct"
      - id: or-idempotent
        left: "or(:[x], :[x])"
        right: ":[x]"
  - domain: versions
    order: innermost
    weights:
      symbols:
        v1: 9
      atoms:
        zero: 2
    rules:
      - id: drop-wrapper
        left: "v1(:[x])"
        right: ":[x]"
`

func TestParseConfig(t *testing.T) {
	t.Parallel()

	sets, err := ParseConfig([]byte(validConfig))
	require.NoError(t, err)
	require.Len(t, sets, 2)

	licenses := sets[0]
	assert.Equal(t, "licenses", licenses.Domain)
	assert.Equal(t, LeftmostOutermost, licenses.Order)
	require.Len(t, licenses.Rules, 2)
	assert.Equal(t, "and-idempotent", licenses.Rules[0].ID)
	assert.Equal(t, "removes one conjunct", licenses.Rules[0].Justification)
	assert.True(t, term.Equal(term.MustParse("and(:[x], :[x])"), licenses.Rules[0].Left))

	versions := sets[1]
	assert.Equal(t, LeftmostInnermost, versions.Order)
	// The declared weights back the set's measure.
	assert.Equal(t, 11, versions.Measure(term.MustParse("v1(zero)")))
}

func TestParseConfigRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		yaml   string
		reason string
	}{
		{
			name:   "not yaml",
			yaml:   "domains: [unclosed",
			reason: "parsing rule config",
		},
		{
			name: "missing domain name",
			yaml: `
domains:
  - rules:
      - id: r1
        left: "f(:[x])"
        right: ":[x]"
`,
			reason: "without a domain name",
		},
		{
			name: "unknown order",
			yaml: `
domains:
  - domain: licenses
    order: sideways
    rules:
      - id: r1
        left: "f(:[x])"
        right: ":[x]"
`,
			reason: "unknown traversal order",
		},
		{
			name: "malformed left-hand side",
			yaml: `
domains:
  - domain: licenses
    rules:
      - id: r1
        left: "f(:[x]"
        right: ":[x]"
`,
			reason: "left-hand side",
		},
		{
			name: "unbound right-hand variable",
			yaml: `
domains:
  - domain: licenses
    rules:
      - id: r1
        left: "f(:[x])"
        right: ":[y]"
`,
			reason: "unbound variable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestParseConfigLenient(t *testing.T) {
	t.Parallel()

	// One valid domain and one broken one: the valid domain must survive.
	mixed := `
domains:
  - domain: licenses
    rules:
      - id: and-idempotent
        left: "and(:[x], :[x])"
        right: ":[x]"
  - domain: broken
    rules:
      - id: bad
        left: "f(:[x])"
        right: ":[y]"
`
	sets, failures, err := ParseConfigLenient([]byte(mixed))
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "licenses", sets[0].Domain)

	require.Len(t, failures, 1)
	assert.Contains(t, failures["broken"].Error(), "unbound variable")

	// YAML that does not parse at all stays fatal.
	_, _, err = ParseConfigLenient([]byte("domains: [unclosed"))
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validConfig), 0o644))

	sets, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, sets, 2)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading rule file")

	sets, failures, err := LoadFileLenient(path)
	require.NoError(t, err)
	assert.Len(t, sets, 2)
	assert.Empty(t, failures)
}
