package rule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSet(t *testing.T, domain string) *Set {
	t.Helper()
	s, err := NewSet(domain, LeftmostOutermost, nil, []Rule{
		mkRule("idempotent", "and(:[x], :[x])", ":[x]"),
	})
	require.NoError(t, err)
	return s
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r, err := NewRegistry(testSet(t, "licenses"), testSet(t, "versions"))
	require.NoError(t, err)

	assert.Equal(t, []string{"licenses", "versions"}, r.Domains())

	s, err := r.Resolve("licenses")
	require.NoError(t, err)
	assert.Equal(t, "licenses", s.Domain)

	_, err = r.Resolve("unknown")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDomainNotFound))
}

func TestRegistryDuplicateDomain(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry(testSet(t, "licenses"), testSet(t, "licenses"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registered twice")
}

func TestRegistryWithFailures(t *testing.T) {
	t.Parallel()

	r, err := NewRegistry(testSet(t, "licenses"))
	require.NoError(t, err)

	loadErr := errors.New("unbound variable")
	r = r.WithFailures(map[string]error{"broken": loadErr})

	// Failed domains never resolve and never appear in the listing.
	_, err = r.Resolve("broken")
	assert.True(t, errors.Is(err, ErrDomainNotFound))
	assert.Equal(t, []string{"licenses"}, r.Domains())

	failures := r.Failures()
	require.Len(t, failures, 1)
	assert.Equal(t, loadErr, failures["broken"])
}
