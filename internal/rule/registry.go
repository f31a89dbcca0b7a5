package rule

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDomainNotFound is returned by Resolve for unregistered domain names.
var ErrDomainNotFound = errors.New("domain not found")

// Registry resolves domain names to their immutable rule sets. It is fully
// populated at construction and never mutated afterwards, so concurrent
// Resolve calls need no locking.
type Registry struct {
	sets   map[string]*Set
	failed map[string]error
}

// NewRegistry builds a registry from already-validated sets. A duplicate
// domain name is a configuration error.
func NewRegistry(sets ...*Set) (*Registry, error) {
	r := &Registry{
		sets:   make(map[string]*Set, len(sets)),
		failed: make(map[string]error),
	}
	for _, s := range sets {
		if _, dup := r.sets[s.Domain]; dup {
			return nil, fmt.Errorf("domain %q registered twice", s.Domain)
		}
		r.sets[s.Domain] = s
	}
	return r, nil
}

// WithFailures records domains whose definitions were rejected at load
// time. A failed domain is never exposed via Resolve; the rest of the
// registry stays usable.
func (r *Registry) WithFailures(failures map[string]error) *Registry {
	for name, err := range failures {
		r.failed[name] = err
	}
	return r
}

// Resolve returns the rule set registered for domain.
func (r *Registry) Resolve(domain string) (*Set, error) {
	s, ok := r.sets[domain]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDomainNotFound, domain)
	}
	return s, nil
}

// Domains lists the registered domain names, sorted.
func (r *Registry) Domains() []string {
	names := make([]string, 0, len(r.sets))
	for name := range r.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Failures reports domains whose definitions were rejected at load time.
func (r *Registry) Failures() map[string]error {
	out := make(map[string]error, len(r.failed))
	for name, err := range r.failed {
		out[name] = err
	}
	return out
}
