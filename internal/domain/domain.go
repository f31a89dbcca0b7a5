// Package domain defines the built-in rule sets shipped with the engine,
// one per artifact domain the surrounding quality-analysis pipeline feeds
// it, plus thin codecs between each domain's raw string form and its term
// form. Extraction of raw terms from source artifacts stays an external
// concern; codecs only exist so callers and tests can round-trip the
// canonical string forms.
package domain

import (
	"github.com/rewritelab/tnorm/internal/rule"
	"github.com/rewritelab/tnorm/internal/term"
)

// Codec converts between a domain's raw string form and its term form.
type Codec interface {
	// Parse converts a raw domain string into a ground term.
	Parse(raw string) (term.Term, error)
	// Render converts a (typically normalized) term back into the
	// domain's canonical string form.
	Render(t term.Term) (string, error)
}

type builder func() (*rule.Set, error)

// Each built-in domain registers its rule-set builder here, mirroring how
// callers address them through the registry.
var builders = map[string]builder{
	"spdx":           spdxSet,
	"semver":         semverSet,
	"rdf-triple":     rdfSet,
	"metric-algebra": metricSet,
	"jsonld-context": jsonldSet,
}

var codecs = map[string]Codec{
	"spdx":   spdxCodec{},
	"semver": semverCodec{},
}

// Builtin constructs the rule sets every engine instance registers at
// start. Built-in definitions are static, so an error here is a programming
// mistake, not a configuration problem.
func Builtin() ([]*rule.Set, error) {
	names := []string{"spdx", "semver", "rdf-triple", "metric-algebra", "jsonld-context"}
	sets := make([]*rule.Set, 0, len(names))
	for _, name := range names {
		set, err := builders[name]()
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, nil
}

// CodecFor returns the raw-string codec for a domain, if it has one.
func CodecFor(domain string) (Codec, bool) {
	c, ok := codecs[domain]
	return c, ok
}
