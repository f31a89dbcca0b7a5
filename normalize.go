// Package tnorm is the single entry point the surrounding quality-analysis
// pipeline uses to normalize terms. An Engine holds an immutable registry
// of per-domain rule sets, built once at construction; after that,
// normalization calls for independent terms may run concurrently without
// locking, because terms are immutable and rule sets share no mutable
// state.
package tnorm

import (
	"errors"
	"fmt"

	"github.com/rewritelab/tnorm/internal/domain"
	"github.com/rewritelab/tnorm/internal/rewriter"
	"github.com/rewritelab/tnorm/internal/rule"
	"github.com/rewritelab/tnorm/internal/term"
	"github.com/rewritelab/tnorm/internal/verify"
)

// ErrDomainNotFound is returned when a caller names an unregistered domain.
var ErrDomainNotFound = rule.ErrDomainNotFound

// ErrNoCodec is returned by NormalizeRaw for domains without a raw-string
// codec.
var ErrNoCodec = errors.New("domain has no raw-string codec")

// Level is the self-application depth a caller requests. Self-referential
// use, the tool normalizing its own rule sets or reports, is gated here
// at the boundary, never tracked as ambient state inside the engine.
type Level int

const (
	// LevelObject normalizes ordinary artifact terms.
	LevelObject Level = iota
	// LevelMeta normalizes terms that describe the tool's own artifacts.
	LevelMeta
)

func (l Level) String() string {
	switch l {
	case LevelObject:
		return "object"
	case LevelMeta:
		return "meta"
	default:
		return "unknown"
	}
}

// ParseLevel maps the textual level names accepted on the command line.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "object":
		return LevelObject, nil
	case "meta":
		return LevelMeta, nil
	}
	return LevelObject, fmt.Errorf("unknown self-application level %q", s)
}

// LevelError reports a request for a deeper self-application level than the
// engine allows.
type LevelError struct {
	Requested Level
	Allowed   Level
}

func (e *LevelError) Error() string {
	return fmt.Sprintf("self-application level %d exceeds allowed level %d", e.Requested, e.Allowed)
}

// Engine resolves domains and runs normalization and verification.
type Engine struct {
	registry *rule.Registry
	budget   int
	maxLevel Level
}

type config struct {
	budget    int
	maxLevel  Level
	rulePaths []string
	extraSets []*rule.Set
}

// Option configures an Engine at construction time.
type Option func(*config)

// WithBudget sets the reduction step budget for every normalization and
// joinability search.
func WithBudget(n int) Option {
	return func(c *config) { c.budget = n }
}

// WithMaxLevel raises the allowed self-application level.
func WithMaxLevel(l Level) Option {
	return func(c *config) { c.maxLevel = l }
}

// WithRuleFiles loads additional YAML rule-definition files alongside the
// built-in domains.
func WithRuleFiles(paths ...string) Option {
	return func(c *config) { c.rulePaths = append(c.rulePaths, paths...) }
}

// WithRuleSets registers already-built rule sets, mainly for tests.
func WithRuleSets(sets ...*rule.Set) Option {
	return func(c *config) { c.extraSets = append(c.extraSets, sets...) }
}

// New builds an Engine with the built-in domains plus any configured rule
// files. The registry is fully populated before New returns; nothing is
// loaded lazily afterwards.
func New(opts ...Option) (*Engine, error) {
	cfg := config{budget: rewriter.DefaultBudget}
	for _, opt := range opts {
		opt(&cfg)
	}

	sets, err := domain.Builtin()
	if err != nil {
		return nil, fmt.Errorf("building built-in domains: %w", err)
	}
	// Rule files load leniently: a domain with an invalid definition is
	// recorded and stays unavailable, the rest of the registry works.
	failures := make(map[string]error)
	for _, path := range cfg.rulePaths {
		loaded, rejected, err := rule.LoadFileLenient(path)
		if err != nil {
			return nil, err
		}
		sets = append(sets, loaded...)
		for name, ferr := range rejected {
			failures[name] = ferr
		}
	}
	sets = append(sets, cfg.extraSets...)

	registry, err := rule.NewRegistry(sets...)
	if err != nil {
		return nil, err
	}
	registry = registry.WithFailures(failures)
	return &Engine{registry: registry, budget: cfg.budget, maxLevel: cfg.maxLevel}, nil
}

// LoadFailures reports domains whose rule definitions were rejected at
// construction time.
func (e *Engine) LoadFailures() map[string]error {
	return e.registry.Failures()
}

// Domains lists the registered domain names, sorted.
func (e *Engine) Domains() []string {
	return e.registry.Domains()
}

// Resolve exposes a domain's rule set, mainly for inspection commands.
func (e *Engine) Resolve(domainName string) (*rule.Set, error) {
	return e.registry.Resolve(domainName)
}

// Normalize parses a term expression and reduces it under the named
// domain's rules. Parse failures and arity violations surface as typed
// errors before any rule is tried; budget exhaustion is reported in the
// result status, not as an error.
func (e *Engine) Normalize(domainName, expr string, level Level) (*rewriter.Result, error) {
	t, err := term.Parse(expr)
	if err != nil {
		return nil, err
	}
	return e.NormalizeTerm(domainName, t, level)
}

// NormalizeTerm is Normalize for an already-built term.
func (e *Engine) NormalizeTerm(domainName string, t term.Term, level Level) (*rewriter.Result, error) {
	if level > e.maxLevel {
		return nil, &LevelError{Requested: level, Allowed: e.maxLevel}
	}
	rs, err := e.registry.Resolve(domainName)
	if err != nil {
		return nil, err
	}
	if err := rs.ValidateTerm(t); err != nil {
		return nil, err
	}
	result := rewriter.Normalize(t, rs, e.budget)
	return &result, nil
}

// NormalizeRaw converts a raw domain string through the domain's codec,
// normalizes it, and renders the canonical string form back.
func (e *Engine) NormalizeRaw(domainName, raw string, level Level) (string, *rewriter.Result, error) {
	codec, ok := domain.CodecFor(domainName)
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrNoCodec, domainName)
	}
	t, err := codec.Parse(raw)
	if err != nil {
		return "", nil, err
	}
	result, err := e.NormalizeTerm(domainName, t, level)
	if err != nil {
		return "", nil, err
	}
	rendered, err := codec.Render(result.Output)
	if err != nil {
		return "", nil, err
	}
	return rendered, result, nil
}

// Verify runs the critical-pair and termination checks over one domain's
// rule set and returns its verification report.
func (e *Engine) Verify(domainName string) (*verify.Report, error) {
	rs, err := e.registry.Resolve(domainName)
	if err != nil {
		return nil, err
	}
	return verify.VerifySet(rs, e.budget), nil
}

// VerifyAll verifies every registered domain.
func (e *Engine) VerifyAll() (map[string]*verify.Report, error) {
	reports := make(map[string]*verify.Report)
	for _, name := range e.registry.Domains() {
		report, err := e.Verify(name)
		if err != nil {
			return nil, err
		}
		reports[name] = report
	}
	return reports, nil
}
