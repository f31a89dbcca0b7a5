package rule

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rewritelab/tnorm/internal/term"
)

// Definition is one rule record as it appears in a rule-definition file.
// Left and right are term expressions with :[name] pattern variables.
type Definition struct {
	ID            string `yaml:"id"`
	Left          string `yaml:"left"`
	Right         string `yaml:"right"`
	Justification string `yaml:"justification"`
}

// WeightsConfig is the YAML shape of a weighted measure.
type WeightsConfig struct {
	Symbols map[string]int `yaml:"symbols"`
	Atoms   map[string]int `yaml:"atoms"`
	Default int            `yaml:"default"`
}

// SetConfig declares one domain's rule set.
type SetConfig struct {
	Domain  string        `yaml:"domain"`
	Order   string        `yaml:"order"`
	Weights WeightsConfig `yaml:"weights"`
	Rules   []Definition  `yaml:"rules"`
}

// Config is the top-level rule-definition file.
type Config struct {
	Domains []SetConfig `yaml:"domains"`
}

// LoadFile reads a YAML rule-definition file and builds its rule sets.
func LoadFile(path string) ([]*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file: %w", err)
	}
	sets, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("rule file %s: %w", path, err)
	}
	return sets, nil
}

// LoadFileLenient reads a YAML rule-definition file, keeping every valid
// domain and reporting rejected ones per domain.
func LoadFileLenient(path string) ([]*Set, map[string]error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading rule file: %w", err)
	}
	sets, failures, err := ParseConfigLenient(data)
	if err != nil {
		return nil, nil, fmt.Errorf("rule file %s: %w", path, err)
	}
	return sets, failures, nil
}

// ParseConfig parses YAML rule definitions and builds one immutable Set per
// declared domain. Any invalid definition rejects the whole config.
func ParseConfig(data []byte) ([]*Set, error) {
	sets, failures, err := ParseConfigLenient(data)
	if err != nil {
		return nil, err
	}
	for _, ferr := range failures {
		return nil, ferr
	}
	return sets, nil
}

// ParseConfigLenient parses YAML rule definitions, building every valid
// domain and recording invalid ones instead of failing outright. A failed
// domain simply stays unavailable while the rest load; only YAML that does
// not parse at all is a fatal error.
func ParseConfigLenient(data []byte) ([]*Set, map[string]error, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing rule config: %w", err)
	}
	var sets []*Set
	failures := make(map[string]error)
	for _, sc := range cfg.Domains {
		set, err := buildSet(sc)
		if err != nil {
			name := sc.Domain
			if name == "" {
				name = "(unnamed)"
			}
			failures[name] = err
			continue
		}
		sets = append(sets, set)
	}
	return sets, failures, nil
}

func buildSet(sc SetConfig) (*Set, error) {
	if sc.Domain == "" {
		return nil, fmt.Errorf("rule set declared without a domain name")
	}
	order, err := ParseOrder(sc.Order)
	if err != nil {
		return nil, fmt.Errorf("domain %q: %w", sc.Domain, err)
	}
	rules := make([]Rule, 0, len(sc.Rules))
	for _, def := range sc.Rules {
		left, err := term.Parse(def.Left)
		if err != nil {
			return nil, &InvalidRuleError{Domain: sc.Domain, RuleID: def.ID, Reason: fmt.Sprintf("left-hand side: %v", err)}
		}
		right, err := term.Parse(def.Right)
		if err != nil {
			return nil, &InvalidRuleError{Domain: sc.Domain, RuleID: def.ID, Reason: fmt.Sprintf("right-hand side: %v", err)}
		}
		rules = append(rules, Rule{
			ID:            def.ID,
			Domain:        sc.Domain,
			Left:          left,
			Right:         right,
			Justification: def.Justification,
		})
	}
	weights := Weights{Symbols: sc.Weights.Symbols, Atoms: sc.Weights.Atoms, Default: sc.Weights.Default}
	return NewSet(sc.Domain, order, weights.Measure, rules)
}
