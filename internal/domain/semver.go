package domain

import (
	"fmt"
	"strings"

	semverlib "github.com/Masterminds/semver/v3"

	"github.com/rewritelab/tnorm/internal/rule"
	"github.com/rewritelab/tnorm/internal/term"
)

// The semver domain represents a version as v1/v2/v3 (one, two, or three
// components) over digit lists: "03" is d("0", d("3", end)). Padding rules
// raise everything to v3 and a digit rule strips leading zeros.
//
// Padding grows the tree, so the measure weights the under-specified
// constructors: v1 and v2 are heavier than the v3 node plus the zero
// components that replace them.
func semverSet() (*rule.Set, error) {
	weights := rule.Weights{
		Symbols: map[string]int{"v1": 9, "v2": 6},
		Default: 1,
	}
	rules := []rule.Rule{
		{
			ID:            "pad-minor-patch",
			Left:          term.MustParse("v1(:[major])"),
			Right:         term.MustParse(`v3(:[major], d("0", end), d("0", end))`),
			Justification: "v1 weighs 9; the v3 node plus two zero components weigh 7",
		},
		{
			ID:            "pad-patch",
			Left:          term.MustParse("v2(:[major], :[minor])"),
			Right:         term.MustParse(`v3(:[major], :[minor], d("0", end))`),
			Justification: "v2 weighs 6; the v3 node plus one zero component weigh 4",
		},
		{
			ID:            "strip-leading-zero",
			Left:          term.MustParse(`d("0", d(:[x], :[rest]))`),
			Right:         term.MustParse("d(:[x], :[rest])"),
			Justification: "removes two nodes; a lone zero component has no inner d and is kept",
		},
	}
	for i := range rules {
		rules[i].Domain = "semver"
	}
	return rule.NewSet("semver", rule.LeftmostOutermost, weights.Measure, rules)
}

// semverCodec converts between version strings like "v01.2.03" and the
// digit-list term form. Render refuses anything but a fully padded v3 and
// validates the result parses as a semantic version.
type semverCodec struct{}

func (semverCodec) Parse(raw string) (term.Term, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "v"), "V")
	if s == "" {
		return nil, fmt.Errorf("version %q: empty", raw)
	}
	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return nil, fmt.Errorf("version %q: more than three components", raw)
	}
	components := make([]term.Term, 0, len(parts))
	for _, part := range parts {
		component, err := digitList(raw, part)
		if err != nil {
			return nil, err
		}
		components = append(components, component)
	}
	symbol := fmt.Sprintf("v%d", len(components))
	return term.NewOp(symbol, components...), nil
}

func (semverCodec) Render(t term.Term) (string, error) {
	op, ok := t.(term.Op)
	if !ok || op.Symbol != "v3" || len(op.Args) != 3 {
		return "", fmt.Errorf("cannot render %s: not a fully padded version", t)
	}
	parts := make([]string, 0, 3)
	for _, component := range op.Args {
		digits, err := digitString(component)
		if err != nil {
			return "", err
		}
		parts = append(parts, digits)
	}
	rendered := strings.Join(parts, ".")
	if _, err := semverlib.NewVersion(rendered); err != nil {
		return "", fmt.Errorf("rendered version %q is not a semantic version: %w", rendered, err)
	}
	return rendered, nil
}

// digitList builds d(digit, ...) cons cells ending in the end atom.
func digitList(raw, component string) (term.Term, error) {
	if component == "" {
		return nil, fmt.Errorf("version %q: empty component", raw)
	}
	list := term.Term(term.Atom{Value: "end"})
	for i := len(component) - 1; i >= 0; i-- {
		c := component[i]
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("version %q: component %q is not numeric", raw, component)
		}
		list = term.NewOp("d", term.Atom{Value: string(c)}, list)
	}
	return list, nil
}

func digitString(t term.Term) (string, error) {
	var sb strings.Builder
	for {
		if atom, ok := t.(term.Atom); ok && atom.Value == "end" {
			if sb.Len() == 0 {
				return "", fmt.Errorf("empty version component")
			}
			return sb.String(), nil
		}
		op, ok := t.(term.Op)
		if !ok || op.Symbol != "d" || len(op.Args) != 2 {
			return "", fmt.Errorf("cannot render %s as a version component", t)
		}
		digit, ok := op.Args[0].(term.Atom)
		if !ok {
			return "", fmt.Errorf("cannot render %s as a version component", t)
		}
		sb.WriteString(digit.Value)
		t = op.Args[1]
	}
}
