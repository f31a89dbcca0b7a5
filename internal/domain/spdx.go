package domain

import (
	"fmt"
	"strings"

	"github.com/rewritelab/tnorm/internal/rule"
	"github.com/rewritelab/tnorm/internal/term"
)

// spdxSet builds the license-expression domain: and/2 and or/2 over SPDX
// license-id atoms. Idempotence and absorption drop redundant operands;
// every rule removes at least one node, so the plain node count is a
// decreasing measure.
func spdxSet() (*rule.Set, error) {
	rules := []rule.Rule{
		{
			ID:            "and-idempotent",
			Left:          term.MustParse("and(:[x], :[x])"),
			Right:         term.MustParse(":[x]"),
			Justification: "drops one of two equal conjuncts",
		},
		{
			ID:            "or-idempotent",
			Left:          term.MustParse("or(:[x], :[x])"),
			Right:         term.MustParse(":[x]"),
			Justification: "drops one of two equal disjuncts",
		},
		{
			ID:            "and-absorb-right",
			Left:          term.MustParse("and(:[x], or(:[x], :[y]))"),
			Right:         term.MustParse(":[x]"),
			Justification: "absorption removes the disjunction",
		},
		{
			ID:            "and-absorb-left",
			Left:          term.MustParse("and(or(:[x], :[y]), :[x])"),
			Right:         term.MustParse(":[x]"),
			Justification: "absorption removes the disjunction",
		},
		{
			ID:            "or-absorb-right",
			Left:          term.MustParse("or(:[x], and(:[x], :[y]))"),
			Right:         term.MustParse(":[x]"),
			Justification: "absorption removes the conjunction",
		},
		{
			ID:            "or-absorb-left",
			Left:          term.MustParse("or(and(:[x], :[y]), :[x])"),
			Right:         term.MustParse(":[x]"),
			Justification: "absorption removes the conjunction",
		},
	}
	for i := range rules {
		rules[i].Domain = "spdx"
	}
	return rule.NewSet("spdx", rule.LeftmostOutermost, rule.NodeCount, rules)
}

// spdxCodec converts between SPDX license expression strings like
// "MIT AND (MIT OR Apache-2.0)" and and/or terms. AND binds tighter than
// OR; both associate left, so "x AND x OR x AND x" reads as
// or(and(x, x), and(x, x)).
type spdxCodec struct{}

func (spdxCodec) Parse(raw string) (term.Term, error) {
	p := &spdxParser{tokens: tokenizeSPDX(raw), raw: raw}
	t, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, fmt.Errorf("license expression %q: unexpected trailing %q", raw, p.tokens[p.pos])
	}
	return t, nil
}

func (spdxCodec) Render(t term.Term) (string, error) {
	return renderSPDX(t, false)
}

func renderSPDX(t term.Term, insideAnd bool) (string, error) {
	switch x := t.(type) {
	case term.Atom:
		return x.Value, nil
	case term.Op:
		if len(x.Args) != 2 || (x.Symbol != "and" && x.Symbol != "or") {
			return "", fmt.Errorf("cannot render %s as a license expression", t)
		}
		left, err := renderSPDX(x.Args[0], x.Symbol == "and")
		if err != nil {
			return "", err
		}
		right, err := renderSPDX(x.Args[1], x.Symbol == "and")
		if err != nil {
			return "", err
		}
		expr := left + " " + strings.ToUpper(x.Symbol) + " " + right
		// An OR under an AND needs parentheses to survive re-parsing.
		if x.Symbol == "or" && insideAnd {
			return "(" + expr + ")", nil
		}
		return expr, nil
	}
	return "", fmt.Errorf("cannot render %s as a license expression", t)
}

func tokenizeSPDX(raw string) []string {
	raw = strings.ReplaceAll(raw, "(", " ( ")
	raw = strings.ReplaceAll(raw, ")", " ) ")
	return strings.Fields(raw)
}

type spdxParser struct {
	tokens []string
	pos    int
	raw    string
}

func (p *spdxParser) parseOr() (term.Term, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.pos < len(p.tokens) && strings.EqualFold(p.tokens[p.pos], "OR") {
		p.pos++
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = term.NewOp("or", left, right)
	}
	return left, nil
}

func (p *spdxParser) parseAnd() (term.Term, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.pos < len(p.tokens) && strings.EqualFold(p.tokens[p.pos], "AND") {
		p.pos++
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = term.NewOp("and", left, right)
	}
	return left, nil
}

func (p *spdxParser) parsePrimary() (term.Term, error) {
	if p.pos >= len(p.tokens) {
		return nil, fmt.Errorf("license expression %q: unexpected end of input", p.raw)
	}
	tok := p.tokens[p.pos]
	if tok == "(" {
		p.pos++
		t, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.pos >= len(p.tokens) || p.tokens[p.pos] != ")" {
			return nil, fmt.Errorf("license expression %q: missing closing parenthesis", p.raw)
		}
		p.pos++
		return t, nil
	}
	if tok == ")" || strings.EqualFold(tok, "AND") || strings.EqualFold(tok, "OR") {
		return nil, fmt.Errorf("license expression %q: unexpected %q", p.raw, tok)
	}
	p.pos++
	return term.Atom{Value: tok}, nil
}
