package domain

import (
	"github.com/rewritelab/tnorm/internal/rule"
	"github.com/rewritelab/tnorm/internal/term"
)

// rdfSet builds the triple-fragment domain: triple/3 over subjects,
// predicates, and objects, with iri/1, lit/2, lang/1, and dtype/1
// constructors. Rules rewrite the Turtle "a" shorthand to the full
// rdf:type IRI and fold RDF 1.1 default literal forms (an xsd:string
// datatype or an empty language tag) into plain literals.
//
// Expanding "a" adds a node, so the shorthand atom itself is penalized.
func rdfSet() (*rule.Set, error) {
	weights := rule.Weights{
		Atoms:   map[string]int{"a": 4},
		Default: 1,
	}
	rules := []rule.Rule{
		{
			ID:            "type-shorthand",
			Left:          term.MustParse("triple(:[s], a, :[o])"),
			Right:         term.MustParse(`triple(:[s], iri("rdf:type"), :[o])`),
			Justification: "the shorthand atom weighs 4; the expanded IRI node weighs 2",
		},
		{
			ID:            "string-datatype",
			Left:          term.MustParse(`lit(:[v], dtype("xsd:string"))`),
			Right:         term.MustParse("lit(:[v], plain)"),
			Justification: "drops the datatype node: xsd:string is the RDF 1.1 default",
		},
		{
			ID:            "empty-language-tag",
			Left:          term.MustParse(`lit(:[v], lang(""))`),
			Right:         term.MustParse("lit(:[v], plain)"),
			Justification: "drops the empty language-tag node",
		},
	}
	for i := range rules {
		rules[i].Domain = "rdf-triple"
	}
	return rule.NewSet("rdf-triple", rule.LeftmostOutermost, weights.Measure, rules)
}
