package tablegen

import (
	"fmt"
	"sort"

	"github.com/vkarel/lrx/grammar"
)

// symRef identifies a symbol on a production right-hand side.
type symRef struct {
	term bool
	idx  int
}

// element is one right-hand side position: a symbol plus its field label.
type element struct {
	sym   symRef
	field int
}

// prod is one BNF production after EBNF desugaring.
type prod struct {
	lhs int
	rhs []element
}

// prodSet is the flattened grammar: defined nonterminals first, then
// synthetic ones generated for groups, options, and repetitions.
type prodSet struct {
	d       *defs
	prods   []prod
	ntNames []string
	used    []bool
}

// terminal numbering: EndTerm, then literals, then defined terminals.
// Literals go first so fixed text wins over regexp terminals in the lexer.
func (d *defs) termBase() int {
	return 1 + len(d.literals)
}

func (d *defs) termCount() int {
	return 1 + len(d.literals) + len(d.terms)
}

func (d *defs) buildProds() (*prodSet, error) {
	ps := &prodSet{d: d, ntNames: make([]string, len(d.nonTerms))}
	for i, nt := range d.nonTerms {
		ps.ntNames[i] = nt.name
	}
	ps.used = make([]bool, len(ps.ntNames))
	ps.used[grammar.RootNonTerm] = true

	var unknown []string
	for i, nt := range d.nonTerms {
		e := ps.flattenNonTerm(i, nt.body, &unknown)
		if e != nil {
			return nil, e
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, unknownNonTermError(unknown)
	}

	var unused []string
	for i := range d.nonTerms {
		if !ps.used[i] {
			unused = append(unused, d.nonTerms[i].name)
		}
	}
	if len(unused) > 0 {
		sort.Strings(unused)
		return nil, unusedNonTermError(unused)
	}

	return ps, nil
}

func (ps *prodSet) flattenNonTerm(nt int, body defExpr, unknown *[]string) error {
	for _, variant := range asVariants(body) {
		rhs, e := ps.elements(variant, unknown)
		if e != nil {
			return e
		}

		ps.prods = append(ps.prods, prod{lhs: nt, rhs: rhs})
	}
	return nil
}

func asVariants(x defExpr) []defExpr {
	if alt, is := x.(*altExpr); is {
		return alt.variants
	}

	return []defExpr{x}
}

func asSeq(x defExpr) []defExpr {
	if seq, is := x.(*seqExpr); is {
		return seq.items
	}

	return []defExpr{x}
}

func (ps *prodSet) elements(x defExpr, unknown *[]string) ([]element, error) {
	items := asSeq(x)
	rhs := make([]element, 0, len(items))
	for _, item := range items {
		switch it := item.(type) {
		case *refExpr:
			sym, e := ps.resolve(it, unknown)
			if e != nil {
				return nil, e
			}

			rhs = append(rhs, element{sym: sym, field: grammar.NoField})

		case *fieldExpr:
			inner, e := ps.elements(it.body, unknown)
			if e != nil {
				return nil, e
			}

			// A label on a group or repetition names the synthetic
			// nonterminal covering it, so inner is a single element here.
			inner[0].field = ps.d.fieldIndex[it.name]
			rhs = append(rhs, inner...)

		case *seqExpr:
			inner, e := ps.elements(it, unknown)
			if e != nil {
				return nil, e
			}

			rhs = append(rhs, inner...)

		default:
			sym, e := ps.synth(item, unknown)
			if e != nil {
				return nil, e
			}

			rhs = append(rhs, element{sym: sym, field: grammar.NoField})
		}
	}
	return rhs, nil
}

func (ps *prodSet) resolve(ref *refExpr, unknown *[]string) (symRef, error) {
	d := ps.d
	switch ref.kind {
	case termRef:
		i, has := d.termIndex[ref.name]
		if !has {
			return symRef{}, unknownTermError(ref.tok)
		}
		if d.terms[i].aside {
			return symRef{}, asideRefError(ref.tok)
		}

		return symRef{term: true, idx: d.termBase() + i}, nil

	case literalRef:
		return symRef{term: true, idx: 1 + d.literalIndex[ref.name]}, nil

	default:
		i, has := d.ntIndex[ref.name]
		if !has {
			*unknown = append(*unknown, ref.name)
			return symRef{}, nil
		}

		ps.used[i] = true
		return symRef{idx: i}, nil
	}
}

// synth creates a nonterminal for an optional, repeated, or alternated
// subexpression. Repetitions desugar left-recursively, which keeps the
// parse stack flat on long lists.
func (ps *prodSet) synth(x defExpr, unknown *[]string) (symRef, error) {
	nt := len(ps.ntNames)
	ps.ntNames = append(ps.ntNames, fmt.Sprintf("@%d", nt))
	self := symRef{idx: nt}

	switch it := x.(type) {
	case *optExpr:
		rhs, e := ps.elements(it.body, unknown)
		if e != nil {
			return symRef{}, e
		}

		ps.prods = append(ps.prods, prod{lhs: nt}, prod{lhs: nt, rhs: rhs})

	case *repExpr:
		rhs, e := ps.elements(it.body, unknown)
		if e != nil {
			return symRef{}, e
		}

		rec := append([]element{{sym: self, field: grammar.NoField}}, rhs...)
		ps.prods = append(ps.prods, prod{lhs: nt}, prod{lhs: nt, rhs: rec})

	case *altExpr:
		for _, variant := range it.variants {
			rhs, e := ps.elements(variant, unknown)
			if e != nil {
				return symRef{}, e
			}

			ps.prods = append(ps.prods, prod{lhs: nt, rhs: rhs})
		}
	}

	return self, nil
}
