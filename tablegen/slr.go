package tablegen

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/vkarel/lrx/grammar"
	"github.com/vkarel/lrx/internal/ints"
)

// lrItem is a production with a dot position.
type lrItem struct {
	prod, dot int
}

type slrBuilder struct {
	d         *defs
	termCount int
	ntCount   int

	// prods includes the augmented start production at the last index.
	prods      []prod
	prodsByLhs [][]int

	nullable []bool
	first    []ints.Set
	follow   []ints.Set

	states   [][]lrItem
	stateIds map[string]int
}

func buildTables(d *defs, ps *prodSet) (*grammar.Grammar, error) {
	b := &slrBuilder{
		d:         d,
		termCount: d.termCount(),
		ntCount:   len(ps.ntNames),
		stateIds:  map[string]int{},
	}

	// augmented start: accept happens on its completed item, never by reduce
	aug := b.ntCount
	b.prods = append(ps.prods, prod{lhs: aug, rhs: []element{{
		sym:   symRef{idx: grammar.RootNonTerm},
		field: grammar.NoField,
	}}})
	b.prodsByLhs = make([][]int, b.ntCount+1)
	for i, pr := range b.prods {
		b.prodsByLhs[pr.lhs] = append(b.prodsByLhs[pr.lhs], i)
	}

	b.firstSets()
	b.followSets()
	b.buildStates()

	actions := make([]grammar.Action, len(b.states)*b.termCount)
	gotos := make([]int, len(b.states)*b.ntCount)
	for i := range gotos {
		gotos[i] = grammar.NoGoto
	}

	for state, items := range b.states {
		for sym, target := range b.transitions(items) {
			if sym.term {
				e := b.setAction(actions, state, sym.idx, grammar.ShiftAction(target))
				if e != nil {
					return nil, e
				}
			} else {
				gotos[state*b.ntCount+sym.idx] = target
			}
		}

		for _, item := range items {
			pr := b.prods[item.prod]
			if item.dot < len(pr.rhs) {
				continue
			}

			if pr.lhs == aug {
				e := b.setAction(actions, state, grammar.EndTerm, grammar.AcceptAction())
				if e != nil {
					return nil, e
				}
				continue
			}

			for _, term := range b.follow[pr.lhs].ToSlice() {
				e := b.setAction(actions, state, term, grammar.ReduceAction(item.prod))
				if e != nil {
					return nil, e
				}
			}
		}
	}

	return b.assemble(ps, actions, gotos), nil
}

func (b *slrBuilder) firstSets() {
	b.nullable = make([]bool, b.ntCount+1)
	b.first = make([]ints.Set, b.ntCount+1)
	for i := range b.first {
		b.first[i] = ints.NewSet()
	}

	for changed := true; changed; {
		changed = false
		for _, pr := range b.prods {
			allNullable := true
			for _, el := range pr.rhs {
				if el.sym.term {
					changed = b.first[pr.lhs].Add(el.sym.idx) || changed
					allNullable = false
					break
				}

				changed = b.first[pr.lhs].AddSet(b.first[el.sym.idx]) || changed
				if !b.nullable[el.sym.idx] {
					allNullable = false
					break
				}
			}
			if allNullable && !b.nullable[pr.lhs] {
				b.nullable[pr.lhs] = true
				changed = true
			}
		}
	}
}

func (b *slrBuilder) followSets() {
	b.follow = make([]ints.Set, b.ntCount+1)
	for i := range b.follow {
		b.follow[i] = ints.NewSet()
	}
	b.follow[b.ntCount].Add(grammar.EndTerm)

	for changed := true; changed; {
		changed = false
		for _, pr := range b.prods {
			for i, el := range pr.rhs {
				if el.sym.term {
					continue
				}

				nt := el.sym.idx
				restNullable := true
				for _, r := range pr.rhs[i+1:] {
					if r.sym.term {
						changed = b.follow[nt].Add(r.sym.idx) || changed
						restNullable = false
						break
					}

					changed = b.follow[nt].AddSet(b.first[r.sym.idx]) || changed
					if !b.nullable[r.sym.idx] {
						restNullable = false
						break
					}
				}
				if restNullable {
					changed = b.follow[nt].AddSet(b.follow[pr.lhs]) || changed
				}
			}
		}
	}
}

func (b *slrBuilder) closure(kernel []lrItem) []lrItem {
	seen := map[lrItem]bool{}
	queue := append([]lrItem(nil), kernel...)
	for _, item := range queue {
		seen[item] = true
	}

	for i := 0; i < len(queue); i++ {
		item := queue[i]
		pr := b.prods[item.prod]
		if item.dot >= len(pr.rhs) || pr.rhs[item.dot].sym.term {
			continue
		}

		for _, p := range b.prodsByLhs[pr.rhs[item.dot].sym.idx] {
			next := lrItem{prod: p}
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}

	sort.Slice(queue, func(i, j int) bool {
		if queue[i].prod != queue[j].prod {
			return queue[i].prod < queue[j].prod
		}
		return queue[i].dot < queue[j].dot
	})
	return queue
}

func stateKey(items []lrItem) string {
	var sb strings.Builder
	for _, item := range items {
		fmt.Fprintf(&sb, "%d.%d;", item.prod, item.dot)
	}
	return sb.String()
}

func (b *slrBuilder) addState(kernel []lrItem) int {
	items := b.closure(kernel)
	key := stateKey(items)
	id, has := b.stateIds[key]
	if !has {
		id = len(b.states)
		b.stateIds[key] = id
		b.states = append(b.states, items)
	}
	return id
}

// buildStates explores states breadth-first. Transition symbols are visited
// in a fixed order so the same definition always yields identical tables.
func (b *slrBuilder) buildStates() {
	b.addState([]lrItem{{prod: len(b.prods) - 1}})
	for state := 0; state < len(b.states); state++ {
		for _, kernel := range b.orderedKernels(b.states[state]) {
			b.addState(kernel)
		}
	}
}

// symbol order: terminals ascending, then nonterminals ascending
func (b *slrBuilder) symOrder(s symRef) int {
	if s.term {
		return s.idx
	}
	return b.termCount + s.idx
}

func (b *slrBuilder) transitions(items []lrItem) map[symRef]int {
	res := map[symRef]int{}
	for sym, kernel := range b.groupBySym(items) {
		res[sym] = b.addState(kernel)
	}
	return res
}

func (b *slrBuilder) groupBySym(items []lrItem) map[symRef][]lrItem {
	groups := map[symRef][]lrItem{}
	for _, item := range items {
		pr := b.prods[item.prod]
		if item.dot >= len(pr.rhs) {
			continue
		}

		sym := pr.rhs[item.dot].sym
		groups[sym] = append(groups[sym], lrItem{prod: item.prod, dot: item.dot + 1})
	}
	return groups
}

func (b *slrBuilder) orderedKernels(items []lrItem) [][]lrItem {
	groups := b.groupBySym(items)
	syms := make([]symRef, 0, len(groups))
	for sym := range groups {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return b.symOrder(syms[i]) < b.symOrder(syms[j])
	})

	kernels := make([][]lrItem, len(syms))
	for i, sym := range syms {
		kernels[i] = groups[sym]
	}
	return kernels
}

func (b *slrBuilder) setAction(actions []grammar.Action, state, term int, a grammar.Action) error {
	cur := actions[state*b.termCount+term]
	if cur != 0 && cur != a {
		return conflictError(state, b.termName(term), actionName(cur), actionName(a))
	}

	actions[state*b.termCount+term] = a
	return nil
}

func (b *slrBuilder) termName(term int) string {
	if term == grammar.EndTerm {
		return "-end-"
	}
	if term <= len(b.d.literals) {
		return b.d.literals[term-1]
	}
	return b.d.terms[term-b.d.termBase()].name
}

func actionName(a grammar.Action) string {
	switch a.Kind() {
	case grammar.Shift:
		return "shift"
	case grammar.Reduce:
		return "reduce"
	default:
		return "accept"
	}
}

var wordEnd = regexp.MustCompile(`[0-9A-Za-z_]$`)

func (b *slrBuilder) assemble(ps *prodSet, actions []grammar.Action, gotos []int) *grammar.Grammar {
	d := b.d
	terms := make([]grammar.Term, 1, b.termCount)
	terms[0] = grammar.Term{Name: "-end-"}
	for _, text := range d.literals {
		re := regexp.QuoteMeta(text)
		if wordEnd.MatchString(text) {
			re += `\b`
		}
		terms = append(terms, grammar.Term{Name: text, Re: re, Flags: grammar.LiteralTerm})
	}
	for _, td := range d.terms {
		flags := grammar.TermFlags(0)
		if td.aside {
			flags = grammar.AsideTerm
		}
		terms = append(terms, grammar.Term{Name: td.name, Re: td.re, Flags: flags})
	}

	nonTerms := make([]grammar.NonTerm, b.ntCount)
	for i, name := range ps.ntNames {
		nonTerms[i] = grammar.NonTerm{Name: name}
	}

	rules := make([]grammar.Rule, len(b.prods)-1)
	for i, pr := range b.prods[:len(b.prods)-1] {
		r := grammar.Rule{NonTerm: pr.lhs, Len: len(pr.rhs), Alias: grammar.NoAlias}
		for pos, el := range pr.rhs {
			if el.field == grammar.NoField {
				continue
			}

			if r.Fields == nil {
				r.Fields = make([]int, len(pr.rhs))
				for j := range r.Fields {
					r.Fields[j] = grammar.NoField
				}
			}
			r.Fields[pos] = el.field
		}
		rules[i] = r
	}

	return &grammar.Grammar{
		Terms:      terms,
		NonTerms:   nonTerms,
		Fields:     append([]string(nil), d.fields...),
		Rules:      rules,
		StateCount: len(b.states),
		Actions:    actions,
		Gotos:      gotos,
	}
}
