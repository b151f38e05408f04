package grammar

import (
	"regexp"
)

// Validate checks that the tables are self-consistent: every action targets
// an existing state or rule, every symbol, field, and goto reference is in
// range, and every terminal regexp compiles. A Grammar accepted by Validate
// can be bound to the parsing engine without further per-parse checks.
func Validate(g *Grammar) error {
	if len(g.Terms) == 0 {
		return corruptTableError("no terminals")
	}
	if g.Terms[EndTerm].Re != "" {
		return corruptTableError("end-of-input terminal %q has a regexp", g.Terms[EndTerm].Name)
	}
	if len(g.NonTerms) == 0 {
		return corruptTableError("no nonterminals")
	}
	if g.StateCount <= 0 {
		return corruptTableError("state count is %d", g.StateCount)
	}

	for i, t := range g.Terms {
		if i != EndTerm && t.Re == "" && t.Flags&AsideTerm == 0 {
			return corruptTableError("terminal %d (%q) has no regexp", i, t.Name)
		}
		if t.Re != "" {
			_, e := regexp.Compile(t.Re)
			if e != nil {
				return corruptTableError("terminal %d (%q) regexp: %s", i, t.Name, e.Error())
			}
		}
	}

	for i, r := range g.Rules {
		if r.NonTerm < 0 || r.NonTerm >= len(g.NonTerms) {
			return corruptTableError("rule %d left-hand side %d is not a nonterminal", i, r.NonTerm)
		}
		if r.Len < 0 {
			return corruptTableError("rule %d has negative length", i)
		}
		if r.Alias != NoAlias && (r.Alias < 0 || r.Alias >= g.SymbolCount()) {
			return corruptTableError("rule %d alias %d is not a symbol", i, r.Alias)
		}
		if r.Fields != nil && len(r.Fields) != r.Len {
			return corruptTableError("rule %d names %d of %d positions", i, len(r.Fields), r.Len)
		}
		for _, f := range r.Fields {
			if f != NoField && (f < 0 || f >= len(g.Fields)) {
				return corruptTableError("rule %d references unknown field %d", i, f)
			}
		}
	}

	if len(g.Actions) != g.StateCount*len(g.Terms) {
		return corruptTableError("action table has %d entries, want %d", len(g.Actions), g.StateCount*len(g.Terms))
	}
	for i, a := range g.Actions {
		switch a.Kind() {
		case Shift:
			if a.Arg() >= g.StateCount {
				return corruptTableError("action %d shifts to unknown state %d", i, a.Arg())
			}
		case Reduce:
			if a.Arg() >= len(g.Rules) {
				return corruptTableError("action %d reduces by unknown rule %d", i, a.Arg())
			}
		case Accept:
			if a.Arg() != 0 {
				return corruptTableError("action %d is an accept with argument %d", i, a.Arg())
			}
		}
	}

	if len(g.Gotos) != g.StateCount*len(g.NonTerms) {
		return corruptTableError("goto table has %d entries, want %d", len(g.Gotos), g.StateCount*len(g.NonTerms))
	}
	for i, s := range g.Gotos {
		if s != NoGoto && (s < 0 || s >= g.StateCount) {
			return corruptTableError("goto %d targets unknown state %d", i, s)
		}
	}

	return nil
}
