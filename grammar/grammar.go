// Package grammar defines compiled parser tables and their binary blob format.
//
// A Grammar is produced either by the tablegen subpackage or by decoding
// a table blob generated elsewhere. The parser never interprets grammar
// semantics beyond these tables: the action table maps (state, terminal)
// to a shift/reduce/accept decision and the goto table maps
// (state, nonterminal) to the next state.
package grammar

const (
	// EndTerm is the terminal index reserved for the end-of-input marker.
	// It has no regexp and is never produced by the lexer from source bytes.
	EndTerm = 0

	// RootNonTerm is the nonterminal index of the grammar root symbol.
	RootNonTerm = 0

	// InitialState is the state the engine starts in.
	InitialState = 0
)

const (
	// NoAlias marks a rule that presents its own nonterminal name.
	NoAlias = -1

	// NoField marks an unnamed right-hand side position.
	NoField = -1

	// NoGoto marks an absent goto table entry.
	NoGoto = -1
)

// TermFlags is a bit set of terminal properties.
type TermFlags int

const (
	// LiteralTerm marks a terminal matching fixed text (keyword, punctuator).
	LiteralTerm TermFlags = 1 << iota

	// AsideTerm marks an insignificant terminal (whitespace, comment) that may
	// appear between any two tokens. Aside tokens still become tree leaves so
	// that leaf ranges cover the whole input.
	AsideTerm
)

// Term describes one terminal symbol.
type Term struct {
	// Name is the terminal name used for diagnostics and tree queries.
	Name string

	// Re is an RE2 regular expression matching the terminal, anchored by the
	// lexer at the current position. Empty for EndTerm only.
	Re string

	Flags TermFlags
}

// NonTerm describes one nonterminal symbol.
type NonTerm struct {
	Name string
}

// Rule is one production. The right-hand side symbols themselves are not
// stored: the engine only needs their count to pop the parse stack.
type Rule struct {
	// NonTerm is the left-hand side nonterminal index.
	NonTerm int

	// Len is the number of right-hand side symbols.
	Len int

	// Alias is the symbol id a node produced by this rule reports instead of
	// its nonterminal, or NoAlias.
	Alias int

	// Fields holds a field index (or NoField) per right-hand side position.
	// Nil when the rule names no positions; otherwise len(Fields) == Len.
	Fields []int
}

// ActionKind discriminates parse table actions.
type ActionKind int

const (
	NoAction ActionKind = iota
	Shift
	Reduce
	Accept
)

// Action is a packed parse table entry: the two low bits hold the kind,
// the rest hold the argument (target state for Shift, rule index for Reduce).
type Action uint32

func ShiftAction(state int) Action {
	return Action(state)<<2 | Action(Shift)
}

func ReduceAction(rule int) Action {
	return Action(rule)<<2 | Action(Reduce)
}

func AcceptAction() Action {
	return Action(Accept)
}

func (a Action) Kind() ActionKind {
	return ActionKind(a & 3)
}

// Arg returns the target state of a Shift or the rule index of a Reduce.
func (a Action) Arg() int {
	return int(a >> 2)
}

// Grammar holds the complete compiled tables for one language.
// A decoded and validated Grammar is never mutated.
type Grammar struct {
	Terms    []Term
	NonTerms []NonTerm

	// Fields lists field names referenced by Rule.Fields.
	Fields []string

	Rules []Rule

	StateCount int

	// Actions is a flat StateCount x len(Terms) table indexed by
	// state*len(Terms) + term.
	Actions []Action

	// Gotos is a flat StateCount x len(NonTerms) table indexed by
	// state*len(NonTerms) + nonTerm. Entries are target states or NoGoto.
	Gotos []int
}

// Action returns the table entry for the given state and terminal.
func (g *Grammar) Action(state, term int) Action {
	return g.Actions[state*len(g.Terms)+term]
}

// Goto returns the target state for the given state and nonterminal, or NoGoto.
func (g *Grammar) Goto(state, nonTerm int) int {
	return g.Gotos[state*len(g.NonTerms)+nonTerm]
}

// SymbolCount returns the size of the unified symbol id space:
// terminals first, then nonterminals.
func (g *Grammar) SymbolCount() int {
	return len(g.Terms) + len(g.NonTerms)
}

// NonTermSymbol returns the unified symbol id of a nonterminal.
// Terminal indexes are their own unified symbol ids.
func (g *Grammar) NonTermSymbol(nonTerm int) int {
	return len(g.Terms) + nonTerm
}

// SymbolName resolves a unified symbol id to its name.
// Returns empty string for ids outside the symbol space.
func (g *Grammar) SymbolName(sym int) string {
	if sym < 0 || sym >= g.SymbolCount() {
		return ""
	}
	if sym < len(g.Terms) {
		return g.Terms[sym].Name
	}
	return g.NonTerms[sym-len(g.Terms)].Name
}
