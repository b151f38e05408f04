// Package parser defines the table-driven shift-reduce parsing engine.
//
// A Parser binds a language handle to the engine. The Parser itself is
// stateless and safe for concurrent use: every Parse call owns a transient
// parse context (stack plus cursor) that is discarded when the call
// returns. Malformed source input never fails a parse; it is represented
// by error nodes in the returned tree.
package parser

import (
	"sync/atomic"

	"github.com/vkarel/lrx/grammar"
	"github.com/vkarel/lrx/internal/ints"
	"github.com/vkarel/lrx/language"
	"github.com/vkarel/lrx/lexer"
	"github.com/vkarel/lrx/source"
	"github.com/vkarel/lrx/tree"
)

// Options controls a single parse call.
type Options struct {
	// SourceName is attached to the parsed source for diagnostics.
	SourceName string

	// Cancelled is polled between engine steps; once it reads true the
	// parse stops with a CancelledError. May be shared by many calls.
	Cancelled *atomic.Bool

	// MaxSteps bounds the number of engine steps, 0 means no bound.
	// Exceeding it stops the parse with a StepLimitError.
	MaxSteps int
}

// Parser is the parsing engine for one language. Immutable after New.
type Parser struct {
	lang *language.Language
	lex  *lexer.Lexer

	// valid holds per-state lookahead sets: terminals the state has an
	// action for plus all aside terminals. The lexer uses them for
	// context-sensitive tokenization.
	valid []ints.Set

	asides ints.Set
}

// New binds a validated language handle to a parsing engine.
func New(lang *language.Language) *Parser {
	g := lang.Table()
	p := &Parser{
		lang:   lang,
		lex:    lexer.New(g.Terms),
		valid:  make([]ints.Set, g.StateCount),
		asides: ints.NewSet(),
	}

	for term, t := range g.Terms {
		if t.Flags&grammar.AsideTerm != 0 {
			p.asides.Add(term)
		}
	}
	for state := 0; state < g.StateCount; state++ {
		set := ints.NewSet()
		set.AddSet(p.asides)
		for term := range g.Terms {
			if g.Action(state, term).Kind() != grammar.NoAction {
				set.Add(term)
			}
		}
		p.valid[state] = set
	}

	return p
}

// Language returns the handle the parser was built for.
func (p *Parser) Language() *language.Language {
	return p.lang
}

// Parse parses text into a syntax tree.
//
// old is the tree of a previous version of the same text and serves as an
// incremental reuse hint; the current engine always performs a full
// reparse, which is an equivalent (if slower) behavior, so old may be nil.
//
// The returned tree's root always spans the whole input and its leaf
// ranges partition it; parse never fails on malformed input.
func (p *Parser) Parse(text []byte, old *tree.Tree) (*tree.Tree, error) {
	return p.ParseWithOptions(text, old, Options{})
}

// ParseWithOptions parses text honoring opts. The only errors it returns
// are CancelledError and StepLimitError.
func (p *Parser) ParseWithOptions(text []byte, old *tree.Tree, opts Options) (*tree.Tree, error) {
	_ = old // reuse hint, see Parse
	pc := newParseContext(p, source.New(opts.SourceName, text), opts)
	return pc.parse()
}
