package tablegen

import (
	"regexp"
	"strings"

	"github.com/vkarel/lrx/grammar"
	"github.com/vkarel/lrx/lexer"
	"github.com/vkarel/lrx/source"
)

// terminals of the definition language itself
const (
	metaEnd = iota
	metaSpace
	metaComment
	metaDir
	metaTokenName
	metaName
	metaString
	metaRegexp
	metaOp
)

var metaTerms = []grammar.Term{
	{Name: "-end-"},
	{Name: "space", Re: "[ \\t\\r\\n\\f]+", Flags: grammar.AsideTerm},
	{Name: "comment", Re: "#[^\\n]*", Flags: grammar.AsideTerm},
	{Name: "dir", Re: "![a-z]+"},
	{Name: "token-name", Re: "\\$[a-zA-Z_][a-zA-Z_0-9-]*"},
	{Name: "name", Re: "[a-zA-Z_][a-zA-Z_0-9-]*"},
	{Name: "string", Re: "(?:\".*?\")|(?:'.*?')"},
	{Name: "regexp", Re: "/(?:[^\\\\/\\n]|\\\\.)+/"},
	{Name: "op", Re: "[(){}\\[\\]=|,;:]"},
}

// ParseString compiles a grammar definition to parser tables.
func ParseString(name, content string) (*grammar.Grammar, error) {
	return Parse(source.New(name, []byte(content)))
}

// ParseBytes compiles a grammar definition to parser tables.
func ParseBytes(name string, content []byte) (*grammar.Grammar, error) {
	return Parse(source.New(name, content))
}

// Parse compiles a grammar definition to parser tables.
func Parse(s *source.Source) (*grammar.Grammar, error) {
	d, e := parseDefs(s)
	if e != nil {
		return nil, e
	}

	ps, e := d.buildProds()
	if e != nil {
		return nil, e
	}

	g, e := buildTables(d, ps)
	if e != nil {
		return nil, e
	}

	e = grammar.Validate(g)
	if e != nil {
		return nil, e
	}

	return g, nil
}

type termDef struct {
	name  string
	re    string
	aside bool
	tok   *lexer.Token
}

type ntDef struct {
	name string
	body defExpr
	tok  *lexer.Token
}

type defs struct {
	sourceName   string
	terms        []termDef
	termIndex    map[string]int
	literals     []string
	literalIndex map[string]int
	nonTerms     []ntDef
	ntIndex      map[string]int
	fields       []string
	fieldIndex   map[string]int
}

// expression tree of a nonterminal body

type defExpr interface{}

type refKind int

const (
	nonTermRef refKind = iota
	termRef
	literalRef
)

type refExpr struct {
	kind refKind
	name string
	tok  *lexer.Token
}

type seqExpr struct {
	items []defExpr
}

type altExpr struct {
	variants []defExpr
}

type optExpr struct {
	body defExpr
}

type repExpr struct {
	body defExpr
}

type fieldExpr struct {
	name string
	body defExpr
}

type defParser struct {
	lex   *lexer.Lexer
	src   *source.Source
	pos   int
	tok   *lexer.Token
	ahead *lexer.Token
	d     *defs
}

func parseDefs(s *source.Source) (*defs, error) {
	d := &defs{
		sourceName:   s.Name(),
		termIndex:    map[string]int{},
		literalIndex: map[string]int{},
		ntIndex:      map[string]int{},
		fieldIndex:   map[string]int{},
	}
	p := &defParser{lex: lexer.New(metaTerms), src: s, d: d}
	e := p.next()
	for e == nil && p.tok.Term() != metaEnd {
		switch p.tok.Term() {
		case metaDir:
			e = p.parseDirective()
		case metaTokenName:
			e = p.parseTermDef()
		case metaName:
			e = p.parseNonTermDef()
		default:
			e = unexpectedTokenError(p.tok, "a definition")
		}
	}
	if e != nil {
		return nil, e
	}

	if len(d.nonTerms) == 0 {
		return nil, noRootError(d.sourceName)
	}

	return d, nil
}

func (p *defParser) fetch() (*lexer.Token, error) {
	for {
		t := p.lex.Next(p.src, p.pos, nil)
		p.pos = t.End()
		switch t.Term() {
		case metaSpace, metaComment:
		case lexer.WrongTerm:
			return nil, unknownTokenError(t)
		default:
			return t, nil
		}
	}
}

func (p *defParser) next() error {
	if p.ahead != nil {
		p.tok, p.ahead = p.ahead, nil
		return nil
	}

	t, e := p.fetch()
	p.tok = t
	return e
}

func (p *defParser) peek() (*lexer.Token, error) {
	if p.ahead == nil {
		t, e := p.fetch()
		if e != nil {
			return nil, e
		}

		p.ahead = t
	}
	return p.ahead, nil
}

func (p *defParser) isOp(text string) bool {
	return p.tok.Term() == metaOp && p.tok.Text() == text
}

func (p *defParser) expectOp(text string) error {
	if !p.isOp(text) {
		return unexpectedTokenError(p.tok, "'"+text+"'")
	}

	return p.next()
}

func (p *defParser) parseDirective() error {
	if p.tok.Text() != "!aside" {
		return directiveError(p.tok)
	}

	e := p.next()
	for e == nil && p.tok.Term() == metaTokenName {
		name := p.tok.Text()[1:]
		i, has := p.d.termIndex[name]
		if !has {
			return unknownTermError(p.tok)
		}

		p.d.terms[i].aside = true
		e = p.next()
	}
	if e != nil {
		return e
	}

	return p.expectOp(";")
}

func (p *defParser) parseTermDef() error {
	nameTok := p.tok
	name := nameTok.Text()[1:]
	if _, has := p.d.termIndex[name]; has {
		return termDefinedError(nameTok)
	}

	e := p.next()
	if e == nil {
		e = p.expectOp("=")
	}
	if e != nil {
		return e
	}

	if p.tok.Term() != metaRegexp {
		return unexpectedTokenError(p.tok, "a regexp")
	}

	text := p.tok.Text()
	re := strings.ReplaceAll(text[1:len(text)-1], "\\/", "/")
	_, e = regexp.Compile(re)
	if e != nil {
		return regexpError(p.tok, e)
	}

	p.d.termIndex[name] = len(p.d.terms)
	p.d.terms = append(p.d.terms, termDef{name: name, re: re, tok: nameTok})
	e = p.next()
	if e != nil {
		return e
	}

	return p.expectOp(";")
}

func (p *defParser) parseNonTermDef() error {
	nameTok := p.tok
	name := nameTok.Text()
	if _, has := p.d.ntIndex[name]; has {
		return nonTermDefinedError(nameTok)
	}

	e := p.next()
	if e == nil {
		e = p.expectOp("=")
	}
	if e != nil {
		return e
	}

	body, e := p.parseSeq()
	if e != nil {
		return e
	}

	p.d.ntIndex[name] = len(p.d.nonTerms)
	p.d.nonTerms = append(p.d.nonTerms, ntDef{name: name, body: body, tok: nameTok})
	return p.expectOp(";")
}

// sequence = item {',' item}
func (p *defParser) parseSeq() (defExpr, error) {
	item, e := p.parseAlt()
	if e != nil {
		return nil, e
	}

	items := []defExpr{item}
	for p.isOp(",") {
		e = p.next()
		if e == nil {
			item, e = p.parseAlt()
		}
		if e != nil {
			return nil, e
		}

		items = append(items, item)
	}
	if len(items) == 1 {
		return items[0], nil
	}

	return &seqExpr{items}, nil
}

// item = variant {'|' variant}
func (p *defParser) parseAlt() (defExpr, error) {
	variant, e := p.parseVariant()
	if e != nil {
		return nil, e
	}

	variants := []defExpr{variant}
	for p.isOp("|") {
		e = p.next()
		if e == nil {
			variant, e = p.parseVariant()
		}
		if e != nil {
			return nil, e
		}

		variants = append(variants, variant)
	}
	if len(variants) == 1 {
		return variants[0], nil
	}

	return &altExpr{variants}, nil
}

func (p *defParser) parseVariant() (defExpr, error) {
	switch {
	case p.tok.Term() == metaName:
		t, e := p.peek()
		if e != nil {
			return nil, e
		}

		if t.Term() == metaOp && t.Text() == ":" {
			field := p.tok.Text()
			e = p.next()
			if e == nil {
				e = p.next()
			}
			if e != nil {
				return nil, e
			}

			body, e := p.parseVariant()
			if e != nil {
				return nil, e
			}

			if _, has := p.d.fieldIndex[field]; !has {
				p.d.fieldIndex[field] = len(p.d.fields)
				p.d.fields = append(p.d.fields, field)
			}
			return &fieldExpr{name: field, body: body}, nil
		}

		x := &refExpr{kind: nonTermRef, name: p.tok.Text(), tok: p.tok}
		return x, p.next()

	case p.tok.Term() == metaTokenName:
		x := &refExpr{kind: termRef, name: p.tok.Text()[1:], tok: p.tok}
		return x, p.next()

	case p.tok.Term() == metaString:
		text := p.tok.Text()
		text = text[1 : len(text)-1]
		if text == "" {
			return nil, unexpectedTokenError(p.tok, "a non-empty literal")
		}

		if _, has := p.d.literalIndex[text]; !has {
			p.d.literalIndex[text] = len(p.d.literals)
			p.d.literals = append(p.d.literals, text)
		}
		x := &refExpr{kind: literalRef, name: text, tok: p.tok}
		return x, p.next()

	case p.isOp("("):
		body, e := p.parseBracketed(")")
		if e != nil {
			return nil, e
		}

		return body, nil

	case p.isOp("["):
		body, e := p.parseBracketed("]")
		if e != nil {
			return nil, e
		}

		return &optExpr{body}, nil

	case p.isOp("{"):
		body, e := p.parseBracketed("}")
		if e != nil {
			return nil, e
		}

		return &repExpr{body}, nil
	}

	return nil, unexpectedTokenError(p.tok, "a name, literal, or group")
}

func (p *defParser) parseBracketed(closer string) (defExpr, error) {
	e := p.next()
	if e != nil {
		return nil, e
	}

	body, e := p.parseSeq()
	if e != nil {
		return nil, e
	}

	return body, p.expectOp(closer)
}
