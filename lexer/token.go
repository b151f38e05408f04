package lexer

import (
	"github.com/vkarel/lrx/source"
)

const (
	// WrongTerm is the terminal index of tokens covering bytes no terminal
	// matches. The engine turns such tokens into error leaves instead of
	// failing the parse.
	WrongTerm = -1

	// WrongTermName is the terminal name reported for WrongTerm tokens.
	WrongTermName = "-error-"
)

// Token is one lexeme: a terminal index plus the byte range it covers.
type Token struct {
	term       int
	name       string
	start, end int
	src        *source.Source
}

func NewToken(term int, name string, start, end int, src *source.Source) *Token {
	return &Token{term, name, start, end, src}
}

// Term returns the terminal index, WrongTerm for unrecognized input.
func (t *Token) Term() int {
	return t.term
}

func (t *Token) TermName() string {
	return t.name
}

// Start returns the byte offset of the first token byte.
func (t *Token) Start() int {
	return t.start
}

// End returns the byte offset just past the last token byte.
func (t *Token) End() int {
	return t.end
}

func (t *Token) Text() string {
	return string(t.src.Content()[t.start:t.end])
}

func (t *Token) Source() *source.Source {
	return t.src
}

func (t *Token) SourceName() string {
	if t.src == nil {
		return ""
	}
	return t.src.Name()
}

func (t *Token) Line() int {
	line, _ := t.src.LineCol(t.start)
	return line
}

func (t *Token) Col() int {
	_, col := t.src.LineCol(t.start)
	return col
}
