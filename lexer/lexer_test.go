package lexer

import (
	"testing"

	"github.com/vkarel/lrx/grammar"
	"github.com/vkarel/lrx/internal/ints"
	"github.com/vkarel/lrx/internal/test"
	"github.com/vkarel/lrx/source"
)

const (
	endTerm = iota
	spaceTerm
	ifTerm
	nameTerm
	numTerm
)

var testTerms = []grammar.Term{
	{Name: "-end-"},
	{Name: "space", Re: `[ \t\r\n]+`, Flags: grammar.AsideTerm},
	{Name: "if", Re: `if\b`, Flags: grammar.LiteralTerm},
	{Name: "name", Re: `[a-z]+`},
	{Name: "num", Re: `[0-9]+`},
}

func scan(l *Lexer, src *source.Source, valid ints.Set) []*Token {
	var res []*Token
	pos := 0
	for {
		tok := l.Next(src, pos, valid)
		res = append(res, tok)
		if tok.Term() == endTerm {
			return res
		}
		pos = tok.End()
	}
}

func TestTokenSequence(t *testing.T) {
	l := New(testTerms)
	src := source.New("test", []byte("if ifx 42"))
	tokens := scan(l, src, nil)

	expected := []struct {
		term int
		text string
	}{
		{ifTerm, "if"},
		{spaceTerm, " "},
		{nameTerm, "ifx"},
		{spaceTerm, " "},
		{numTerm, "42"},
		{endTerm, ""},
	}
	test.ExpectInt(t, len(expected), len(tokens))
	for i, exp := range expected {
		test.ExpectInt(t, exp.term, tokens[i].Term())
		test.ExpectStr(t, exp.text, tokens[i].Text())
	}
}

// The valid set retries lower-priority terminals, so the same bytes lex
// differently depending on what the parser state accepts.
func TestValidSetRetry(t *testing.T) {
	l := New(testTerms)
	src := source.New("test", []byte("if"))

	tok := l.Next(src, 0, ints.NewSet(ifTerm, nameTerm))
	test.ExpectInt(t, ifTerm, tok.Term())

	tok = l.Next(src, 0, ints.NewSet(nameTerm))
	test.ExpectInt(t, nameTerm, tok.Term())
	test.ExpectStr(t, "if", tok.Text())
}

// When nothing in the valid set matches, the preferred match is returned
// anyway so the parser can see the offending token.
func TestValidSetFallback(t *testing.T) {
	l := New(testTerms)
	src := source.New("test", []byte("42"))

	tok := l.Next(src, 0, ints.NewSet(nameTerm))
	test.ExpectInt(t, numTerm, tok.Term())
	test.ExpectStr(t, "42", tok.Text())
}

func TestWrongTerm(t *testing.T) {
	l := New(testTerms)

	tok := l.Next(source.New("test", []byte("@x")), 0, nil)
	test.ExpectInt(t, WrongTerm, tok.Term())
	test.ExpectStr(t, WrongTermName, tok.TermName())
	test.ExpectStr(t, "@", tok.Text())

	// a wrong token covers exactly one rune, not one byte
	tok = l.Next(source.New("test", []byte("éx")), 0, nil)
	test.ExpectInt(t, WrongTerm, tok.Term())
	test.ExpectStr(t, "é", tok.Text())
}

func TestEndOfInput(t *testing.T) {
	l := New(testTerms)
	src := source.New("test", []byte("x"))

	tok := l.Next(src, 1, nil)
	test.ExpectInt(t, endTerm, tok.Term())
	test.ExpectInt(t, 1, tok.Start())
	test.ExpectInt(t, 1, tok.End())

	tok = l.Next(source.New("test", nil), 0, nil)
	test.ExpectInt(t, endTerm, tok.Term())
}

func TestTokenPositions(t *testing.T) {
	l := New(testTerms)
	src := source.New("test.src", []byte("ab\ncd"))

	tok := l.Next(src, 3, nil)
	test.ExpectStr(t, "cd", tok.Text())
	test.ExpectStr(t, "test.src", tok.SourceName())
	test.ExpectInt(t, 2, tok.Line())
	test.ExpectInt(t, 1, tok.Col())
}
