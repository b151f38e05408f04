package tablegen

import (
	"github.com/vkarel/lrx"
	"github.com/vkarel/lrx/grammar"
	"github.com/vkarel/lrx/lexer"
)

const (
	// UnexpectedEofError = end of input where a definition token was expected.
	UnexpectedEofError = iota + lrx.GenErrors

	// UnexpectedTokenError = a token out of place in the definition language.
	UnexpectedTokenError

	// UnknownTokenError = a byte sequence no definition token matches.
	UnknownTokenError

	// WrongRegexpError = a terminal regexp does not compile.
	WrongRegexpError

	// WrongDirectiveError = a directive other than !aside.
	WrongDirectiveError

	// TermDefinedError = repeated definition of a terminal.
	TermDefinedError

	// NonTermDefinedError = repeated definition of a nonterminal.
	NonTermDefinedError

	// UnknownTermError = a $reference to an undefined terminal.
	UnknownTermError

	// UnknownNonTermError = definitions reference undefined nonterminals.
	UnknownNonTermError

	// UnusedNonTermError = defined nonterminals unreachable from the root.
	UnusedNonTermError

	// AsideRefError = an aside terminal referenced in a definition.
	AsideRefError

	// NoRootError = the definition contains no nonterminal definitions.
	NoRootError

	// ConflictError = the grammar is not SLR(1).
	ConflictError
)

func eofError(t *lexer.Token) *lrx.Error {
	return lrx.FormatErrorPos(t, UnexpectedEofError, "unexpected end of definition")
}

func unexpectedTokenError(t *lexer.Token, expected string) *lrx.Error {
	if t.Term() == grammar.EndTerm {
		return eofError(t)
	}

	return lrx.FormatErrorPos(t, UnexpectedTokenError, "unexpected %q, expecting %s", t.Text(), expected)
}

func unknownTokenError(t *lexer.Token) *lrx.Error {
	return lrx.FormatErrorPos(t, UnknownTokenError, "unknown token %q", t.Text())
}

func regexpError(t *lexer.Token, e error) *lrx.Error {
	return lrx.FormatErrorPos(t, WrongRegexpError, "incorrect RegExp: %s", e.Error())
}

func directiveError(t *lexer.Token) *lrx.Error {
	return lrx.FormatErrorPos(t, WrongDirectiveError, "unknown directive %q", t.Text())
}

func termDefinedError(t *lexer.Token) *lrx.Error {
	return lrx.FormatErrorPos(t, TermDefinedError, "duplicate terminal %q definition", t.Text())
}

func nonTermDefinedError(t *lexer.Token) *lrx.Error {
	return lrx.FormatErrorPos(t, NonTermDefinedError, "duplicate nonterminal %q definition", t.Text())
}

func unknownTermError(t *lexer.Token) *lrx.Error {
	return lrx.FormatErrorPos(t, UnknownTermError, "undefined terminal %q", t.Text())
}

func unknownNonTermError(names []string) *lrx.Error {
	return lrx.FormatError(UnknownNonTermError, "undefined nonterminals: %q", names)
}

func unusedNonTermError(names []string) *lrx.Error {
	return lrx.FormatError(UnusedNonTermError, "unused nonterminals: %q", names)
}

func asideRefError(t *lexer.Token) *lrx.Error {
	return lrx.FormatErrorPos(t, AsideRefError, "aside terminal %q cannot appear in a definition", t.Text())
}

func noRootError(sourceName string) *lrx.Error {
	return &lrx.Error{Code: NoRootError, Message: "no nonterminal definitions", SourceName: sourceName}
}

func conflictError(state int, termName, prev, next string) *lrx.Error {
	return lrx.FormatError(ConflictError, "%s/%s conflict in state %d on %q", prev, next, state, termName)
}
