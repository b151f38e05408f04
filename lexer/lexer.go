// Package lexer defines the table-driven lexical analyzer.
//
// All terminal regexps of a grammar are combined into one anchored RE2
// expression with a capture group per terminal; terminal order defines
// match priority. The lexer is immutable and stateless: the caller owns
// the position, which makes lexing restartable from any offset and lets
// the parser drive it with the valid lookahead set of its current state.
package lexer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/vkarel/lrx/grammar"
	"github.com/vkarel/lrx/internal/ints"
	"github.com/vkarel/lrx/source"
)

// Lexer tokenizes source text against the terminals of one grammar.
// Safe for concurrent use.
type Lexer struct {
	terms []grammar.Term
	re    *regexp.Regexp

	// groups maps a terminal index to its top-level capture group index in
	// re, or 0 for terminals without a regexp.
	groups []int

	// termRes holds an anchored regexp per terminal for state-filtered
	// retries, nil for terminals without a regexp.
	termRes []*regexp.Regexp
}

// New builds a lexer for a validated grammar's terminals.
// Must only be called with terminals that passed grammar.Validate,
// which guarantees every regexp compiles.
func New(terms []grammar.Term) *Lexer {
	l := &Lexer{
		terms:   terms,
		groups:  make([]int, len(terms)),
		termRes: make([]*regexp.Regexp, len(terms)),
	}
	masks := make([]string, 0, len(terms))
	group := 1
	for i, t := range terms {
		if t.Re == "" {
			continue
		}

		l.groups[i] = group
		l.termRes[i] = regexp.MustCompile(`\A(?s:` + t.Re + `)`)
		masks = append(masks, "("+t.Re+")")
		// Nested capture groups inside a terminal regexp shift the
		// group numbering of all terminals after it.
		group += 1 + l.termRes[i].NumSubexp()
	}

	l.re = regexp.MustCompile(`\A(?s:` + strings.Join(masks, "|") + `)`)
	return l
}

// Next fetches the token starting at pos.
//
// valid filters which terminals may be returned. If the preferred match is
// not in the set, the valid terminals are retried individually in priority
// order, so the same bytes may lex differently depending on parser state.
// A terminal outside the set is only returned when nothing in the set
// matches, letting the parser see the offending token and recover.
//
// Next never fails: if no terminal matches at pos it returns a WrongTerm
// token covering one rune, and at the end of input it returns the
// end-of-input marker. A successful match is never empty, so consuming
// tokens always advances.
func (l *Lexer) Next(src *source.Source, pos int, valid ints.Set) *Token {
	content := src.Content()
	if pos >= len(content) {
		return NewToken(grammar.EndTerm, l.terms[grammar.EndTerm].Name, len(content), len(content), src)
	}

	fallback := WrongTerm
	fallbackEnd := pos
	match := l.re.FindSubmatchIndex(content[pos:])
	if match != nil && match[1] > 0 {
		for term := range l.terms {
			g := l.groups[term]
			if g == 0 || match[2*g] < 0 || match[2*g+1] <= match[2*g] {
				continue
			}

			if valid == nil || valid.Contains(term) {
				return NewToken(term, l.terms[term].Name, pos, pos+match[2*g+1], src)
			}
			fallback = term
			fallbackEnd = pos + match[2*g+1]
			break
		}
	}

	if fallback != WrongTerm {
		for term, re := range l.termRes {
			if re == nil || term == fallback || !valid.Contains(term) {
				continue
			}

			m := re.FindIndex(content[pos:])
			if m != nil && m[1] > 0 {
				return NewToken(term, l.terms[term].Name, pos, pos+m[1], src)
			}
		}

		return NewToken(fallback, l.terms[fallback].Name, pos, fallbackEnd, src)
	}

	_, size := utf8.DecodeRune(content[pos:])
	return NewToken(WrongTerm, WrongTermName, pos, pos+size, src)
}
