/*
Package lrx is a runtime for table-driven parsers.

A grammar is compiled (by the tablegen subpackage or an external tool)
into a versioned binary table blob. The language subpackage validates
such a blob and wraps it in an immutable, shareable handle. The parser
subpackage binds a handle to an LR shift-reduce engine that turns source
text into a concrete syntax tree, recovering from malformed input
instead of failing. The tree subpackage holds the resulting immutable
tree and its navigation API.

Subpackages:
  - grammar: compiled table structures and the binary blob format;
  - language: blob loading, validation, and the language handle;
  - lexer: table-driven lexical analyzer;
  - parser: the parsing engine;
  - source: source text and position mapping;
  - tree: syntax tree type and queries;
  - tablegen: converts grammar definition text to compiled tables;
  - cmd/lrxgen: console utility compiling grammar definitions to blobs.
*/
package lrx

import (
	"errors"
	"fmt"
)

// Error classes. Every subpackage draws its codes from one class, which
// leaves room for 100 codes per class:
const (
	TableErrors = 1   // grammar and language, table blob loading
	ParseErrors = 101 // parser
	GenErrors   = 201 // tablegen
)

// Error is the error type returned by all lrx subpackages.
type Error struct {
	// Code is a non-zero code from one of the error classes.
	Code int

	// Message is the full human-readable text, position included.
	Message string

	// SourceName names the source the error refers to, or is empty.
	SourceName string

	// Line and Col locate the error in the source, both 0 when unknown.
	Line int
	Col  int
}

func (e *Error) Error() string {
	return e.Message
}

// Class returns the error class base Code belongs to.
func (e *Error) Class() int {
	switch {
	case e.Code >= GenErrors:
		return GenErrors
	case e.Code >= ParseErrors:
		return ParseErrors
	default:
		return TableErrors
	}
}

// Code extracts the code from any error produced by lrx subpackages.
// It returns 0 when err is nil or does not wrap an *Error.
func Code(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// SourcePos locates an error in its source; source.Pos and lexer.Token
// implement it.
type SourcePos interface {
	// SourceName returns the source name or empty string.
	SourceName() string
	// Line returns a 1-based line number or 0.
	Line() int
	// Col returns a 1-based column number or 0.
	Col() int
}

// FormatError creates an Error carrying no position information.
// params are applied to msg with fmt.Sprintf when present.
func FormatError(code int, msg string, params ...any) *Error {
	if len(params) > 0 {
		msg = fmt.Sprintf(msg, params...)
	}
	return &Error{Code: code, Message: msg}
}

// FormatErrorPos creates an Error located at pos. The position is kept in
// the Error fields and, when known, appended to the message.
func FormatErrorPos(pos SourcePos, code int, msg string, params ...any) *Error {
	e := FormatError(code, msg, params...)
	e.SourceName, e.Line, e.Col = pos.SourceName(), pos.Line(), pos.Col()
	if e.Line == 0 || e.Col == 0 {
		return e
	}

	where := e.SourceName
	if where == "" {
		where = "input"
	}
	e.Message = fmt.Sprintf("%s (%s:%d:%d)", e.Message, where, e.Line, e.Col)
	return e
}
