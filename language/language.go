// Package language loads compiled grammar table blobs and wraps them in
// immutable, shareable language handles.
//
// A handle is the unit of ownership: there is no process-wide registry.
// Loading the same blob twice yields two independently usable handles
// with equal fingerprints.
package language

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/klauspost/compress/zstd"

	"github.com/vkarel/lrx/grammar"
)

// ErrorSymbolName is the name reported for error nodes produced by recovery.
const ErrorSymbolName = "ERROR"

// zstd frame magic per RFC 8878.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// maxTableBytes caps the uncompressed size a compressed blob may expand to.
// Honest grammar tables are far below it; a frame declaring more is
// rejected before decompression can materialize it.
const maxTableBytes = 1 << 26

// Language is a validated, immutable grammar table handle.
// It is safe for concurrent use by any number of parses.
type Language struct {
	table       *grammar.Grammar
	version     int
	fingerprint string
	terms       map[string]int
	nonTerms    map[string]int
	fields      map[string]int
}

// Load validates blob and constructs a language handle.
//
// blob is either an uncompressed table blob or a zstd frame containing one;
// compressed blobs are detected by the frame magic and decompressed first.
// Load fails fast on the fixed header (truncation, magic, version) before
// any table body access, then structurally validates the body. The returned
// handle does not retain blob.
func Load(blob []byte) (*Language, error) {
	raw := blob
	if bytes.HasPrefix(blob, zstdMagic) {
		dec, e := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxTableBytes))
		if e != nil {
			return nil, e
		}
		defer dec.Close()

		raw, e = dec.DecodeAll(blob, nil)
		if e != nil {
			if errors.Is(e, zstd.ErrDecoderSizeExceeded) {
				return nil, oversizeFrameError(maxTableBytes)
			}
			return nil, notGrammarFrameError(e)
		}
	}

	h, e := grammar.ParseHeader(raw)
	if e != nil {
		return nil, e
	}
	g, e := grammar.Decode(raw)
	if e != nil {
		return nil, e
	}

	sum := sha256.Sum256(raw)
	l := &Language{
		table:       g,
		version:     h.Version,
		fingerprint: "sha256:" + hex.EncodeToString(sum[:]),
		terms:       make(map[string]int, len(g.Terms)),
		nonTerms:    make(map[string]int, len(g.NonTerms)),
		fields:      make(map[string]int, len(g.Fields)),
	}
	for i, t := range g.Terms {
		l.terms[t.Name] = i
	}
	for i, nt := range g.NonTerms {
		l.nonTerms[nt.Name] = i
	}
	for i, f := range g.Fields {
		l.fields[f] = i
	}

	return l, nil
}

// New wraps an in-memory grammar (e.g. one built by tablegen) in a handle
// without a serialization round trip. The grammar is validated and must not
// be mutated afterwards.
func New(g *grammar.Grammar) (*Language, error) {
	blob, e := grammar.Encode(g)
	if e != nil {
		return nil, e
	}
	return Load(blob)
}

// Table exposes the underlying tables for the parsing engine.
// The caller must treat them as read-only.
func (l *Language) Table() *grammar.Grammar {
	return l.table
}

// Version returns the format version the table blob was encoded with.
func (l *Language) Version() int {
	return l.version
}

// Fingerprint returns a content-derived identity of the handle:
// "sha256:" followed by the hash of the uncompressed blob. Two handles with
// equal fingerprints are behaviorally interchangeable.
func (l *Language) Fingerprint() string {
	return l.fingerprint
}

func (l *Language) TermCount() int {
	return len(l.table.Terms)
}

func (l *Language) NonTermCount() int {
	return len(l.table.NonTerms)
}

// SymbolCount returns the size of the unified symbol id space.
// Terminals occupy [0, TermCount), nonterminals follow, and ErrorSymbol
// is one past the last nonterminal.
func (l *Language) SymbolCount() int {
	return l.table.SymbolCount()
}

// ErrorSymbol returns the virtual symbol id used by error nodes.
func (l *Language) ErrorSymbol() int {
	return l.table.SymbolCount()
}

// SymbolName resolves a unified symbol id, including ErrorSymbol.
func (l *Language) SymbolName(sym int) string {
	if sym == l.ErrorSymbol() {
		return ErrorSymbolName
	}
	return l.table.SymbolName(sym)
}

// TermID returns the terminal index for a terminal name.
func (l *Language) TermID(name string) (term int, found bool) {
	term, found = l.terms[name]
	return
}

// NonTermID returns the nonterminal index for a nonterminal name.
func (l *Language) NonTermID(name string) (nonTerm int, found bool) {
	nonTerm, found = l.nonTerms[name]
	return
}

// SymbolID returns the unified symbol id for a name, preferring nonterminals
// when a terminal shares the name.
func (l *Language) SymbolID(name string) (sym int, found bool) {
	nt, f := l.nonTerms[name]
	if f {
		return l.table.NonTermSymbol(nt), true
	}
	t, f := l.terms[name]
	if f {
		return t, true
	}
	return 0, false
}

// FieldID returns the field index for a field name.
func (l *Language) FieldID(name string) (field int, found bool) {
	field, found = l.fields[name]
	return
}

// FieldName returns the name of a field index or empty string.
func (l *Language) FieldName(field int) string {
	if field < 0 || field >= len(l.table.Fields) {
		return ""
	}
	return l.table.Fields[field]
}
