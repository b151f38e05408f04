// Package source defines source text and byte-offset to line/column mapping.
package source

import (
	"bytes"
	"sort"
	"unicode/utf8"
)

// Source is an immutable named source text. The parsing engine works on byte
// offsets; Source maps them to 1-based line/column pairs for diagnostics.
type Source struct {
	name       string
	content    []byte
	lineStarts []int
}

// New creates a Source. content is not copied and must not be mutated.
func New(name string, content []byte) *Source {
	lineCnt := bytes.Count(content, []byte{'\n'}) + 1
	s := &Source{name: name, content: content, lineStarts: make([]int, 1, lineCnt)}
	for i, c := range content {
		if c == '\n' {
			s.lineStarts = append(s.lineStarts, i+1)
		}
	}
	return s
}

func (s *Source) Name() string {
	return s.name
}

func (s *Source) Content() []byte {
	return s.content
}

func (s *Source) Len() int {
	return len(s.content)
}

// LineCol maps a byte offset to a 1-based line and column. Column counts
// runes, not bytes. Offsets outside the content are clamped.
func (s *Source) LineCol(offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.content) {
		offset = len(s.content)
	}

	lineIndex := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	}) - 1
	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCount(s.content[lineStart:offset]) + 1
}

// Pos is a resolved position inside a source.
type Pos struct {
	src       *Source
	offset    int
	line, col int
}

// MakePos resolves a byte offset into a Pos.
func MakePos(s *Source, offset int) Pos {
	line, col := s.LineCol(offset)
	return Pos{s, offset, line, col}
}

func (p Pos) Source() *Source {
	return p.src
}

func (p Pos) Offset() int {
	return p.offset
}

func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.Name()
}

func (p Pos) Line() int {
	return p.line
}

func (p Pos) Col() int {
	return p.col
}
