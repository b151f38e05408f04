package source

import (
	"testing"

	"github.com/vkarel/lrx/internal/test"
)

func TestLineCol(t *testing.T) {
	s := New("test", []byte("ab\ncde\n\nf"))

	samples := []struct {
		offset, line, col int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 1, 3},
		{3, 2, 1},
		{6, 2, 4},
		{7, 3, 1},
		{8, 4, 1},
		{9, 4, 2},
	}
	for _, sm := range samples {
		line, col := s.LineCol(sm.offset)
		test.ExpectInt(t, sm.line, line)
		test.ExpectInt(t, sm.col, col)
	}

	// out of range offsets are clamped
	line, col := s.LineCol(-5)
	test.ExpectInt(t, 1, line)
	test.ExpectInt(t, 1, col)
	line, col = s.LineCol(100)
	test.ExpectInt(t, 4, line)
	test.ExpectInt(t, 2, col)
}

// Columns count runes, not bytes.
func TestLineColRunes(t *testing.T) {
	s := New("test", []byte("ééx"))

	_, col := s.LineCol(4)
	test.ExpectInt(t, 3, col)
}

func TestEmptySource(t *testing.T) {
	s := New("test", nil)
	test.ExpectInt(t, 0, s.Len())

	line, col := s.LineCol(0)
	test.ExpectInt(t, 1, line)
	test.ExpectInt(t, 1, col)
}

func TestMakePos(t *testing.T) {
	s := New("test.src", []byte("a\nb"))
	p := MakePos(s, 2)

	test.ExpectStr(t, "test.src", p.SourceName())
	test.ExpectInt(t, 2, p.Offset())
	test.ExpectInt(t, 2, p.Line())
	test.ExpectInt(t, 1, p.Col())
	test.Assert(t, p.Source() == s, "expecting the originating source")
}
