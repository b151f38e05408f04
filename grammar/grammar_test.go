package grammar

import (
	"encoding/binary"
	"testing"

	"github.com/vkarel/lrx/internal/test"
)

func TestActionPacking(t *testing.T) {
	samples := []struct {
		action Action
		kind   ActionKind
		arg    int
	}{
		{ShiftAction(0), Shift, 0},
		{ShiftAction(12345), Shift, 12345},
		{ReduceAction(7), Reduce, 7},
		{AcceptAction(), Accept, 0},
		{Action(0), NoAction, 0},
	}

	for _, s := range samples {
		test.ExpectInt(t, int(s.kind), int(s.action.Kind()))
		test.ExpectInt(t, s.arg, s.action.Arg())
	}
}

// A minimal hand-built grammar: root = num.
func testGrammar() *Grammar {
	return &Grammar{
		Terms: []Term{
			{Name: "-end-"},
			{Name: "num", Re: "[0-9]+"},
			{Name: "space", Re: "\\s+", Flags: AsideTerm},
		},
		NonTerms: []NonTerm{{Name: "root"}},
		Rules:    []Rule{{NonTerm: 0, Len: 1, Alias: NoAlias}},
		// state 0: shift num; state 1: reduce; state 2: accept
		StateCount: 3,
		Actions: []Action{
			0, ShiftAction(1), 0,
			ReduceAction(0), 0, 0,
			AcceptAction(), 0, 0,
		},
		Gotos: []int{2, NoGoto, NoGoto},
	}
}

func TestSymbols(t *testing.T) {
	g := testGrammar()

	test.ExpectInt(t, 4, g.SymbolCount())
	test.ExpectInt(t, 3, g.NonTermSymbol(0))
	test.ExpectStr(t, "num", g.SymbolName(1))
	test.ExpectStr(t, "root", g.SymbolName(3))
	test.ExpectStr(t, "", g.SymbolName(4))
	test.ExpectStr(t, "", g.SymbolName(-1))
}

func TestTableLookup(t *testing.T) {
	g := testGrammar()

	test.ExpectInt(t, int(Shift), int(g.Action(0, 1).Kind()))
	test.ExpectInt(t, int(NoAction), int(g.Action(0, 0).Kind()))
	test.ExpectInt(t, 2, g.Goto(0, 0))
	test.ExpectInt(t, NoGoto, g.Goto(1, 0))
}

func TestEncodeDecode(t *testing.T) {
	g := testGrammar()
	blob, e := Encode(g)
	test.ExpectNoError(t, e)

	h, e := ParseHeader(blob)
	test.ExpectNoError(t, e)
	test.ExpectInt(t, Version, h.Version)
	test.ExpectInt(t, len(g.Terms), h.TermCount)
	test.ExpectInt(t, len(g.NonTerms), h.NonTermCount)
	test.ExpectInt(t, g.StateCount, h.StateCount)

	d, e := Decode(blob)
	test.ExpectNoError(t, e)
	test.ExpectInt(t, len(g.Terms), len(d.Terms))
	test.ExpectStr(t, g.Terms[1].Re, d.Terms[1].Re)
	test.ExpectInt(t, int(g.Terms[2].Flags), int(d.Terms[2].Flags))
	test.ExpectInt(t, g.Rules[0].Len, d.Rules[0].Len)
	test.ExpectInt(t, g.Rules[0].Alias, d.Rules[0].Alias)
	test.ExpectInt(t, len(g.Actions), len(d.Actions))
	test.ExpectInt(t, int(g.Actions[1]), int(d.Actions[1]))
	test.ExpectInt(t, g.Gotos[0], d.Gotos[0])
	test.ExpectInt(t, NoGoto, d.Gotos[1])
}

// Hostile header counts must be rejected before any count-sized allocation;
// Decode is fed blobs declaring billions of entries in a body of a few
// dozen bytes.
func TestDecodeHugeCounts(t *testing.T) {
	huge := func(offset int, count uint32) {
		blob, e := Encode(testGrammar())
		test.ExpectNoError(t, e)
		binary.LittleEndian.PutUint32(blob[offset:], count)
		_, e = Decode(blob)
		test.ExpectErrorCode(t, CorruptTableError, e)
	}

	// terminal, nonterminal, rule, state, and field counts
	for _, offset := range []int{8, 12, 16, 20, 24} {
		huge(offset, 0x7fffffff)
		huge(offset, 0xffffffff)
	}

	// header-only blob declaring a state x terminal product that would
	// wrap any fixed-width entry count
	blob := make([]byte, HeaderSize)
	copy(blob, Magic)
	binary.LittleEndian.PutUint32(blob[4:], Version)
	binary.LittleEndian.PutUint32(blob[8:], 0xffffffff)
	binary.LittleEndian.PutUint32(blob[20:], 0xffffffff)
	_, e := Decode(blob)
	test.ExpectErrorCode(t, CorruptTableError, e)
}

func TestValidateRejects(t *testing.T) {
	broken := func(mutate func(g *Grammar)) {
		g := testGrammar()
		mutate(g)
		test.ExpectErrorCode(t, CorruptTableError, Validate(g))
	}

	broken(func(g *Grammar) { g.Terms = nil })
	broken(func(g *Grammar) { g.NonTerms = nil })
	broken(func(g *Grammar) { g.Terms[0].Re = "." })
	broken(func(g *Grammar) { g.Terms[1].Re = "" })
	broken(func(g *Grammar) { g.Terms[1].Re = "(" })
	broken(func(g *Grammar) { g.Rules[0].NonTerm = 5 })
	broken(func(g *Grammar) { g.Rules[0].Fields = []int{0, 1} })
	broken(func(g *Grammar) { g.Actions[1] = ShiftAction(99) })
	broken(func(g *Grammar) { g.Actions[3] = ReduceAction(9) })
	broken(func(g *Grammar) { g.Gotos[0] = 99 })
	broken(func(g *Grammar) { g.Gotos = g.Gotos[:1] })
	broken(func(g *Grammar) { g.StateCount = 0 })
}
