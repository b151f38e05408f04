package grammar

import (
	"encoding/binary"
)

// Decode parses and validates an uncompressed table blob.
// The returned Grammar shares no memory with blob except symbol name strings.
func Decode(blob []byte) (*Grammar, error) {
	h, e := ParseHeader(blob)
	if e != nil {
		return nil, e
	}

	// Header counts are bounded by what the body could possibly encode
	// before anything is sized from them. A terminal takes at least
	// 12 bytes, a rule 12, a name 4, a table entry 4, and every state
	// has at least the end terminal action column.
	body := len(blob) - HeaderSize
	switch {
	case h.TermCount > body/12:
		return nil, corruptTableError("%d terminals cannot fit in a %d byte body", h.TermCount, body)
	case h.NonTermCount > body/4:
		return nil, corruptTableError("%d nonterminals cannot fit in a %d byte body", h.NonTermCount, body)
	case h.FieldCount > body/4:
		return nil, corruptTableError("%d field names cannot fit in a %d byte body", h.FieldCount, body)
	case h.RuleCount > body/12:
		return nil, corruptTableError("%d rules cannot fit in a %d byte body", h.RuleCount, body)
	case h.StateCount > body/4:
		return nil, corruptTableError("%d states cannot fit in a %d byte body", h.StateCount, body)
	}

	r := &tableReader{data: blob, pos: HeaderSize}
	g := &Grammar{
		Terms:      make([]Term, h.TermCount),
		NonTerms:   make([]NonTerm, h.NonTermCount),
		Fields:     make([]string, h.FieldCount),
		Rules:      make([]Rule, h.RuleCount),
		StateCount: h.StateCount,
	}

	for i := range g.Terms {
		g.Terms[i].Flags = TermFlags(r.u32())
		g.Terms[i].Name = r.str()
		g.Terms[i].Re = r.str()
	}
	for i := range g.NonTerms {
		g.NonTerms[i].Name = r.str()
	}
	for i := range g.Fields {
		g.Fields[i] = r.str()
	}

	for i := range g.Rules {
		rule := Rule{
			NonTerm: int(r.u32()),
			Len:     int(r.u32()),
			Alias:   int(r.u32()) - 1,
		}
		if rule.Len < 0 || rule.Len > r.left()/4 {
			return nil, corruptTableError("rule %d right-hand side length %d exceeds blob size", i, rule.Len)
		}
		named := false
		fields := make([]int, rule.Len)
		for j := range fields {
			fields[j] = int(r.u32()) - 1
			named = named || fields[j] != NoField
		}
		if named {
			rule.Fields = fields
		}
		g.Rules[i] = rule
	}

	// The per-entry bound is checked by division so the products cannot
	// wrap before they are validated.
	if h.TermCount > 0 && h.StateCount > r.left()/4/h.TermCount {
		return nil, corruptTableError("action table of %d x %d entries exceeds blob size", h.StateCount, h.TermCount)
	}
	g.Actions = make([]Action, h.StateCount*h.TermCount)
	for i := range g.Actions {
		g.Actions[i] = Action(r.u32())
	}

	if h.NonTermCount > 0 && h.StateCount > r.left()/4/h.NonTermCount {
		return nil, corruptTableError("goto table of %d x %d entries exceeds blob size", h.StateCount, h.NonTermCount)
	}
	g.Gotos = make([]int, h.StateCount*h.NonTermCount)
	for i := range g.Gotos {
		g.Gotos[i] = int(r.u32()) - 1
	}

	if r.failed {
		return nil, corruptTableError("table body ends at byte %d of %d", r.pos, len(blob))
	}
	if r.pos != len(blob) {
		return nil, corruptTableError("%d trailing bytes after table body", len(blob)-r.pos)
	}

	e = Validate(g)
	if e != nil {
		return nil, e
	}
	return g, nil
}

// tableReader reads little-endian fields remembering whether any read ran
// past the end of the blob.
type tableReader struct {
	data   []byte
	pos    int
	failed bool
}

func (r *tableReader) left() int {
	return len(r.data) - r.pos
}

func (r *tableReader) u32() uint32 {
	if r.left() < 4 {
		r.failed = true
		r.pos = len(r.data)
		return 0
	}

	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v
}

func (r *tableReader) str() string {
	size := int(r.u32())
	if size < 0 || size > r.left() {
		r.failed = true
		r.pos = len(r.data)
		return ""
	}

	v := string(r.data[r.pos : r.pos+size])
	r.pos += size
	return v
}
