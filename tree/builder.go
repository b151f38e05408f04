package tree

import (
	"github.com/vkarel/lrx/grammar"
	"github.com/vkarel/lrx/language"
	"github.com/vkarel/lrx/source"
)

// Builder accumulates the node arena during a parse. Children are created
// before their parent, so child handles are stable by construction.
// A Builder is used by exactly one parse and must not be reused after Finish.
type Builder struct {
	lang     *language.Language
	src      *source.Source
	nodes    []nodeRec
	children []int32
}

func NewBuilder(lang *language.Language, src *source.Source) *Builder {
	return &Builder{lang: lang, src: src}
}

// Leaf adds a token node for the given terminal.
func (b *Builder) Leaf(term int, start, end int) int {
	flags := leafFlag
	if b.lang.Table().Terms[term].Flags&grammar.AsideTerm != 0 {
		flags |= extraFlag
	}
	return b.add(nodeRec{
		sym:    int32(term),
		alias:  -1,
		field:  -1,
		start:  int32(start),
		end:    int32(end),
		parent: -1,
		flags:  flags,
	})
}

// ErrorLeaf adds a token node covering skipped or unrecognized input.
// Error leaves are treated like extras: the next reduction absorbs them.
func (b *Builder) ErrorLeaf(start, end int) int {
	return b.add(nodeRec{
		sym:    int32(b.lang.ErrorSymbol()),
		alias:  -1,
		field:  -1,
		start:  int32(start),
		end:    int32(end),
		parent: -1,
		flags:  leafFlag | extraFlag | errorFlag,
	})
}

// Node adds an interior node produced by the given rule over children
// (node handles in document order, extras included). fields assigns a field
// index or grammar.NoField per child; nil when the rule names no positions.
// emptyAt positions a childless node produced by an empty production.
func (b *Builder) Node(rule grammar.Rule, children []int, fields []int, emptyAt int) int {
	g := b.lang.Table()
	rec := nodeRec{
		sym:    int32(g.NonTermSymbol(rule.NonTerm)),
		alias:  int32(rule.Alias),
		field:  -1,
		start:  int32(emptyAt),
		end:    int32(emptyAt),
		parent: -1,
	}
	if rule.Alias == grammar.NoAlias {
		rec.alias = -1
	}
	return b.addParent(rec, children, fields)
}

// ErrorNode adds a container node for input that never reduced to the root
// symbol. Its children keep whatever structure had been built.
func (b *Builder) ErrorNode(children []int, start, end int) int {
	i := b.addParent(nodeRec{
		sym:    int32(b.lang.ErrorSymbol()),
		alias:  -1,
		field:  -1,
		start:  int32(start),
		end:    int32(end),
		parent: -1,
		flags:  errorFlag,
	}, children, nil)
	b.nodes[i].start = int32(start)
	b.nodes[i].end = int32(end)
	return i
}

// Finish seals the arena and returns the tree. items are the remaining
// top-level node handles in document order; the root spans [0, length)
// regardless of their ranges. When a single item already is a rootSym node
// spanning the whole input it becomes the root directly; otherwise a root
// node is created around the items, splicing the children of an accepted
// rootSym item so that extras surrounding it join its child list.
// failed marks the root itself as an error node (input that never reduced
// to the root symbol).
func (b *Builder) Finish(items []int, length int, failed bool) *Tree {
	g := b.lang.Table()
	rootSym := int32(g.NonTermSymbol(grammar.RootNonTerm))

	if len(items) == 1 && !failed {
		r := &b.nodes[items[0]]
		if r.sym == rootSym && r.start == 0 && int(r.end) == length {
			return b.seal(int32(items[0]))
		}
	}

	spliced := make([]int, 0, len(items))
	for _, i := range items {
		r := &b.nodes[i]
		if r.sym == rootSym && r.flags&(leafFlag|errorFlag) == 0 {
			for c := r.childStart; c < r.childStart+r.childCount; c++ {
				spliced = append(spliced, int(b.children[c]))
			}
		} else {
			spliced = append(spliced, i)
		}
	}

	root := b.addParent(nodeRec{
		sym:    rootSym,
		alias:  -1,
		field:  -1,
		parent: -1,
	}, spliced, nil)
	b.nodes[root].start = 0
	b.nodes[root].end = int32(length)
	if failed {
		b.nodes[root].flags |= errorFlag
	}
	return b.seal(int32(root))
}

// NodeStart returns the start offset of a node under construction.
func (b *Builder) NodeStart(node int) int {
	return int(b.nodes[node].start)
}

// NodeEnd returns the end offset of a node under construction.
func (b *Builder) NodeEnd(node int) int {
	return int(b.nodes[node].end)
}

func (b *Builder) add(rec nodeRec) int {
	b.nodes = append(b.nodes, rec)
	return len(b.nodes) - 1
}

func (b *Builder) addParent(rec nodeRec, children []int, fields []int) int {
	rec.childStart = int32(len(b.children))
	rec.childCount = int32(len(children))
	i := int32(b.add(rec))

	fieldPos := 0
	for _, c := range children {
		b.children = append(b.children, int32(c))
		cr := &b.nodes[c]
		cr.parent = i
		if cr.flags&extraFlag == 0 {
			if fields != nil && fieldPos < len(fields) && fields[fieldPos] != grammar.NoField {
				cr.field = int32(fields[fieldPos])
			}
			fieldPos++
		}
		if cr.flags&(errorFlag|subtreeErrorFlag) != 0 {
			b.nodes[i].flags |= subtreeErrorFlag
		}
	}

	if len(children) > 0 {
		b.nodes[i].start = b.nodes[children[0]].start
		b.nodes[i].end = b.nodes[children[len(children)-1]].end
	}
	return int(i)
}

func (b *Builder) seal(root int32) *Tree {
	return &Tree{
		lang:     b.lang,
		src:      b.src,
		nodes:    b.nodes,
		children: b.children,
		root:     root,
	}
}
