// Package tree defines the immutable concrete syntax tree produced by the
// parsing engine and its read-only query API.
//
// Nodes live in a flat arena owned by the Tree; a Node value is a cheap
// handle (tree pointer plus index) and stays valid for the tree lifetime.
// Trees are never modified: edits are expressed as a new parse call.
package tree

import (
	"sort"
	"strings"

	"github.com/vkarel/lrx/language"
	"github.com/vkarel/lrx/source"
)

type nodeFlags uint8

const (
	leafFlag nodeFlags = 1 << iota
	extraFlag
	errorFlag
	subtreeErrorFlag
)

type nodeRec struct {
	sym        int32
	alias      int32
	field      int32
	start, end int32
	parent     int32
	childStart int32
	childCount int32
	flags      nodeFlags
}

// Tree is an immutable syntax tree over one source text.
type Tree struct {
	lang     *language.Language
	src      *source.Source
	nodes    []nodeRec
	children []int32
	root     int32
}

// Language returns the handle the tree was parsed with.
func (t *Tree) Language() *language.Language {
	return t.lang
}

// Source returns the parsed source text.
func (t *Tree) Source() *source.Source {
	return t.src
}

// Root returns the root node. Its range is always the whole input.
func (t *Tree) Root() Node {
	return Node{t, t.root}
}

// HasError reports whether any input was skipped, unrecognized, or failed
// to reduce to the root symbol.
func (t *Tree) HasError() bool {
	return t.Root().HasError()
}

// NodeAt returns the deepest node whose range contains the byte offset,
// or the nil Node if offset is outside the input.
func (t *Tree) NodeAt(offset int) Node {
	return t.Descendant(offset, offset+1)
}

// Descendant returns the smallest node whose range contains [start, end),
// or the nil Node if the range leaves the input.
func (t *Tree) Descendant(start, end int) Node {
	n := t.Root()
	if start < 0 || end > n.End() || start > end {
		return Node{}
	}

	for {
		next := n.childContaining(start, end)
		if next.IsNil() {
			return n
		}
		n = next
	}
}

// Walk traverses the subtree rooted at n in document order, left to right.
// visit returning false prunes the children of the visited node.
func Walk(n Node, visit func(Node) bool) {
	if n.IsNil() || !visit(n) {
		return
	}

	cnt := n.ChildCount()
	for i := 0; i < cnt; i++ {
		Walk(n.Child(i), visit)
	}
}

// Sexp renders the tree as an S-expression for debugging and tests.
// Extra (aside) leaves are omitted; named child positions are prefixed
// with "field:".
func (t *Tree) Sexp() string {
	var sb strings.Builder
	t.Root().sexp(&sb)
	return sb.String()
}

// Node is a handle to one tree node. The zero value is the nil Node.
type Node struct {
	t *Tree
	i int32
}

// IsNil reports whether the handle refers to no node.
func (n Node) IsNil() bool {
	return n.t == nil
}

func (n Node) rec() *nodeRec {
	return &n.t.nodes[n.i]
}

// Symbol returns the unified symbol id the node presents: its alias when
// the producing rule has one, the actual symbol otherwise.
func (n Node) Symbol() int {
	r := n.rec()
	if r.alias >= 0 {
		return int(r.alias)
	}
	return int(r.sym)
}

// TypeName returns the name of the node's symbol.
func (n Node) TypeName() string {
	return n.t.lang.SymbolName(n.Symbol())
}

// Start returns the byte offset of the first byte covered by the node.
func (n Node) Start() int {
	return int(n.rec().start)
}

// End returns the byte offset just past the node's range.
func (n Node) End() int {
	return int(n.rec().end)
}

// StartPos resolves the node start into a line/column position.
func (n Node) StartPos() source.Pos {
	return source.MakePos(n.t.src, n.Start())
}

// EndPos resolves the node end into a line/column position.
func (n Node) EndPos() source.Pos {
	return source.MakePos(n.t.src, n.End())
}

// Text returns the source bytes the node covers.
func (n Node) Text() string {
	return string(n.t.src.Content()[n.Start():n.End()])
}

// IsLeaf reports whether the node is a token node.
func (n Node) IsLeaf() bool {
	return n.rec().flags&leafFlag != 0
}

// IsExtra reports whether the node is an insignificant token
// (whitespace, comment).
func (n Node) IsExtra() bool {
	return n.rec().flags&extraFlag != 0
}

// IsError reports whether the node itself marks unparsable input.
func (n Node) IsError() bool {
	return n.rec().flags&errorFlag != 0
}

// HasError reports whether the node or any of its descendants is an
// error node.
func (n Node) HasError() bool {
	return n.rec().flags&(errorFlag|subtreeErrorFlag) != 0
}

// Parent returns the parent node, or the nil Node for the root.
func (n Node) Parent() Node {
	p := n.rec().parent
	if p < 0 {
		return Node{}
	}
	return Node{n.t, p}
}

func (n Node) ChildCount() int {
	return int(n.rec().childCount)
}

// Child returns the i-th child, or the nil Node when i is out of range.
func (n Node) Child(i int) Node {
	r := n.rec()
	if i < 0 || i >= int(r.childCount) {
		return Node{}
	}
	return Node{n.t, n.t.children[int(r.childStart)+i]}
}

// FieldName returns the name of the child position the node occupies in
// its parent, or empty string.
func (n Node) FieldName() string {
	f := n.rec().field
	if f < 0 {
		return ""
	}
	return n.t.lang.FieldName(int(f))
}

// ChildByField returns the first child occupying the named position,
// or the nil Node.
func (n Node) ChildByField(name string) Node {
	field, found := n.t.lang.FieldID(name)
	if !found {
		return Node{}
	}

	cnt := n.ChildCount()
	for i := 0; i < cnt; i++ {
		c := n.Child(i)
		if int(c.rec().field) == field {
			return c
		}
	}
	return Node{}
}

func (n Node) siblingIndex() int {
	p := n.Parent()
	if p.IsNil() {
		return -1
	}

	r := p.rec()
	for i := 0; i < int(r.childCount); i++ {
		if n.t.children[int(r.childStart)+i] == n.i {
			return i
		}
	}
	return -1
}

// NextSibling returns the following sibling, or the nil Node.
func (n Node) NextSibling() Node {
	i := n.siblingIndex()
	if i < 0 {
		return Node{}
	}
	return n.Parent().Child(i + 1)
}

// PrevSibling returns the preceding sibling, or the nil Node.
func (n Node) PrevSibling() Node {
	i := n.siblingIndex()
	if i <= 0 {
		return Node{}
	}
	return n.Parent().Child(i - 1)
}

// childContaining returns the child whose range contains [start, end),
// or the nil Node. Children are ordered by start offset and do not overlap.
func (n Node) childContaining(start, end int) Node {
	cnt := n.ChildCount()
	i := sort.Search(cnt, func(i int) bool {
		return n.Child(i).End() > start
	})
	if i >= cnt {
		return Node{}
	}

	c := n.Child(i)
	if start >= c.Start() && end <= c.End() && !(start == end && start == c.End()) {
		return c
	}
	return Node{}
}

func (n Node) sexp(sb *strings.Builder) {
	if n.IsExtra() {
		return
	}
	if n.FieldName() != "" {
		sb.WriteString(n.FieldName())
		sb.WriteString(": ")
	}

	if n.IsLeaf() {
		sb.WriteString(n.TypeName())
		return
	}

	sb.WriteByte('(')
	sb.WriteString(n.TypeName())
	cnt := n.ChildCount()
	for i := 0; i < cnt; i++ {
		c := n.Child(i)
		if c.IsExtra() {
			continue
		}
		sb.WriteByte(' ')
		c.sexp(sb)
	}
	sb.WriteByte(')')
}
