package tree_test

import (
	"testing"

	"github.com/vkarel/lrx/internal/test"
	"github.com/vkarel/lrx/language"
	"github.com/vkarel/lrx/parser"
	"github.com/vkarel/lrx/tablegen"
	"github.com/vkarel/lrx/tree"
)

const confDef = `
$space = /[ \t\r\n]+/;
!aside $space;
$name = /[a-z]+/;
$num = /[0-9]+/;
conf = {pair};
pair = key:$name, '=', value:$num, ';';
`

const confText = "a = 1; bb = 22;"

func parseConf(t *testing.T, text string) *tree.Tree {
	g, e := tablegen.ParseString("conf", confDef)
	test.ExpectNoError(t, e)
	lang, e := language.New(g)
	test.ExpectNoError(t, e)

	res, e := parser.New(lang).Parse([]byte(text), nil)
	test.ExpectNoError(t, e)
	return res
}

func pairs(root tree.Node) []tree.Node {
	var res []tree.Node
	tree.Walk(root, func(n tree.Node) bool {
		if n.TypeName() != "pair" {
			return true
		}

		res = append(res, n)
		return false
	})
	return res
}

func TestNavigation(t *testing.T) {
	res := parseConf(t, confText)
	root := res.Root()

	test.ExpectStr(t, "conf", root.TypeName())
	test.ExpectInt(t, 0, root.Start())
	test.ExpectInt(t, len(confText), root.End())
	test.Assert(t, root.Parent().IsNil(), "expecting no parent for the root")
	test.Assert(t, !res.HasError(), "unexpected error nodes")

	ps := pairs(root)
	test.ExpectInt(t, 2, len(ps))
	test.ExpectStr(t, "a = 1;", ps[0].Text())
	test.ExpectStr(t, "bb = 22;", ps[1].Text())

	key := ps[0].ChildByField("key")
	test.ExpectStr(t, "a", key.Text())
	test.ExpectStr(t, "key", key.FieldName())
	test.ExpectStr(t, "name", key.TypeName())
	test.Assert(t, key.IsLeaf(), "expecting a leaf")

	value := ps[1].ChildByField("value")
	test.ExpectStr(t, "22", value.Text())
	test.Assert(t, ps[0].ChildByField("missing").IsNil(), "expecting no child for an unknown field")

	test.Assert(t, key.PrevSibling().IsNil(), "expecting no sibling before the first child")
	next := key.NextSibling()
	for next.IsExtra() {
		next = next.NextSibling()
	}
	test.ExpectStr(t, "=", next.TypeName())
	test.Assert(t, ps[0].Child(ps[0].ChildCount()).IsNil(), "expecting no child past the last")
}

func TestNodeAt(t *testing.T) {
	res := parseConf(t, confText)

	n := res.NodeAt(0)
	test.ExpectStr(t, "name", n.TypeName())
	test.ExpectStr(t, "a", n.Text())

	n = res.NodeAt(1)
	test.Assert(t, n.IsExtra(), "expecting a whitespace leaf")

	n = res.NodeAt(8)
	test.ExpectStr(t, "bb", n.Text())

	test.Assert(t, res.NodeAt(-1).IsNil(), "expecting no node before the input")
	test.Assert(t, res.NodeAt(len(confText)).IsNil(), "expecting no node past the input")
}

func TestDescendant(t *testing.T) {
	res := parseConf(t, confText)

	n := res.Descendant(0, 6)
	test.ExpectStr(t, "pair", n.TypeName())
	test.ExpectStr(t, "a = 1;", n.Text())

	n = res.Descendant(2, 3)
	test.ExpectStr(t, "=", n.TypeName())

	n = res.Descendant(0, len(confText))
	test.ExpectStr(t, "@2", n.TypeName())

	// the smallest node covering both pairs is the pair list
	n = res.Descendant(5, 8)
	test.ExpectStr(t, "@2", n.TypeName())

	test.Assert(t, res.Descendant(0, len(confText)+1).IsNil(), "expecting no node past the input")
}

func TestWalkOrder(t *testing.T) {
	res := parseConf(t, confText)

	text := ""
	tree.Walk(res.Root(), func(n tree.Node) bool {
		if n.IsLeaf() {
			text += n.Text()
		}
		return true
	})
	test.ExpectStr(t, confText, text)
}

func TestSexp(t *testing.T) {
	res := parseConf(t, "a = 1;")
	test.ExpectStr(t, "(conf (@2 (@2) (pair key: name = value: num ;)))", res.Sexp())
}

func TestErrorFlags(t *testing.T) {
	res := parseConf(t, "a = ;")
	test.Assert(t, res.HasError(), "expecting error nodes")
	test.Assert(t, res.Root().HasError(), "expecting the error to reach the root")

	found := false
	tree.Walk(res.Root(), func(n tree.Node) bool {
		found = found || n.IsError()
		return true
	})
	test.Assert(t, found, "expecting an error node in the tree")

	clean := parseConf(t, confText)
	test.Assert(t, !clean.Root().HasError(), "unexpected error nodes")
}

func TestTreeAccessors(t *testing.T) {
	res := parseConf(t, confText)
	test.Assert(t, res.Language() != nil, "expecting a language handle")
	test.ExpectInt(t, len(confText), res.Source().Len())

	var nilNode tree.Node
	test.Assert(t, nilNode.IsNil(), "expecting the zero Node to be nil")
}
