package parser

import (
	"github.com/vkarel/lrx/grammar"
	"github.com/vkarel/lrx/lexer"
	"github.com/vkarel/lrx/source"
	"github.com/vkarel/lrx/tree"
)

// stackItem is one parse stack entry. Extra items (aside tokens, skipped
// input) are transparent: actions never consult them and reductions absorb
// them into the produced node. An extra carries the state of the item
// below it so the exposed state is always the top item's state.
type stackItem struct {
	state int
	node  int
	extra bool
}

type parseContext struct {
	parser   *Parser
	src      *source.Source
	builder  *tree.Builder
	stack    []stackItem
	pos      int
	steps    int
	opts     Options
	accepted bool
}

func newParseContext(p *Parser, src *source.Source, opts Options) *parseContext {
	return &parseContext{
		parser:  p,
		src:     src,
		builder: tree.NewBuilder(p.lang, src),
		stack:   []stackItem{{state: grammar.InitialState, node: -1}},
		opts:    opts,
	}
}

func (pc *parseContext) top() *stackItem {
	return &pc.stack[len(pc.stack)-1]
}

func (pc *parseContext) parse() (*tree.Tree, error) {
	g := pc.parser.lang.Table()
	var tok *lexer.Token

	for {
		e := pc.checkBudget()
		if e != nil {
			return nil, e
		}

		state := pc.top().state
		if tok == nil {
			tok = pc.parser.lex.Next(pc.src, pc.pos, pc.parser.valid[state])
		}
		term := tok.Term()

		if term == lexer.WrongTerm {
			pc.pushError(tok)
			tok = nil
			continue
		}
		if pc.parser.asides.Contains(term) {
			pc.pushExtra(pc.builder.Leaf(term, tok.Start(), tok.End()), tok.End())
			tok = nil
			continue
		}

		act := g.Action(state, term)
		switch act.Kind() {
		case grammar.Shift:
			node := pc.builder.Leaf(term, tok.Start(), tok.End())
			pc.stack = append(pc.stack, stackItem{state: act.Arg(), node: node})
			pc.pos = tok.End()
			tok = nil

		case grammar.Reduce:
			if !pc.reduce(g.Rules[act.Arg()]) {
				return pc.finalize(), nil
			}
			// The kept lookahead was fetched under the previous state;
			// refetch when the new state has no action for it so the
			// lexer can retokenize with the new valid set.
			if g.Action(pc.top().state, term).Kind() == grammar.NoAction {
				tok = nil
			}

		case grammar.Accept:
			pc.accepted = true
			return pc.finalize(), nil

		case grammar.NoAction:
			if term == grammar.EndTerm {
				return pc.finalize(), nil
			}
			// Skip the offending token and resume: recovery never
			// aborts, it marks the span and keeps building.
			pc.pushError(tok)
			tok = nil
		}
	}
}

// reduce pops the rule's right-hand side (with any interleaved extras) off
// the stack and pushes the produced node at the goto state. Extras above
// the topmost popped item are kept: they follow the node in document order.
// Returns false when the stack or the goto table cannot satisfy the rule,
// which only a degenerate table can cause; the caller then stops with a
// best-effort tree instead of looping.
func (pc *parseContext) reduce(rule grammar.Rule) bool {
	g := pc.parser.lang.Table()

	if rule.Len == 0 {
		below := pc.top().state
		next := g.Goto(below, rule.NonTerm)
		if next == grammar.NoGoto {
			return false
		}
		node := pc.builder.Node(rule, nil, nil, pc.pos)
		pc.stack = append(pc.stack, stackItem{state: next, node: node})
		return true
	}

	last := len(pc.stack) - 1
	for last > 0 && pc.stack[last].extra {
		last--
	}

	first := last
	cnt := 0
	for first > 0 {
		if !pc.stack[first].extra {
			cnt++
			if cnt == rule.Len {
				break
			}
		}
		first--
	}
	if cnt < rule.Len {
		return false
	}

	below := pc.stack[first-1].state
	next := g.Goto(below, rule.NonTerm)
	if next == grammar.NoGoto {
		return false
	}

	children := make([]int, 0, last-first+1)
	for _, item := range pc.stack[first : last+1] {
		children = append(children, item.node)
	}
	node := pc.builder.Node(rule, children, rule.Fields, 0)

	kept := pc.stack[last+1:]
	newStack := append(pc.stack[:first], stackItem{state: next, node: node})
	for _, item := range kept {
		item.state = next
		newStack = append(newStack, item)
	}
	pc.stack = newStack
	return true
}

func (pc *parseContext) pushExtra(node, end int) {
	pc.stack = append(pc.stack, stackItem{state: pc.top().state, node: node, extra: true})
	pc.pos = end
}

func (pc *parseContext) pushError(tok *lexer.Token) {
	pc.pushExtra(pc.builder.ErrorLeaf(tok.Start(), tok.End()), tok.End())
}

// finalize turns whatever remains on the stack into the result tree.
// On a failed parse the countable items (with interior extras) are grouped
// under one error node so the unparsable span is explicit.
func (pc *parseContext) finalize() *tree.Tree {
	// Unconsumed input after the engine stopped becomes one error leaf so
	// leaf ranges still partition the input.
	if pc.pos < pc.src.Len() {
		pc.pushExtra(pc.builder.ErrorLeaf(pc.pos, pc.src.Len()), pc.src.Len())
	}

	items := make([]int, 0, len(pc.stack)-1)
	counts := make([]bool, 0, len(pc.stack)-1)
	for _, item := range pc.stack[1:] {
		items = append(items, item.node)
		counts = append(counts, !item.extra)
	}

	if !pc.accepted {
		first, last := -1, -1
		for i, countable := range counts {
			if countable {
				if first < 0 {
					first = i
				}
				last = i
			}
		}
		if first >= 0 {
			run := items[first : last+1]
			errNode := pc.builder.ErrorNode(run, pc.nodeStart(run[0]), pc.nodeEnd(run[len(run)-1]))
			grouped := make([]int, 0, first+1+len(items)-last-1)
			grouped = append(grouped, items[:first]...)
			grouped = append(grouped, errNode)
			grouped = append(grouped, items[last+1:]...)
			items = grouped
		}
	}

	return pc.builder.Finish(items, pc.src.Len(), !pc.accepted)
}

func (pc *parseContext) nodeStart(node int) int {
	return pc.builder.NodeStart(node)
}

func (pc *parseContext) nodeEnd(node int) int {
	return pc.builder.NodeEnd(node)
}

func (pc *parseContext) checkBudget() error {
	pc.steps++
	if pc.opts.Cancelled != nil && pc.opts.Cancelled.Load() {
		return cancelledError(pc.src, pc.pos)
	}
	if pc.opts.MaxSteps > 0 && pc.steps > pc.opts.MaxSteps {
		return stepLimitError(pc.src, pc.pos, pc.opts.MaxSteps)
	}
	return nil
}
