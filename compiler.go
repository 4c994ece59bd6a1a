package mregexp

import "fmt"

// Compiler emits the arena for a token stream. The arena is allocated once
// with the size computed by the sizer and never grows.
type Compiler struct {
	nodes    []Node
	levels   []seqLevel
	captures int
}

// seqLevel is the sequence currently being built at one nesting level.
type seqLevel struct {
	head int // Start of the current alternative
	tail int // last node of the current alternative
}

func NewCompiler(size int) *Compiler {
	return &Compiler{nodes: make([]Node, 0, size)}
}

// Compile builds the arena for tokens. The tokens must already have passed
// the sizer, which reports every structural error.
func (c *Compiler) Compile(expr string, tokens []Token) ([]Node, error) {
	start := c.emit(Node{Type: NodeStart})
	c.levels = append(c.levels[:0], seqLevel{head: start, tail: start})

	if err := walk(expr, tokens, c); err != nil {
		return nil, err
	}
	if len(c.nodes) != cap(c.nodes) {
		panic(fmt.Sprintf("mregexp: arena sized for %d nodes, compiled %d for %q", cap(c.nodes), len(c.nodes), expr))
	}
	return c.nodes, nil
}

func (c *Compiler) emit(n Node) int {
	if len(c.nodes) == cap(c.nodes) {
		panic(fmt.Sprintf("mregexp: arena overflow at %d nodes", cap(c.nodes)))
	}
	n.Prev, n.Next, n.Child, n.Right = noNode, noNode, noNode, noNode
	c.nodes = append(c.nodes, n)
	return len(c.nodes) - 1
}

func (c *Compiler) top() *seqLevel {
	return &c.levels[len(c.levels)-1]
}

// link appends idx to the current alternative.
func (c *Compiler) link(idx int) {
	top := c.top()
	c.nodes[top.tail].Next = idx
	c.nodes[idx].Prev = top.tail
	top.tail = idx
}

func (c *Compiler) atom(tok Token) {
	var idx int
	switch tok.Type {
	case TokenChar:
		idx = c.emit(Node{Type: NodeLiteral, Val: tok.Val})
	case TokenDot:
		idx = c.emit(Node{Type: NodeAny})
	case TokenCaret:
		idx = c.emit(Node{Type: NodeAnchorBegin})
	case TokenDollar:
		idx = c.emit(Node{Type: NodeAnchorEnd})
	case TokenClass:
		idx = c.emitClass(tok)
	default:
		panic(fmt.Sprintf("mregexp: token %d is not an atom", tok.Type))
	}
	c.link(idx)
}

// emitClass emits a Class followed by one Range per member, chained through
// Child and the ranges' Next links.
func (c *Compiler) emitClass(tok Token) int {
	class := c.emit(Node{Type: NodeClass, Negated: tok.Negated})
	prev := noNode
	for _, rr := range tok.Ranges {
		r := c.emit(Node{Type: NodeRange, Val: rr.Lo, Hi: rr.Hi})
		if prev == noNode {
			c.nodes[class].Child = r
		} else {
			c.nodes[prev].Next = r
			c.nodes[r].Prev = prev
		}
		prev = r
	}
	return class
}

// quantify detaches the last node of the current alternative and makes it the
// body of a new Quantifier that takes its place.
func (c *Compiler) quantify(tok Token) {
	min, max := tok.bounds()
	top := c.top()
	atom := top.tail
	before := c.nodes[atom].Prev

	q := c.emit(Node{Type: NodeQuantifier, Min: min, Max: max})
	body := c.emit(Node{Type: NodeStart})

	c.nodes[body].Next = atom
	c.nodes[atom].Prev = body
	c.nodes[atom].Next = noNode
	c.nodes[q].Child = body

	c.nodes[before].Next = q
	c.nodes[q].Prev = before
	top.tail = q
}

func (c *Compiler) openGroup(Token) {
	capture := c.emit(Node{Type: NodeCapture, Index: c.captures})
	c.captures++
	body := c.emit(Node{Type: NodeStart})
	c.nodes[capture].Child = body
	c.link(capture)
	c.levels = append(c.levels, seqLevel{head: body, tail: body})
}

func (c *Compiler) closeGroup(Token) {
	c.levels = c.levels[:len(c.levels)-1]
}

// alternate moves everything after the current Start into the left branch of
// a new Alternation and continues in its right branch. Repeated alternation
// at one level nests to the right: a|b|c is alt(a, alt(b, c)).
func (c *Compiler) alternate(Token) {
	top := c.top()
	head := top.head

	alt := c.emit(Node{Type: NodeAlternation})
	left := c.emit(Node{Type: NodeStart})
	right := c.emit(Node{Type: NodeStart})

	if first := c.nodes[head].Next; first != noNode {
		c.nodes[left].Next = first
		c.nodes[first].Prev = left
	}
	c.nodes[head].Next = alt
	c.nodes[alt].Prev = head
	c.nodes[alt].Child = left
	c.nodes[alt].Right = right

	top.head, top.tail = right, right
}
