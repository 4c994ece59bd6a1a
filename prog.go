package mregexp

import (
	"fmt"
	"strings"
)

// Prog is a compiled expression: the node arena and what the search loop
// needs to know about it. A Prog is never modified after compilation.
type Prog struct {
	Nodes    []Node
	Start    int // Entry point, always the implicit Start node
	NumCap   int // Number of capture groups
	Anchored bool

	prefilter prefilter
}

func (n Node) String() string {
	switch n.Type {
	case NodeLiteral:
		return fmt.Sprintf("char %q", n.Val)
	case NodeRange:
		if n.Val == n.Hi {
			return fmt.Sprintf("range %q", n.Val)
		}
		return fmt.Sprintf("range %q-%q", n.Val, n.Hi)
	case NodeClass:
		if n.Negated {
			return fmt.Sprintf("class ^ %d", n.Child)
		}
		return fmt.Sprintf("class %d", n.Child)
	case NodeQuantifier:
		max := "inf"
		if n.Max >= 0 {
			max = fmt.Sprint(n.Max)
		}
		return fmt.Sprintf("repeat {%d,%s} %d", n.Min, max, n.Child)
	case NodeCapture:
		return fmt.Sprintf("capture #%d %d", n.Index, n.Child)
	case NodeAlternation:
		return fmt.Sprintf("alt %d, %d", n.Child, n.Right)
	}
	return n.Type.String()
}

// Dump lists the arena one node per line with its sibling links.
func (p *Prog) Dump() string {
	var b strings.Builder
	for i, n := range p.Nodes {
		fmt.Fprintf(&b, "%3d  %-24s prev=%d next=%d\n", i, n.String(), n.Prev, n.Next)
	}
	return b.String()
}
