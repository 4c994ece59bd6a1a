package mregexp

// NodeType identifies the variant of an arena node.
type NodeType uint8

const (
	NodeStart NodeType = iota
	NodeLiteral
	NodeAnchorBegin
	NodeAnchorEnd
	NodeAny
	NodeClass
	NodeRange
	NodeQuantifier
	NodeCapture
	NodeAlternation
)

var nodeTypeNames = [...]string{
	NodeStart:       "start",
	NodeLiteral:     "char",
	NodeAnchorBegin: "begin",
	NodeAnchorEnd:   "end",
	NodeAny:         "any",
	NodeClass:       "class",
	NodeRange:       "range",
	NodeQuantifier:  "repeat",
	NodeCapture:     "capture",
	NodeAlternation: "alt",
}

func (t NodeType) String() string {
	if int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return "?"
}

// noNode marks an absent link.
const noNode = -1

// Node is one compiled unit. Nodes live in a single arena and refer to each
// other by index. Prev and Next chain the siblings of one sequence; the other
// links own sub-sequences that are not reachable through that chain.
type Node struct {
	Type NodeType
	Prev int
	Next int

	Val rune // NodeLiteral; low bound for NodeRange
	Hi  rune // NodeRange

	Negated bool // NodeClass
	Min     int  // NodeQuantifier
	Max     int  // NodeQuantifier, -1 for unbounded

	// Child is the first Range of a Class, or the Start of the body of a
	// Quantifier or Capture, or the Start of the left branch of an Alternation.
	Child int
	Right int // NodeAlternation right branch Start
	Index int // NodeCapture, 0-based in order of the opening parenthesis
}

// RuneRange is an inclusive codepoint range.
type RuneRange struct {
	Lo, Hi rune
}

var (
	digitRanges = []RuneRange{{'0', '9'}}
	wordRanges  = []RuneRange{{'a', 'z'}, {'A', 'Z'}, {'0', '9'}, {'_', '_'}}
	spaceRanges = []RuneRange{{' ', ' '}, {'\t', '\t'}, {'\r', '\r'}, {'\n', '\n'}}
)
