package mregexp

import (
	"strings"

	"github.com/coregx/ahocorasick"
)

// prefilter finds candidate start positions. Every match starts at a
// position the prefilter reports, so skipping the others never loses one.
type prefilter interface {
	// find returns the first candidate at or after pos, or -1.
	find(in Input, pos int) int
	String() string
}

// literalPrefilter looks for the single literal every match begins with.
type literalPrefilter struct {
	lit string
}

func (p *literalPrefilter) find(in Input, pos int) int {
	return in.Index(p.lit, pos)
}

func (p *literalPrefilter) String() string {
	return "literal " + p.lit
}

// ahoCorasickPrefilter looks for any of several literals at once.
type ahoCorasickPrefilter struct {
	auto *ahocorasick.Automaton
	lits []string
}

func (p *ahoCorasickPrefilter) find(in Input, pos int) int {
	if pos > in.Len() {
		return -1
	}
	m := p.auto.Find(in.Bytes(), pos)
	if m == nil {
		return -1
	}
	return m.Start
}

func (p *ahoCorasickPrefilter) String() string {
	return "aho-corasick " + strings.Join(p.lits, "|")
}

// buildPrefilter derives a prefilter from the literals that must open any
// match of nodes. It returns nil when no such set exists.
func buildPrefilter(nodes []Node, start int) prefilter {
	lits, ok := leadingLiterals(nodes, start)
	if !ok {
		return nil
	}
	// With equal lengths the first literal to end is also the first to
	// start, whatever match semantics the automaton uses.
	lits = dedupe(truncate(lits))
	if len(lits) == 1 {
		return &literalPrefilter{lit: lits[0]}
	}

	builder := ahocorasick.NewBuilder()
	for _, lit := range lits {
		builder.AddPattern([]byte(lit))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasickPrefilter{auto: auto, lits: lits}
}

// leadingLiterals returns literals one of which begins every match of the
// sequence starting at start. A leading Capture, a Quantifier that must run
// at least once, and each branch of an Alternation are looked into.
func leadingLiterals(nodes []Node, start int) ([]string, bool) {
	idx := nodes[start].Next

	var b strings.Builder
	for idx != noNode && nodes[idx].Type == NodeLiteral {
		b.WriteRune(nodes[idx].Val)
		idx = nodes[idx].Next
	}
	if b.Len() > 0 {
		return []string{b.String()}, true
	}
	if idx == noNode {
		return nil, false
	}

	n := nodes[idx]
	switch n.Type {
	case NodeCapture:
		return leadingLiterals(nodes, n.Child)
	case NodeQuantifier:
		if n.Min >= 1 {
			return leadingLiterals(nodes, n.Child)
		}
	case NodeAlternation:
		left, ok := leadingLiterals(nodes, n.Child)
		if !ok {
			return nil, false
		}
		right, ok := leadingLiterals(nodes, n.Right)
		if !ok {
			return nil, false
		}
		return append(left, right...), true
	}
	return nil, false
}

// anchoredAtBegin reports whether the sequence opens with ^.
func anchoredAtBegin(nodes []Node, start int) bool {
	next := nodes[start].Next
	return next != noNode && nodes[next].Type == NodeAnchorBegin
}

func truncate(lits []string) []string {
	shortest := len(lits[0])
	for _, l := range lits[1:] {
		shortest = min(shortest, len(l))
	}
	for i, l := range lits {
		lits[i] = l[:shortest]
	}
	return lits
}

func dedupe(lits []string) []string {
	seen := make(map[string]struct{}, len(lits))
	out := lits[:0]
	for _, l := range lits {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
