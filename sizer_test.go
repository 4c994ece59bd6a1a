package mregexp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lockStepPatterns = []string{
	"",
	"a",
	"asdf",
	"äsdf",
	"^a.c$",
	"a*b+c?",
	"a{2,3}",
	"[a-zä0-9öA-Z]",
	"[^]",
	"[]",
	`\d\D\w\W\s\S`,
	"(a)(b(c))",
	"a|b|c",
	"(ab|cd)+e",
	"((a|b)*|c{2,})d",
	"a)",
	"(a*)*",
	"a**",
	"|",
	"(|a|)",
}

// TestArenaSizeMatchesCompiler checks that the sizer predicts exactly the
// nodes the compiler emits.
func TestArenaSizeMatchesCompiler(t *testing.T) {
	for _, p := range lockStepPatterns {
		tokens, err := NewParser(p).Tokens()
		require.NoError(t, err, p)
		size, captures, err := arenaSize(p, tokens)
		require.NoError(t, err, p)

		nodes, err := NewCompiler(size).Compile(p, tokens)
		require.NoError(t, err, p)
		assert.Len(t, nodes, size, p)

		groups := 0
		for _, n := range nodes {
			if n.Type == NodeCapture {
				groups++
			}
		}
		assert.Equal(t, groups, captures, p)
	}
}

func TestArenaSize(t *testing.T) {
	tests := []struct {
		pattern  string
		nodes    int
		captures int
	}{
		{"", 1, 0},
		{"abc", 4, 0},
		{"a*", 4, 0},
		{"[a-c]", 3, 0},
		{`\w`, 6, 0},
		{"(a)", 4, 1},
		{"a|b", 6, 0},
		{"(a)|(b)", 10, 2},
	}
	for _, tc := range tests {
		tokens, err := NewParser(tc.pattern).Tokens()
		require.NoError(t, err)
		nodes, captures, err := arenaSize(tc.pattern, tokens)
		require.NoError(t, err)
		assert.Equal(t, tc.nodes, nodes, "nodes for %q", tc.pattern)
		assert.Equal(t, tc.captures, captures, "captures for %q", tc.pattern)
	}
}

// TestArenaLinks checks that sibling links are consistent in both directions.
func TestArenaLinks(t *testing.T) {
	for _, p := range lockStepPatterns {
		re := MustCompile(p)
		nodes := re.prog.Nodes
		for i, n := range nodes {
			if n.Next != noNode {
				assert.Equal(t, i, nodes[n.Next].Prev, "%q: node %d next %d", p, i, n.Next)
			}
			switch n.Type {
			case NodeQuantifier, NodeCapture:
				assert.Equal(t, NodeStart, nodes[n.Child].Type, "%q: body of node %d", p, i)
			case NodeAlternation:
				assert.Equal(t, NodeStart, nodes[n.Child].Type, "%q: left of node %d", p, i)
				assert.Equal(t, NodeStart, nodes[n.Right].Type, "%q: right of node %d", p, i)
			case NodeClass:
				for r := n.Child; r != noNode; r = nodes[r].Next {
					assert.Equal(t, NodeRange, nodes[r].Type)
				}
			}
		}
	}
}

func TestAlternationNestsRight(t *testing.T) {
	re := MustCompile("a|b|c")
	nodes := re.prog.Nodes

	alt := nodes[nodes[0].Next]
	require.Equal(t, NodeAlternation, alt.Type)
	assert.Equal(t, 'a', nodes[nodes[alt.Child].Next].Val)

	inner := nodes[nodes[alt.Right].Next]
	require.Equal(t, NodeAlternation, inner.Type)
	assert.Equal(t, 'b', nodes[nodes[inner.Child].Next].Val)
	assert.Equal(t, 'c', nodes[nodes[inner.Right].Next].Val)
}

func TestDump(t *testing.T) {
	re := MustCompile("a[b-c]*")
	lines := strings.Split(strings.TrimRight(re.Dump(), "\n"), "\n")
	require.Len(t, lines, len(re.prog.Nodes))
	assert.Contains(t, lines[1], `char 'a'`)
	assert.Contains(t, re.Dump(), "repeat {0,inf}")
	assert.Contains(t, re.Dump(), `range 'b'-'c'`)
}
