package mregexp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unset = Span{-1, -1}

// TestCaptureSpans checks group spans, numbered by opening parenthesis.
func TestCaptureSpans(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    []Span
	}{
		{"(a)(b)", "ab", []Span{{0, 1}, {1, 2}}},
		{"(a(b))", "ab", []Span{{0, 2}, {1, 2}}},
		{"((a)(b))c", "xabc", []Span{{1, 3}, {1, 2}, {2, 3}}},
		{"(a)|(b)", "b", []Span{unset, {0, 1}}},
		{"(a)*", "aaa", []Span{{2, 3}}},
		{"(a)*", "b", []Span{unset}},
		{"(ä+)(ö)", "xääö", []Span{{1, 5}, {5, 7}}},
		{"()", "a", []Span{{0, 0}}},
		{"(ab|cd)+", "abcd", []Span{{2, 4}}},
		// Spans set on a path that failed are rolled back.
		{"(a)b|ac", "ac", []Span{unset}},
		{"((a)b|(a)c)d", "acd", []Span{{0, 2}, unset, {0, 1}}},
	}

	for _, tc := range tests {
		re := MustCompile(tc.pattern)
		m, err := re.FindFirst(tc.input)
		require.NoError(t, err)
		require.NotNil(t, m, "FindFirst(%q, %q)", tc.pattern, tc.input)
		if diff := cmp.Diff(tc.want, m.Captures); diff != "" {
			t.Errorf("FindFirst(%q, %q) captures mismatch (-want +got):\n%s", tc.pattern, tc.input, diff)
		}
	}
}

func TestCaptureCount(t *testing.T) {
	tests := []struct {
		pattern string
		want    int
	}{
		{"abc", 0},
		{"(a)", 1},
		{"((a)(b))", 3},
		{"(a)|(b)|(c)", 3},
		{`\(a\)`, 0},
		{"[(]", 0},
	}

	for _, tc := range tests {
		re := MustCompile(tc.pattern)
		assert.Equal(t, tc.want, re.CaptureCount(), "CaptureCount(%q)", tc.pattern)
		assert.Equal(t, tc.want, re.NumSubexp(), "NumSubexp(%q)", tc.pattern)
	}
}

func TestMatchCapture(t *testing.T) {
	re := MustCompile("(a)|(b)")
	m, err := re.FindFirst("b")
	require.NoError(t, err)
	require.NotNil(t, m)

	_, ok := m.Capture(0)
	assert.False(t, ok, "group 0 did not participate")

	s, ok := m.Capture(1)
	assert.True(t, ok)
	assert.Equal(t, Span{0, 1}, s)
	assert.Equal(t, 1, s.Len())

	_, ok = m.Capture(2)
	assert.False(t, ok, "out of range")
	_, ok = m.Capture(-1)
	assert.False(t, ok, "negative index")

	var none *Match
	_, ok = none.Capture(0)
	assert.False(t, ok)
}

func TestFindStringSubmatch(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    []string
		index   []int
	}{
		{`(\w+)@(\w+)`, "mail: user@example", []string{"user@example", "user", "example"},
			[]int{6, 18, 6, 10, 11, 18}},
		{"(a)|(b)", "b", []string{"b", "", "b"}, []int{0, 1, -1, -1, 0, 1}},
		{"(x)", "abc", nil, nil},
	}

	for _, tc := range tests {
		re := MustCompile(tc.pattern)
		assert.Equal(t, tc.want, re.FindStringSubmatch(tc.input), "FindStringSubmatch(%q, %q)", tc.pattern, tc.input)
		assert.Equal(t, tc.index, re.FindStringSubmatchIndex(tc.input), "FindStringSubmatchIndex(%q, %q)", tc.pattern, tc.input)
	}
}

// TestCapturesAreIndependent checks that one match does not see the groups
// of another, across repeated calls on one compiled expression.
func TestCapturesAreIndependent(t *testing.T) {
	re := MustCompile("(a)|(b)")

	first, err := re.FindFirst("a")
	require.NoError(t, err)
	second, err := re.FindFirst("b")
	require.NoError(t, err)

	assert.Equal(t, []Span{{0, 1}, unset}, first.Captures)
	assert.Equal(t, []Span{unset, {0, 1}}, second.Captures)
}
