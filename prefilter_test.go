package mregexp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrefilter(t *testing.T) {
	tests := []struct {
		pattern string
		want    string // "" for none
	}{
		{"abc", "literal abc"},
		{"äb+", "literal ä"},
		{"abc|abd", "aho-corasick abc|abd"},
		{"ab|cde", "aho-corasick ab|cd"},
		{"aa|a", "literal a"},
		{"(a|b)c", "aho-corasick a|b"},
		{"(foo)+bar", "literal foo"},
		{"a*b", ""},
		{"a?b", ""},
		{".b", ""},
		{"a|", ""},
		{"[ab]c", ""},
		{"^abc", ""},
	}

	for _, tc := range tests {
		re := MustCompile(tc.pattern)
		pf := re.prog.prefilter
		if tc.want == "" {
			assert.Nil(t, pf, "prefilter for %q", tc.pattern)
			continue
		}
		if assert.NotNil(t, pf, "prefilter for %q", tc.pattern) {
			assert.Equal(t, tc.want, pf.String(), "prefilter for %q", tc.pattern)
		}
	}
}

func TestPrefilterFind(t *testing.T) {
	lit := buildPrefilter(MustCompile("bc").prog.Nodes, 0)
	require.NotNil(t, lit)
	in := NewStringInput("abcabc")
	assert.Equal(t, 1, lit.find(in, 0))
	assert.Equal(t, 4, lit.find(in, 2))
	assert.Equal(t, -1, lit.find(in, 5))

	multi := buildPrefilter(MustCompile("xy|bc").prog.Nodes, 0)
	require.NotNil(t, multi)
	assert.Equal(t, 1, multi.find(in, 0))
	assert.Equal(t, 4, multi.find(NewBytesInput([]byte("....bc")), 0))
	assert.Equal(t, -1, multi.find(in, 5))
}

// TestPrefilterPreservesMatches compares every search with and without the
// prefilter.
func TestPrefilterPreservesMatches(t *testing.T) {
	patterns := []string{"abc", "ab|cd", "(x|yz)+w", "ä+ö", "aa|a", "(foo)+bar"}
	inputs := []string{"", "abc", "xxabcdab", "yzyzw xw", "äääö", "aaa", "foofoobar foobar", "cd ab"}

	off := DefaultConfig()
	off.Prefilter = false
	for _, p := range patterns {
		with := MustCompile(p)
		without, err := CompileWithConfig(p, off)
		require.NoError(t, err)
		require.Nil(t, without.prog.prefilter)

		for _, in := range inputs {
			want, err := without.FindAll(in)
			require.NoError(t, err)
			got, err := with.FindAll(in)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("FindAll(%q, %q) differs with prefilter (-without +with):\n%s", p, in, diff)
			}
		}
	}
}
