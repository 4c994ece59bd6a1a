package mregexp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUtf8Width(t *testing.T) {
	tests := []struct {
		lead byte
		want int
	}{
		{'a', 1},
		{0x7f, 1},
		{0x80, 0},
		{0xbf, 0},
		{0xc3, 2},
		{0xe2, 3},
		{0xf0, 4},
		{0xf8, 0},
		{0xff, 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, utf8Width(tc.lead), "utf8Width(%#x)", tc.lead)
	}
}

func TestUtf8Valid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"asdf", true},
		{"äsdf", true},
		{"€𝄞", true},
		{"\xff", false},
		{"\x80", false},
		{"\xc3", false},         // truncated
		{"\xe2\x82", false},     // truncated
		{"\xc3\x28", false},     // bad continuation
		{"\xf0\x9d\x84", false}, // truncated
		// Structure is all that is checked.
		{"\xc0\x80", true},
		{"\xed\xa0\x80", true},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, utf8Valid(tc.in), "utf8Valid(%q)", tc.in)
		assert.Equal(t, tc.want, utf8Valid([]byte(tc.in)), "utf8Valid([]byte(%q))", tc.in)
	}
}

func TestUtf8Decode(t *testing.T) {
	s := "aä€𝄞"
	tests := []struct {
		pos   int
		r     rune
		width int
		next  int
	}{
		{0, 'a', 1, 1},
		{1, 'ä', 2, 3},
		{3, '€', 3, 6},
		{6, '𝄞', 4, 10},
		{10, 0, 0, -1},
	}
	for _, tc := range tests {
		r, w := utf8Decode(s, tc.pos)
		assert.Equal(t, tc.r, r, "rune at %d", tc.pos)
		assert.Equal(t, tc.width, w, "width at %d", tc.pos)
		assert.Equal(t, tc.r, utf8Peek(s, tc.pos))
		assert.Equal(t, tc.next, utf8Next(s, tc.pos), "next after %d", tc.pos)
	}
}
