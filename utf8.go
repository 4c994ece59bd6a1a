package mregexp

// text is the set of byte containers the codec and the matcher operate on.
type text interface {
	~string | ~[]byte
}

// utf8Width returns the encoded length implied by the lead byte c,
// or 0 if c cannot start a sequence.
func utf8Width(c byte) int {
	switch {
	case c&0x80 == 0:
		return 1
	case c&0xE0 == 0xC0:
		return 2
	case c&0xF0 == 0xE0:
		return 3
	case c&0xF8 == 0xF0:
		return 4
	}
	return 0
}

// utf8Valid reports whether s is a well-formed sequence of lead and
// continuation bytes. Overlong forms and surrogates are not rejected.
func utf8Valid[T text](s T) bool {
	for i := 0; i < len(s); {
		w := utf8Width(s[i])
		if w == 0 || i+w > len(s) {
			return false
		}
		for j := 1; j < w; j++ {
			if s[i+j]&0xC0 != 0x80 {
				return false
			}
		}
		i += w
	}
	return true
}

// utf8Peek decodes the codepoint at pos. It returns 0 at the end of s.
func utf8Peek[T text](s T, pos int) rune {
	r, _ := utf8Decode(s, pos)
	return r
}

// utf8Next returns the position after the codepoint at pos, or -1 at the end of s.
// The matcher steps with utf8Decode, which also yields the codepoint; utf8Next
// completes the codec for callers that only need the boundary.
func utf8Next[T text](s T, pos int) int {
	if pos >= len(s) {
		return -1
	}
	w := utf8Width(s[pos])
	if w == 0 {
		w = 1
	}
	return pos + w
}

// utf8Decode returns the codepoint at pos and its width. Width is 0 at the end of s.
// s must have passed utf8Valid.
func utf8Decode[T text](s T, pos int) (rune, int) {
	if pos >= len(s) {
		return 0, 0
	}
	c := s[pos]
	w := utf8Width(c)
	var r rune
	switch w {
	case 1:
		return rune(c), 1
	case 2:
		r = rune(c & 0x1F)
	case 3:
		r = rune(c & 0x0F)
	case 4:
		r = rune(c & 0x07)
	default:
		return 0, 0
	}
	if pos+w > len(s) {
		return 0, 0
	}
	for i := 1; i < w; i++ {
		r = r<<6 | rune(s[pos+i]&0x3F)
	}
	return r, w
}
