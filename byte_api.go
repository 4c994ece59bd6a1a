package mregexp

// FindFirstBytes is FindFirst for a byte slice. A nil slice is InvalidParams.
func (re *Regexp) FindFirstBytes(b []byte) (*Match, error) {
	if b == nil {
		return nil, InvalidParams
	}
	return re.findFirst(NewBytesInput(b))
}

// FindAllBytes is FindAll for a byte slice. A nil slice is InvalidParams.
func (re *Regexp) FindAllBytes(b []byte) ([]*Match, error) {
	if b == nil {
		return nil, InvalidParams
	}
	return re.findAll(NewBytesInput(b), -1)
}

// Find returns a slice holding the text of the leftmost match in b of the regular expression.
// A return value of nil indicates no match.
func (re *Regexp) Find(b []byte) []byte {
	match := re.FindIndex(b)
	if match == nil {
		return nil
	}
	return b[match[0]:match[1]:match[1]]
}

// FindIndex returns a two-element slice of integers defining the location of
// the leftmost match in b of the regular expression. A return value of nil
// indicates no match.
func (re *Regexp) FindIndex(b []byte) []int {
	m, err := re.findFirst(NewBytesInput(b))
	if err != nil || m == nil {
		return nil
	}
	return []int{m.Begin, m.End}
}

// FindSubmatch returns a slice of slices holding the text of the leftmost match
// of the regular expression in b and the matches, if any, of its subexpressions.
// A return value of nil indicates no match.
func (re *Regexp) FindSubmatch(b []byte) [][]byte {
	m, err := re.findFirst(NewBytesInput(b))
	if err != nil || m == nil {
		return nil
	}
	return submatchBytes(b, m)
}

// FindAllIndex returns a slice of all successive matches of the expression,
// as two-element slices of integers. n < 0 means return all matches.
func (re *Regexp) FindAllIndex(b []byte, n int) [][]int {
	matches, err := re.findAll(NewBytesInput(b), n)
	if err != nil || len(matches) == 0 {
		return nil
	}
	result := make([][]int, len(matches))
	for i, m := range matches {
		result[i] = []int{m.Begin, m.End}
	}
	return result
}

// FindAllSubmatch returns a slice of all successive matches of the expression,
// as defined by FindSubmatch. n < 0 means return all matches.
func (re *Regexp) FindAllSubmatch(b []byte, n int) [][][]byte {
	matches, err := re.findAll(NewBytesInput(b), n)
	if err != nil || len(matches) == 0 {
		return nil
	}

	result := make([][][]byte, len(matches))
	for i, m := range matches {
		result[i] = submatchBytes(b, m)
	}
	return result
}

func submatchBytes(b []byte, m *Match) [][]byte {
	result := make([][]byte, len(m.Captures)+1)
	result[0] = b[m.Begin:m.End:m.End]
	for i := range m.Captures {
		if span, ok := m.Capture(i); ok {
			result[i+1] = b[span.Begin:span.End:span.End]
		}
	}
	return result
}

// Match reports whether the byte slice b contains any match of the regular expression re.
func (re *Regexp) Match(b []byte) bool {
	m, err := re.findFirst(NewBytesInput(b))
	return err == nil && m != nil
}
