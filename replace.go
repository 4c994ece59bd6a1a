package mregexp

import (
	"strings"
)

// ReplaceAllString replaces all matches of the regular expression with the replacement string.
// Inside repl, $1 or ${1} stands for the text of the first group, $0 for the
// whole match, and $$ for a literal $. Groups that did not participate expand
// to "".
func (re *Regexp) ReplaceAllString(src, repl string) string {
	return re.replaceAll(src, func(b *strings.Builder, m *Match) {
		re.expand(b, repl, src, m)
	})
}

// ReplaceAllLiteralString replaces all matches with the replacement string literally
// (no template expansion).
func (re *Regexp) ReplaceAllLiteralString(src, repl string) string {
	return re.replaceAll(src, func(b *strings.Builder, _ *Match) {
		b.WriteString(repl)
	})
}

// ReplaceAllStringFunc replaces all matches using a function to generate replacement text.
func (re *Regexp) ReplaceAllStringFunc(src string, repl func(string) string) string {
	return re.replaceAll(src, func(b *strings.Builder, m *Match) {
		b.WriteString(repl(src[m.Begin:m.End]))
	})
}

// ReplaceAllMatchFunc replaces all matches using a function that also sees
// the spans of the groups.
func (re *Regexp) ReplaceAllMatchFunc(src string, repl func(*Match) string) string {
	return re.replaceAll(src, func(b *strings.Builder, m *Match) {
		b.WriteString(repl(m))
	})
}

func (re *Regexp) replaceAll(src string, write func(*strings.Builder, *Match)) string {
	matches, err := re.FindAll(src)
	if err != nil || len(matches) == 0 {
		return src
	}

	var result strings.Builder
	lastEnd := 0
	for _, m := range matches {
		// Append text before match
		result.WriteString(src[lastEnd:m.Begin])
		write(&result, m)
		lastEnd = m.End
	}

	// Append remaining text
	result.WriteString(src[lastEnd:])
	return result.String()
}

// expand appends template to b with $n and ${n} replaced by group text.
func (re *Regexp) expand(b *strings.Builder, template, src string, m *Match) {
	group := func(idx int) {
		if idx == 0 {
			b.WriteString(src[m.Begin:m.End])
			return
		}
		if span, ok := m.Capture(idx - 1); ok {
			b.WriteString(src[span.Begin:span.End])
		}
	}

	i := 0
	for i < len(template) {
		if template[i] != '$' {
			b.WriteByte(template[i])
			i++
			continue
		}

		// Found $
		i++
		if i >= len(template) {
			b.WriteByte('$')
			break
		}

		// Handle $$
		if template[i] == '$' {
			b.WriteByte('$')
			i++
			continue
		}

		// Handle ${1}
		if template[i] == '{' {
			end := strings.IndexByte(template[i:], '}')
			idx, ok := -1, false
			if end > 0 {
				idx, ok = groupNumber(template[i+1 : i+end])
			}
			if !ok {
				// Not a group reference, treat as literal
				b.WriteByte('$')
				continue
			}
			group(idx)
			i += end + 1
			continue
		}

		// Handle $1, $12, ...
		n := i
		for n < len(template) && isDigit(template[n]) {
			n++
		}
		if n > i {
			idx, _ := groupNumber(template[i:n])
			group(idx)
			i = n
			continue
		}

		// Invalid $, treat as literal
		b.WriteByte('$')
	}
}

func groupNumber(s string) (int, bool) {
	if s == "" || len(s) > 6 {
		return -1, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return -1, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ReplaceAll replaces all matches in a byte slice.
func (re *Regexp) ReplaceAll(src, repl []byte) []byte {
	return []byte(re.ReplaceAllString(string(src), string(repl)))
}

// ReplaceAllLiteral replaces all matches in a byte slice literally.
func (re *Regexp) ReplaceAllLiteral(src, repl []byte) []byte {
	return []byte(re.ReplaceAllLiteralString(string(src), string(repl)))
}

// ReplaceAllFunc replaces all matches in a byte slice using a function.
func (re *Regexp) ReplaceAllFunc(src []byte, repl func([]byte) []byte) []byte {
	return []byte(re.ReplaceAllStringFunc(string(src), func(s string) string {
		return string(repl([]byte(s)))
	}))
}
