// Package mregexp is a small embeddable regular expression engine.
//
// A pattern compiles into a fixed arena of nodes; a backtracking matcher walks
// the arena over UTF-8 text and reports byte spans for the match and for each
// parenthesized group.
//
// Supported syntax: literals, '.', '^' and '$' (start and end of the whole
// text), '*', '+', '?', '{m,n}', classes such as [a-z0-9] and [^...], the
// escapes \n \t \r \d \D \w \W \s \S, groups '(...)' which always capture,
// and alternation '|'.
//
// Repetition is greedy and possessive: once a repetition has matched, the
// input it consumed is not given back, so "a*a" never matches. Alternation
// is the only construct that is retried.
//
// A compiled *Regexp is immutable and safe for concurrent use; capture spans
// are returned with each match.
package mregexp

import (
	"fmt"
	"io"
	"strings"

	"github.com/golang/glog"
)

// Regexp is a compiled expression.
type Regexp struct {
	expr string
	prog *Prog
}

// Span is a half-open range [Begin, End) of byte offsets into the searched
// text. Begin and End are -1 for a group that did not participate.
type Span struct {
	Begin, End int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Begin
}

// Match is one match of an expression: its span and the spans of its groups.
type Match struct {
	Span
	Captures []Span
}

// Capture returns the span of group i, counting groups from 0 in the order
// of their opening parenthesis. It reports false when i is out of range or the
// group took no part in the match.
func (m *Match) Capture(i int) (Span, bool) {
	if m == nil || i < 0 || i >= len(m.Captures) {
		return Span{-1, -1}, false
	}
	s := m.Captures[i]
	return s, s.Begin >= 0
}

func newMatch(begin, end int, caps []int) *Match {
	m := &Match{Span: Span{begin, end}, Captures: make([]Span, len(caps)/2)}
	for i := range m.Captures {
		m.Captures[i] = Span{caps[2*i], caps[2*i+1]}
	}
	return m
}

// Compile parses an expression with DefaultConfig.
func Compile(expr string) (*Regexp, error) {
	return CompileWithConfig(expr, DefaultConfig())
}

// CompileWithConfig parses an expression. On failure the error is an *Error
// whose Kind identifies the offending construct; nothing is retained.
func CompileWithConfig(expr string, config Config) (*Regexp, error) {
	if !utf8Valid(expr) {
		return nil, newError(InvalidUtf8, expr, -1)
	}

	tokens, err := NewParser(expr).Tokens()
	if err != nil {
		return nil, err
	}
	size, captures, err := arenaSize(expr, tokens)
	if err != nil {
		return nil, err
	}
	if config.MaxNodes > 0 && size > config.MaxNodes {
		return nil, newError(FailedAlloc, expr, -1)
	}

	nodes, err := NewCompiler(size).Compile(expr, tokens)
	if err != nil {
		return nil, err
	}

	prog := &Prog{
		Nodes:    nodes,
		Start:    0,
		NumCap:   captures,
		Anchored: anchoredAtBegin(nodes, 0),
	}
	if config.Prefilter && !prog.Anchored {
		prog.prefilter = buildPrefilter(nodes, prog.Start)
	}

	if glog.V(2) {
		pf := "none"
		if prog.prefilter != nil {
			pf = prog.prefilter.String()
		}
		glog.Infof("mregexp: compiled %q into %d nodes, %d groups, anchored=%v, prefilter=%s",
			expr, len(nodes), captures, prog.Anchored, pf)
	}

	return &Regexp{expr: expr, prog: prog}, nil
}

// MustCompile is like Compile but panics if the expression cannot be parsed.
func MustCompile(expr string) *Regexp {
	re, err := Compile(expr)
	if err != nil {
		panic(fmt.Sprintf("mregexp: Compile(%q): %v", expr, err))
	}
	return re
}

// Release drops the compiled arena. Later calls on re report InvalidParams.
// Release must not run concurrently with other calls on re.
func (re *Regexp) Release() error {
	if re == nil || re.prog == nil {
		return InvalidParams
	}
	re.prog = nil
	return nil
}

func (re *Regexp) usable() bool {
	return re != nil && re.prog != nil
}

// CaptureCount returns the number of groups in the expression.
func (re *Regexp) CaptureCount() int {
	if !re.usable() {
		return 0
	}
	return re.prog.NumCap
}

// NumSubexp returns the number of parenthesized subexpressions in this Regexp.
func (re *Regexp) NumSubexp() int {
	return re.CaptureCount()
}

// String returns the source text used to compile the regular expression.
func (re *Regexp) String() string {
	if re == nil {
		return ""
	}
	return re.expr
}

// Dump lists the compiled node arena, for debugging.
func (re *Regexp) Dump() string {
	if !re.usable() {
		return ""
	}
	return re.prog.Dump()
}

// FindFirst returns the leftmost match in text, or nil if there is none.
// Invalid UTF-8 in text is reported as InvalidUtf8, never as "no match".
func (re *Regexp) FindFirst(text string) (*Match, error) {
	return re.findFirst(NewStringInput(text))
}

// FindAll returns the successive non-overlapping matches in text, left to
// right. Each search resumes where the previous match ended, or one
// codepoint later after an empty match.
func (re *Regexp) FindAll(text string) ([]*Match, error) {
	return re.findAll(NewStringInput(text), -1)
}

func (re *Regexp) findFirst(in Input) (*Match, error) {
	if !re.usable() {
		return nil, InvalidParams
	}
	if !in.Valid() {
		return nil, InvalidUtf8
	}
	vm := NewVM(re.prog, in)
	defer vm.Free()

	begin, end, caps, ok := re.search(vm, in, 0)
	if !ok {
		return nil, nil
	}
	return newMatch(begin, end, caps), nil
}

func (re *Regexp) findAll(in Input, n int) ([]*Match, error) {
	if !re.usable() {
		return nil, InvalidParams
	}
	if !in.Valid() {
		return nil, InvalidUtf8
	}
	if n == 0 {
		return nil, nil
	}
	vm := NewVM(re.prog, in)
	defer vm.Free()

	var matches []*Match
	pos := 0
	for (n < 0 || len(matches) < n) && pos < in.Len() {
		begin, end, caps, ok := re.search(vm, in, pos)
		if !ok {
			break
		}
		matches = append(matches, newMatch(begin, end, caps))

		if end == begin {
			_, w := in.Step(end)
			if w == 0 {
				break
			}
			pos = end + w
		} else {
			pos = end
		}
	}
	glog.V(3).Infof("mregexp: %q found %d matches in %d bytes", re.expr, len(matches), in.Len())
	return matches, nil
}

// search tries every codepoint boundary from pos up to, but not including,
// the end of the input and returns the first match.
func (re *Regexp) search(vm *VM, in Input, pos int) (begin, end int, caps []int, ok bool) {
	inputLen := in.Len()
	for pos < inputLen {
		if re.prog.Anchored && pos > 0 {
			break
		}
		// Use prefilter to skip impossible positions
		if re.prog.prefilter != nil {
			pos = re.prog.prefilter.find(in, pos)
			if pos == -1 {
				break
			}
		}

		if end, caps, ok := vm.Run(pos); ok {
			return pos, end, caps, true
		}

		_, w := in.Step(pos)
		if w == 0 {
			break
		}
		pos += w
	}
	return -1, -1, nil, false
}

// MatchString reports whether s contains any match of re.
func (re *Regexp) MatchString(s string) bool {
	m, err := re.FindFirst(s)
	return err == nil && m != nil
}

// MatchReader reports whether the text read from r contains any match of re.
func (re *Regexp) MatchReader(r io.Reader) (bool, error) {
	input, err := NewReaderInput(r)
	if err != nil {
		return false, err
	}
	m, err := re.findFirst(input)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

// FindString returns the text of the leftmost match in s.
// Returns empty string if no match found.
func (re *Regexp) FindString(s string) string {
	m, err := re.FindFirst(s)
	if err != nil || m == nil {
		return ""
	}
	return s[m.Begin:m.End]
}

// FindStringIndex returns a two-element slice of integers defining the location
// of the leftmost match in s. Returns nil if no match found.
func (re *Regexp) FindStringIndex(s string) []int {
	m, err := re.FindFirst(s)
	if err != nil || m == nil {
		return nil
	}
	return []int{m.Begin, m.End}
}

// FindStringSubmatch returns the text of the leftmost match followed by the
// text of each group, "" for groups that did not participate.
func (re *Regexp) FindStringSubmatch(s string) []string {
	m, err := re.FindFirst(s)
	if err != nil || m == nil {
		return nil
	}
	return submatchStrings(s, m)
}

// FindStringSubmatchIndex returns index pairs for the leftmost match and each
// of its groups, -1 for groups that did not participate.
func (re *Regexp) FindStringSubmatchIndex(s string) []int {
	m, err := re.FindFirst(s)
	if err != nil || m == nil {
		return nil
	}
	return submatchIndex(m)
}

// FindAllString returns the text of successive matches. n < 0 means all matches.
func (re *Regexp) FindAllString(s string, n int) []string {
	matches, err := re.findAll(NewStringInput(s), n)
	if err != nil || len(matches) == 0 {
		return nil
	}
	result := make([]string, len(matches))
	for i, m := range matches {
		result[i] = s[m.Begin:m.End]
	}
	return result
}

// FindAllStringIndex returns a slice of all successive matches of the expression,
// as two-element slices of integers. n < 0 means return all matches.
func (re *Regexp) FindAllStringIndex(s string, n int) [][]int {
	matches, err := re.findAll(NewStringInput(s), n)
	if err != nil || len(matches) == 0 {
		return nil
	}
	result := make([][]int, len(matches))
	for i, m := range matches {
		result[i] = []int{m.Begin, m.End}
	}
	return result
}

// FindAllStringSubmatch returns a slice of all successive matches of the expression,
// as defined by FindStringSubmatch. n < 0 means return all matches.
func (re *Regexp) FindAllStringSubmatch(s string, n int) [][]string {
	matches, err := re.findAll(NewStringInput(s), n)
	if err != nil || len(matches) == 0 {
		return nil
	}
	result := make([][]string, len(matches))
	for i, m := range matches {
		result[i] = submatchStrings(s, m)
	}
	return result
}

func submatchStrings(s string, m *Match) []string {
	result := make([]string, len(m.Captures)+1)
	result[0] = s[m.Begin:m.End]
	for i := range m.Captures {
		if span, ok := m.Capture(i); ok {
			result[i+1] = s[span.Begin:span.End]
		}
	}
	return result
}

func submatchIndex(m *Match) []int {
	result := make([]int, 0, 2*len(m.Captures)+2)
	result = append(result, m.Begin, m.End)
	for _, c := range m.Captures {
		result = append(result, c.Begin, c.End)
	}
	return result
}

// Split slices s into substrings separated by the expression and returns a slice of
// the substrings between those expression matches. n < 0 means return all substrings.
func (re *Regexp) Split(s string, n int) []string {
	if n == 0 {
		return nil
	}

	if n < 0 {
		n = len(s) + 1 // Enough to get all splits
	}

	matches := re.FindAllStringIndex(s, n-1)
	if matches == nil {
		return []string{s}
	}

	result := make([]string, 0, len(matches)+1)
	prev := 0

	for _, match := range matches {
		result = append(result, s[prev:match[0]])
		prev = match[1]
	}

	// Append remaining text
	result = append(result, s[prev:])
	return result
}

// QuoteMeta returns a string that escapes all metacharacters inside s; the
// returned string is an expression matching the literal text.
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$`

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(special, s[i]) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
