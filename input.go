package mregexp

import (
	"bytes"
	"strings"
)

// Input abstracts the text being searched.
// It lets the engine work on strings and byte slices without copying either.
type Input interface {
	// Step returns the codepoint at pos and its width in bytes.
	// At or beyond the end of the input it returns (0, 0).
	Step(pos int) (rune, int)

	// Len returns the input length in bytes.
	Len() int

	// Index returns the byte index of lit at or after pos, or -1.
	Index(lit string, pos int) int

	// Bytes returns the input as a byte slice for multi-literal search.
	// The result must not be modified.
	Bytes() []byte

	// Valid reports whether the input is well-formed UTF-8.
	Valid() bool
}

// StringInput implements Input for a string.
type StringInput struct {
	str string
	raw []byte
}

func NewStringInput(s string) *StringInput {
	return &StringInput{str: s}
}

func (s *StringInput) Step(pos int) (rune, int) {
	return utf8Decode(s.str, pos)
}

func (s *StringInput) Len() int {
	return len(s.str)
}

func (s *StringInput) Index(lit string, pos int) int {
	if pos > len(s.str) {
		return -1
	}
	idx := strings.Index(s.str[pos:], lit)
	if idx == -1 {
		return -1
	}
	return pos + idx
}

func (s *StringInput) Bytes() []byte {
	if s.raw == nil {
		s.raw = []byte(s.str)
	}
	return s.raw
}

func (s *StringInput) Valid() bool {
	return utf8Valid(s.str)
}

// BytesInput implements Input for a byte slice.
type BytesInput struct {
	data []byte
}

func NewBytesInput(b []byte) *BytesInput {
	return &BytesInput{data: b}
}

func (s *BytesInput) Step(pos int) (rune, int) {
	return utf8Decode(s.data, pos)
}

func (s *BytesInput) Len() int {
	return len(s.data)
}

func (s *BytesInput) Index(lit string, pos int) int {
	if pos > len(s.data) {
		return -1
	}
	idx := bytes.Index(s.data[pos:], []byte(lit))
	if idx == -1 {
		return -1
	}
	return pos + idx
}

func (s *BytesInput) Bytes() []byte {
	return s.data
}

func (s *BytesInput) Valid() bool {
	return utf8Valid(s.data)
}
