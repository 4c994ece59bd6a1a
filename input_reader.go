package mregexp

import (
	"io"

	"github.com/pkg/errors"
)

// NewReaderInput reads r to the end and returns it as an Input.
// Matching may revisit any earlier position, so the whole text is kept in memory.
func NewReaderInput(r io.Reader) (*BytesInput, error) {
	if r == nil {
		return nil, InvalidParams
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "while reading input")
	}
	return NewBytesInput(b), nil
}
