package mregexp

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind identifies what went wrong. The ordinals are stable.
type ErrorKind int

const (
	OK ErrorKind = iota
	FailedAlloc
	InvalidUtf8
	InvalidParams
	EarlyQuantifier
	InvalidComplexQuant
	UnexpectedEol
	InvalidComplexClass
	UnclosedSubexpression
)

var kindText = [...]string{
	OK:                    "ok",
	FailedAlloc:           "pattern needs more nodes than allowed",
	InvalidUtf8:           "invalid UTF-8",
	InvalidParams:         "invalid parameters",
	EarlyQuantifier:       "quantifier without preceding atom",
	InvalidComplexQuant:   "invalid repetition",
	UnexpectedEol:         "trailing backslash at end of expression",
	InvalidComplexClass:   "invalid character class",
	UnclosedSubexpression: "missing closing )",
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(kindText) {
		return kindText[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error lets a kind be returned and compared directly:
//
//	if errors.Is(err, mregexp.EarlyQuantifier) { ... }
func (k ErrorKind) Error() string {
	return "mregexp: " + k.String()
}

// Error describes a failure together with the expression and the byte
// offset of the offending construct. Pos is -1 when no position applies.
type Error struct {
	Kind ErrorKind
	Expr string
	Pos  int
}

func (e *Error) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("error parsing regexp: %s: `%s`", e.Kind.String(), e.Expr)
	}
	return fmt.Sprintf("error parsing regexp: %s at offset %d: `%s`", e.Kind.String(), e.Pos, e.Expr)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// KindOf returns the kind carried by err, OK for nil and InvalidParams for
// errors that did not originate here.
func KindOf(err error) ErrorKind {
	if err == nil {
		return OK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k ErrorKind
	if errors.As(err, &k) {
		return k
	}
	return InvalidParams
}

func newError(kind ErrorKind, expr string, pos int) *Error {
	return &Error{Kind: kind, Expr: expr, Pos: pos}
}
