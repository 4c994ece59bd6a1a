package cmd

import (
	"fmt"

	"github.com/pkg/errors"
)

// Exit statuses, following grep.
const (
	exitMatch   = 0
	exitNoMatch = 1
	exitTrouble = 2
)

// exitError carries a process exit status through cobra's error return.
// A nil err means the status is reported without a message.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func noMatch() error { return &exitError{code: exitNoMatch} }

func trouble(err error) error { return &exitError{code: exitTrouble, err: err} }

// ExitCode maps an error returned by a command to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return exitMatch
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return exitTrouble
}

// silent reports whether err has nothing to print.
func silent(err error) bool {
	var e *exitError
	return errors.As(err, &e) && e.err == nil
}
