// Package apperr defines the closed set of fatal error kinds a run can end
// with and maps each of them to a process exit status.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	KindFetch Kind = iota + 1
	KindExtraction
	KindProbe
	KindWrite
	KindInput
)

func (k Kind) String() string {
	switch k {
	case KindFetch:
		return "fetch"
	case KindExtraction:
		return "extraction"
	case KindProbe:
		return "probe"
	case KindWrite:
		return "write"
	case KindInput:
		return "input"
	}
	return "unknown"
}

// Error carries the phase that failed and the underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Kind.String() + " error"
	if e.Op != "" {
		msg = e.Op
	}
	if e.Err == nil {
		return msg
	}
	return fmt.Sprintf("%s: %s", msg, trimParens(e.Err.Error()))
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err with kind. A nil err still yields an error so that
// conditions like "nothing matched" can be reported.
func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func Fetch(op string, err error) error      { return New(KindFetch, op, err) }
func Extraction(op string, err error) error { return New(KindExtraction, op, err) }
func Probe(op string, err error) error      { return New(KindProbe, op, err) }
func Write(op string, err error) error      { return New(KindWrite, op, err) }
func Input(op string, err error) error      { return New(KindInput, op, err) }

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Is reports whether err carries kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// ExitCode maps err to the status the process should exit with.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	k, ok := KindOf(err)
	if !ok {
		return 1
	}
	switch k {
	case KindFetch:
		return 2
	case KindExtraction:
		return 3
	case KindProbe:
		return 4
	case KindWrite:
		return 5
	case KindInput:
		return 6
	}
	return 1
}

func trimParens(s string) string {
	return strings.Trim(strings.TrimSpace(s), "()")
}
