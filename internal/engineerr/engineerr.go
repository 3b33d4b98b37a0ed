// Package engineerr defines the single error taxonomy shared by every
// engine component, mirroring the exception classes of the original
// ftptsgame implementation (exceptions.py) as one Go error type with a
// Kind enum rather than one type per failure mode.
package engineerr

import (
	"fmt"
	"math/big"
)

// Kind identifies the precise failure mode of an Err.
type Kind int

const (
	// WrongState means the operation is not allowed in the session's
	// current status.
	WrongState Kind = iota
	// Syntax means the parser rejected the input text.
	Syntax
	// TooLong means the normalized submission reached the length limit.
	TooLong
	// BadLiteral means a literal fell outside [0, MaxLiteral].
	BadLiteral
	// DivByZero means a division by zero was attempted.
	DivByZero
	// WrongValue means the submission evaluated to something other than
	// the target.
	WrongValue
	// WrongNumbers means the submission's literal multiset didn't match
	// the problem.
	WrongNumbers
	// Duplicate means the submission is equivalent to one already
	// accepted.
	Duplicate
	// NoSolution means a problem (or catalog window) has no answers.
	NoSolution
	// BadMethod means the generation request named an unknown mode.
	BadMethod
	// BadArguments means the generation request's arguments were
	// malformed for the mode it named.
	BadArguments
)

func (k Kind) String() string {
	switch k {
	case WrongState:
		return "WrongState"
	case Syntax:
		return "Syntax"
	case TooLong:
		return "TooLong"
	case BadLiteral:
		return "BadLiteral"
	case DivByZero:
		return "DivByZero"
	case WrongValue:
		return "WrongValue"
	case WrongNumbers:
		return "WrongNumbers"
	case Duplicate:
		return "Duplicate"
	case NoSolution:
		return "NoSolution"
	case BadMethod:
		return "BadMethod"
	case BadArguments:
		return "BadArguments"
	default:
		return "Unknown"
	}
}

// Err is the single error type produced by every engine package.
type Err struct {
	Kind Kind
	// Msg is a short human-readable detail, e.g. the offending token.
	Msg string
	// Actual carries the WrongValue payload.
	Actual *big.Rat
	// ActualNumbers carries the WrongNumbers payload.
	ActualNumbers []int
	// Original carries the Duplicate payload: the raw text of the
	// submission that was accepted first.
	Original string
}

func (e *Err) Error() string {
	switch e.Kind {
	case WrongValue:
		if e.Actual != nil {
			return fmt.Sprintf("%s: evaluated to %s", e.Kind, e.Actual.RatString())
		}
		return e.Kind.String()
	case WrongNumbers:
		return fmt.Sprintf("%s: got %v", e.Kind, e.ActualNumbers)
	case Duplicate:
		return fmt.Sprintf("%s: already accepted as %q", e.Kind, e.Original)
	default:
		if e.Msg != "" {
			return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
		}
		return e.Kind.String()
	}
}

// New builds a plain Err of the given kind with an optional detail message.
func New(kind Kind, msg string) *Err {
	return &Err{Kind: kind, Msg: msg}
}

// WrongValueErr builds a WrongValue error carrying the actual evaluated
// value.
func WrongValueErr(actual *big.Rat) *Err {
	return &Err{Kind: WrongValue, Actual: actual}
}

// WrongNumbersErr builds a WrongNumbers error carrying the offending
// literal multiset.
func WrongNumbersErr(actual []int) *Err {
	return &Err{Kind: WrongNumbers, ActualNumbers: actual}
}

// DuplicateErr builds a Duplicate error carrying the original accepted
// text.
func DuplicateErr(original string) *Err {
	return &Err{Kind: Duplicate, Original: original}
}

// Is reports whether target is an *Err with the same Kind, so callers can
// write errors.Is(err, engineerr.New(engineerr.Syntax, "")).
func (e *Err) Is(target error) bool {
	t, ok := target.(*Err)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}
