// Package errors defines the typed error taxonomy shared by every package in
// this module. It generalizes the teacher's SentraError (an ErrorType plus
// message plus source location) from "a location in source code" to "a byte
// offset into a parsed numeric literal", and closes the open-ended ErrorType
// string down to the fixed taxonomy spec.md §7 requires.
package errors

import (
	"errors"
	"fmt"
)

// Code names one of the error categories a core package can raise. The set
// is closed and mirrors spec.md §7 exactly.
type Code string

const (
	// Parse.
	BadFormat Code = "BadFormat"

	// Domain.
	DivByZero      Code = "DivByZero"
	Negative       Code = "Negative"
	NoYearZero     Code = "NoYearZero" // reserved for a Timestamp collaborator; unused by this module
	RootTooLarge   Code = "RootTooLarge"
	BaseOutOfRange Code = "BaseOutOfRange"
	MinBase        Code = "MinBase"
	MaxBase        Code = "MaxBase"

	// Range.
	Overflow       Code = "Overflow"
	ScalarOverflow Code = "ScalarOverflow"
	DigitOverflow  Code = "DigitOverflow"
	Overrun        Code = "Overrun"
)

// Error is the concrete error type every package in this module returns.
// Position is -1 when the error has no associated byte offset.
type Error struct {
	Code     Code
	Problem  string
	Position int
	Subject  string
}

func (e *Error) Error() string {
	switch {
	case e.Subject != "" && e.Position >= 0:
		return fmt.Sprintf("%s: %s (at byte %d of %q)", e.Code, e.Problem, e.Position, e.Subject)
	case e.Position >= 0:
		return fmt.Sprintf("%s: %s (at byte %d)", e.Code, e.Problem, e.Position)
	case e.Problem != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Problem)
	default:
		return string(e.Code)
	}
}

// New builds a plain error carrying a code and a human-readable problem.
func New(code Code, problem string) *Error {
	return &Error{Code: code, Problem: problem, Position: -1}
}

// BadFormatAt builds a parse failure with a subject string and the 0-based
// byte offset of the first offending character, per spec.md §7.
func BadFormatAt(problem, subject string, position int) *Error {
	return &Error{Code: BadFormat, Problem: problem, Position: position, Subject: subject}
}

// Is reports whether err (or something it wraps) carries the given Code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
