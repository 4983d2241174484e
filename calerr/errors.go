// Package calerr defines the error kinds reported by almanac.
//
// Every failing operation in the library returns an *Error carrying a Code.
// Callers match on kind with errors.Is against the package sentinels or with
// the IsXxx helpers, which unwrap through fmt.Errorf("%w") chains.
package calerr

import (
	"errors"
	"fmt"
)

// Code categorizes errors.
type Code string

const (
	// ErrCodeInvalidDate indicates a year/month/day combination that does not exist
	// or lies outside the supported year range.
	ErrCodeInvalidDate Code = "INVALID_DATE"

	// ErrCodeOverflow indicates a result outside the range of its type.
	ErrCodeOverflow Code = "ARITHMETIC_OVERFLOW"

	// ErrCodeDivisionByZero indicates a zero divisor.
	ErrCodeDivisionByZero Code = "DIVISION_BY_ZERO"

	// ErrCodeParse indicates a malformed ISO-8601 string.
	ErrCodeParse Code = "PARSE_FAILURE"

	// ErrCodeInvalidArgument indicates an argument the operation cannot accept,
	// such as a zero progression step.
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"
)

// Error is the error type returned by every package in the module.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Op names the operation that failed (e.g. "Date.PlusMonths").
	Op string

	// Message is a human-readable description.
	Message string

	// Input holds the offending text for parse failures.
	Input string
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = defaultMessage(e.Code)
	}
	switch {
	case e.Op != "" && e.Input != "":
		return fmt.Sprintf("%s: %s: %s (input=%q)", e.Code, e.Op, msg, e.Input)
	case e.Op != "":
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Op, msg)
	default:
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
}

// Is reports whether target is an *Error with the same Code.
// This lets errors.Is(err, calerr.ErrOverflow) match any overflow.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func defaultMessage(code Code) string {
	switch code {
	case ErrCodeInvalidDate:
		return "invalid date"
	case ErrCodeOverflow:
		return "arithmetic overflow"
	case ErrCodeDivisionByZero:
		return "division by zero"
	case ErrCodeParse:
		return "parse failure"
	case ErrCodeInvalidArgument:
		return "invalid argument"
	}
	return "error"
}

// Sentinels for errors.Is.
var (
	ErrInvalidDate     = &Error{Code: ErrCodeInvalidDate}
	ErrOverflow        = &Error{Code: ErrCodeOverflow}
	ErrDivisionByZero  = &Error{Code: ErrCodeDivisionByZero}
	ErrParse           = &Error{Code: ErrCodeParse}
	ErrInvalidArgument = &Error{Code: ErrCodeInvalidArgument}
)

// CodeOf returns the Code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsInvalidDate returns true if the error is an invalid date error.
func IsInvalidDate(err error) bool { return CodeOf(err) == ErrCodeInvalidDate }

// IsOverflow returns true if the error is an arithmetic overflow error.
func IsOverflow(err error) bool { return CodeOf(err) == ErrCodeOverflow }

// IsDivisionByZero returns true if the error is a division by zero error.
func IsDivisionByZero(err error) bool { return CodeOf(err) == ErrCodeDivisionByZero }

// IsParse returns true if the error is a parse failure.
func IsParse(err error) bool { return CodeOf(err) == ErrCodeParse }

// IsInvalidArgument returns true if the error is an invalid argument error.
func IsInvalidArgument(err error) bool { return CodeOf(err) == ErrCodeInvalidArgument }

// NewInvalidDate creates an Error for a nonexistent date.
func NewInvalidDate(op, format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidDate, Op: op, Message: fmt.Sprintf(format, args...)}
}

// NewOverflow creates an Error for an out-of-range result.
func NewOverflow(op string) *Error {
	return &Error{Code: ErrCodeOverflow, Op: op, Message: "arithmetic overflow"}
}

// NewDivisionByZero creates an Error for a zero divisor.
func NewDivisionByZero(op string) *Error {
	return &Error{Code: ErrCodeDivisionByZero, Op: op, Message: "division by zero"}
}

// NewParse creates an Error for a malformed input string.
func NewParse(op, input, reason string) *Error {
	return &Error{Code: ErrCodeParse, Op: op, Message: reason, Input: input}
}

// NewInvalidArgument creates an Error for an unacceptable argument.
func NewInvalidArgument(op, format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidArgument, Op: op, Message: fmt.Sprintf(format, args...)}
}
