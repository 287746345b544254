package query

import "fmt"

// Code identifies a class of query compilation failure. Compilation is the
// only place queries fail; evaluation is total.
type Code int

const (
	CodeUnterminatedQuote Code = iota + 1
	CodeIllegalField
	CodeInvalidPattern
	CodeInvalidAmount
	CodeInvalidDate
)

func (c Code) String() string {
	switch c {
	case CodeUnterminatedQuote:
		return "unterminated quote"
	case CodeIllegalField:
		return "illegal field for context"
	case CodeInvalidPattern:
		return "invalid pattern"
	case CodeInvalidAmount:
		return "invalid amount expression"
	case CodeInvalidDate:
		return "invalid date expression"
	}
	return "unknown error"
}

// Error is a single compile failure. It carries the offending token verbatim
// so callers can show it in a one-line message.
type Error struct {
	Code   Code
	Token  string
	Pos    int
	Reason string
}

func (e *Error) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Code, e.Token, e.Reason)
}
