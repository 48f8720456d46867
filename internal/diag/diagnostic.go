package diag

import (
	"strata/internal/source"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics.
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Code identifies a diagnostic category.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical.
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002

	// Syntactic.
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynExpectedPattern   Code = 2003
	SynExpectedExpr      Code = 2004
	SynExpectedDecl      Code = 2005
)

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
