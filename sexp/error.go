package sexp

import "fmt"

// ErrorCode classifies reader syntax errors.
type ErrorCode uint

// Possible ErrorCode values.
const (
	ErrInvalid ErrorCode = iota

	// ErrUnexpectedEOF is raised when input ends inside a list, a string, a
	// block comment, or directly after '#' or a dotted tail.
	ErrUnexpectedEOF
	// ErrUnexpectedChar is raised for a lead character that starts no
	// production.
	ErrUnexpectedChar
	// ErrMalformedDottedList is raised for '.' with no preceding element or
	// a wrong terminator after a dotted tail.
	ErrMalformedDottedList
	// ErrInvalidNumber is raised when an explicit radix prefix commits a
	// token to being numeric but the text does not parse.
	ErrInvalidNumber
	// ErrUnknownCharName is raised for a multi-character #\name that is
	// neither space nor newline.
	ErrUnknownCharName
	// ErrUnsupportedHashChar is raised for an unrecognized '#' dispatch
	// character when no MacroChar hook is configured.
	ErrUnsupportedHashChar

	numErrorCodes
)

func (code ErrorCode) String() string {
	codeStrings := [numErrorCodes]string{
		ErrInvalid:             "invalid",
		ErrUnexpectedEOF:       "unexpected-eof",
		ErrUnexpectedChar:      "unexpected-char",
		ErrMalformedDottedList: "malformed-dotted-list",
		ErrInvalidNumber:       "invalid-number",
		ErrUnknownCharName:     "unknown-char-name",
		ErrUnsupportedHashChar: "unsupported-hash-char",
	}
	if code >= numErrorCodes {
		return codeStrings[ErrInvalid]
	}
	return codeStrings[code]
}

// SyntaxError is the error type produced by Reader.Read.  A SyntaxError
// aborts the entire read that raised it; no partial datum is ever returned
// alongside one.
type SyntaxError struct {
	Code ErrorCode
	Msg  string
	Loc  *Location
}

func (err *SyntaxError) Error() string {
	if err.Loc != nil {
		return fmt.Sprintf("%s: %s: %s", err.Loc, err.Code, err.Msg)
	}
	return fmt.Sprintf("%s: %s", err.Code, err.Msg)
}

// IsSyntaxError reports whether err is a SyntaxError with the given code.
func IsSyntaxError(err error, code ErrorCode) bool {
	serr, ok := err.(*SyntaxError)
	return ok && serr.Code == code
}

// Location identifies a position in a named input stream.
type Location struct {
	File string
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	switch {
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}
