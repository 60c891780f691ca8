package dose

import (
	"errors"
	"fmt"
)

// FormatError is a structural violation of the 3ddose grammar or of a
// DoseBlock invariant.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string { return "3ddose format: " + e.Msg }

func formatErrorf(format string, args ...any) error {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}

// NumericParseError is a token that should have been a number but is not.
type NumericParseError struct {
	Field string // what was being read, e.g. "x boundary"
	Line  int    // 1-based
	Token string
	Err   error
}

func (e *NumericParseError) Error() string {
	return fmt.Sprintf("line %d: invalid %s %q: %v", e.Line, e.Field, e.Token, e.Err)
}

func (e *NumericParseError) Unwrap() error { return e.Err }

// EncodingError is an invariant violation found while producing output.
type EncodingError struct {
	Format string
	Msg    string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode %s: %s", e.Format, e.Msg)
}

// IoError wraps a failure to open, read or write a file.
type IoError struct {
	Op   string
	Path string
	Err  error
}

func (e *IoError) Error() string { return e.Op + " " + e.Path + ": " + e.Err.Error() }

func (e *IoError) Unwrap() error { return e.Err }

// CheckForEncoding re-validates b and reports any broken invariant as an
// *EncodingError for the named format.
func CheckForEncoding(b *DoseBlock, format string) error {
	if b == nil {
		return &EncodingError{Format: format, Msg: "nil dose block"}
	}
	if err := b.Validate(); err != nil {
		msg := err.Error()
		var fe *FormatError
		if errors.As(err, &fe) {
			msg = fe.Msg
		}
		return &EncodingError{Format: format, Msg: msg}
	}
	return nil
}
