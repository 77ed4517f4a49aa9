package gantt

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks. A DateError matches both ErrDate and
// ErrParse.
var (
	ErrParse       = errors.New("parse error")
	ErrDate        = errors.New("date error")
	ErrMissingData = errors.New("missing data")
)

// ParseError reports a malformed directive. Line is 1-based; zero means the
// error was not tied to a source line.
type ParseError struct {
	Line    int
	Text    string
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s (%q)", e.Line, e.Message, e.Text)
	}
	return e.Message
}

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// DateError reports a date that is malformed or not a real calendar day.
type DateError struct {
	Date string
	Line int
	Text string
	Err  error
}

func (e *DateError) Error() string {
	msg := fmt.Sprintf("invalid date %q", e.Date)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

// Is reports whether target is ErrDate or ErrParse.
func (e *DateError) Is(target error) bool {
	return target == ErrDate || target == ErrParse
}

func (e *DateError) Unwrap() error {
	return e.Err
}

// MissingDataError reports a structurally incomplete document.
type MissingDataError struct {
	Message string
	Line    int
}

func (e *MissingDataError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Is reports whether target is ErrMissingData.
func (e *MissingDataError) Is(target error) bool {
	return target == ErrMissingData
}

// Diagnostic is a non-fatal note about a line the parser did not recognize.
type Diagnostic struct {
	Line int
	Text string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: unparsed: %q", d.Line, d.Text)
}
