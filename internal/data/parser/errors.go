package parser

import "fmt"

// ParseError reports a two-field line whose fields are not both numbers.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: cannot parse %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MalformedLineError reports a line with a field count other than two.
// Only returned under PolicyStrict.
type MalformedLineError struct {
	Line   int
	Text   string
	Fields int
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("line %d: expected 2 fields, got %d: %q", e.Line, e.Fields, e.Text)
}
