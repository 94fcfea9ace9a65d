package parser

// LinePolicy decides what happens to a non-comment line that does not split
// into exactly two fields.
type LinePolicy int

const (
	// PolicySkip drops malformed lines silently.
	PolicySkip LinePolicy = iota
	// PolicyStrict fails on the first malformed line.
	PolicyStrict
)

func (p LinePolicy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "skip"
}

// Check returns (true, nil) when fields form a data point. For any other
// field count it returns false, with an error only under PolicyStrict.
func (p LinePolicy) Check(lineNo int, text string, fields []string) (bool, error) {
	if len(fields) == 2 {
		return true, nil
	}
	if p == PolicyStrict {
		return false, &MalformedLineError{Line: lineNo, Text: text, Fields: len(fields)}
	}
	return false, nil
}
