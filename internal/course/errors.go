package course

import "fmt"

// ParseError reports text that does not match the grammar of a time of day,
// calendar date or weekday.
type ParseError struct {
	Field string // empty until the extraction table attaches it
	Kind  string // "time", "date" or "weekday"
	Text  string
	Err   error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("invalid %s %q", e.Kind, e.Text)
	if e.Field != "" {
		msg = fmt.Sprintf("field %s: %s", e.Field, msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports an assembled record that breaks a schema rule.
type ValidationError struct {
	Field string
	Value any
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s: value %v fails %q", e.Field, e.Value, e.Rule)
}

// ExtractionError reports a numeric field whose text holds no digits.
type ExtractionError struct {
	Field string
	Text  string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("field %s: no number found in %q", e.Field, e.Text)
}
