package catalog

import "fmt"

// ParseError reports a catalog that could not be decoded or that is missing
// a required field.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse patterns: %s: %v", e.Msg, e.Err)
	}
	return "failed to parse patterns: " + e.Msg
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErrorf(err error, format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Err: err}
}
