package engine

import (
	"errors"
	"fmt"
)

// BuildError reports a catalog that could not be compiled: an invalid
// regular expression, or a pattern set whose compiled form would exceed the
// size limit. Index is the offending catalog entry, or -1 when the failure
// concerns the set as a whole.
type BuildError struct {
	Strategy Strategy
	Index    int
	Err      error
}

func (e *BuildError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("failed to build %s engine: pattern %d: %v", e.Strategy, e.Index, e.Err)
	}
	return fmt.Sprintf("failed to build %s engine: %v", e.Strategy, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// ErrSizeLimit is wrapped by BuildError when the estimated compiled size of
// a catalog exceeds Options.SizeLimit.
var ErrSizeLimit = errors.New("compiled size exceeds limit")

func sizeLimitError(s Strategy, estimate, limit int) *BuildError {
	return &BuildError{Strategy: s, Index: -1, Err: fmt.Errorf("%w: estimated %d bytes, limit %d", ErrSizeLimit, estimate, limit)}
}
