package deck

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrBadMonth  = errors.New("unknown month mnemonic")
	ErrBadNumber = errors.New("malformed numeric field")
	ErrBadRecord = errors.New("malformed record")
	ErrBadRepeat = errors.New("malformed repeat count")
)

// ReadError provides structured error information for deck reading.
type ReadError struct {
	Keyword string // Keyword being parsed (empty if outside any block)
	Line    int    // 1-based line number in the input
	Cause   error  // Underlying error
}

// Error implements the error interface.
func (e *ReadError) Error() string {
	if e.Keyword != "" {
		return fmt.Sprintf("deck line %d (%s): %v", e.Line, e.Keyword, e.Cause)
	}
	return fmt.Sprintf("deck line %d: %v", e.Line, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ReadError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *ReadError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}
