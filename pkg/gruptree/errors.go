package gruptree

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNonPositiveStep = errors.New("non-positive TSTEP duration")
)

// ScanError provides structured error information for a failed scan.
// A failed scan returns no table; accumulated state is discarded.
type ScanError struct {
	Keyword string  // Keyword that triggered the failure
	Days    float64 // Offending summed duration (TSTEP failures)
	Cause   error   // Underlying error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	if e.Keyword != "" {
		return fmt.Sprintf("scanning %s: %v (summed to %g days)", e.Keyword, e.Cause, e.Days)
	}
	return fmt.Sprintf("scan failed: %v", e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ScanError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *ScanError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}
