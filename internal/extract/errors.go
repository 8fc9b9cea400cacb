package extract

import (
	"errors"
	"fmt"
)

// ErrBoundary is matched by every BoundaryError.
var ErrBoundary = errors.New("ambiguous or missing boundary")

// BoundaryError is returned when the start/end delimiters do not bound exactly
// one region of the document.
type BoundaryError struct {
	StartPattern string
	EndPattern   string
	Matches      int
}

func (e *BoundaryError) Error() string {
	if e.Matches == 0 {
		return fmt.Sprintf("%s: no text between %q and %q", ErrBoundary, e.StartPattern, e.EndPattern)
	}
	return fmt.Sprintf("%s: %d regions between %q and %q, want exactly 1", ErrBoundary, e.Matches, e.StartPattern, e.EndPattern)
}

// Is reports whether target is ErrBoundary.
func (e *BoundaryError) Is(target error) bool {
	return target == ErrBoundary
}

// PatternError represents delimiter patterns that do not compile.
type PatternError struct {
	Pattern string
	Cause   error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid delimiter pattern %q: %v", e.Pattern, e.Cause)
}

func (e *PatternError) Unwrap() error {
	return e.Cause
}
