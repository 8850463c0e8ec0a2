package gridpdf

import (
	"errors"
	"fmt"
)

// Sentinel errors for document generation failures.
var (
	ErrNoContent         = errors.New("gridpdf: template returned no content")
	ErrInvalidGrid       = errors.New("gridpdf: grid needs at least one row and one column")
	ErrInvalidPageCount  = errors.New("gridpdf: page count must be at least 1")
	ErrPageCountMismatch = errors.New("gridpdf: page count disagrees with paginator")
)

// BuildError represents an error that occurred while building a document.
// It wraps the underlying error with the failed step and, for per-page
// steps, the one-based page number.
type BuildError struct {
	Op   string // step name, e.g. "Styles", "Layout", "Save"
	Page int    // one-based page number, 0 when not page specific
	Err  error  // underlying error
}

func (e *BuildError) Error() string {
	msg := "unknown error"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Page > 0 {
		return fmt.Sprintf("gridpdf.%s: page %d: %s", e.Op, e.Page, msg)
	}
	return fmt.Sprintf("gridpdf.%s: %s", e.Op, msg)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// newBuildError creates a BuildError for op on page (one-based, 0 for none).
func newBuildError(op string, page int, err error) *BuildError {
	return &BuildError{Op: op, Page: page, Err: err}
}
