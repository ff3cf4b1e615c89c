package contour

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrDimensionMismatch is returned when the position and color grids disagree in size.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrNoContourFound is returned when the normalized mask holds no contour.
	ErrNoContourFound = errors.New("no contour found")
)

func newDimensionMismatchError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrDimensionMismatch, format, args...)
}

// IOFailureError is returned when an artifact could not be written. Results already computed
// are unaffected; nothing is retried.
type IOFailureError struct {
	Artifact string
	Path     string
	Err      error
}

func (e *IOFailureError) Error() string {
	return fmt.Sprintf("cannot write %s to %q: %v", e.Artifact, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *IOFailureError) Unwrap() error {
	return e.Err
}

// IsIOFailure reports whether err is, or wraps, an IOFailureError.
func IsIOFailure(err error) bool {
	var ioErr *IOFailureError
	return errors.As(err, &ioErr)
}
