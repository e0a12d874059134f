package chooser

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration marks malformed or inconsistent run configuration.
	ErrConfiguration = errors.New("configuration error")
	// ErrNoCandidates is returned when no candidate survives extraction.
	ErrNoCandidates = errors.New("no usable multi-reference candidates")
	// ErrReferenceResolution marks an unreadable or malformed reference file.
	ErrReferenceResolution = errors.New("reference resolution failed")
)

// configErrorf wraps a formatted message with ErrConfiguration.
func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// ExtractionError reports that a file yielded no usable dipole data.
// The collector recovers from it by dropping the candidate.
type ExtractionError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func extractionErr(path, reason string, err error) *ExtractionError {
	return &ExtractionError{Path: path, Reason: reason, Err: err}
}
