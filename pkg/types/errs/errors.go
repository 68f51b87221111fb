package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrInvalidState    = errors.New("invalid state for transition")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrMissingField    = errors.New("missing required field")
)

// ValidationError aggregates independent ingest failures, so an extension
// violation and a size violation reach the caller together.
type ValidationError struct {
	Failures []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Error())
	}

	return fmt.Sprintf("validation: %s", strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() []error {
	return e.Failures
}
