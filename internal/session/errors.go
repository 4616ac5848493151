package session

import (
	"errors"
	"fmt"

	"quizdoc/internal/question"
)

// ExtractionError reports that document text could not be obtained.
// The cause is surfaced verbatim and never retried.
type ExtractionError struct {
	Source string
	Err    error
}

// Error renders the failed source and cause.
func (err *ExtractionError) Error() string {
	if err.Source == "" {
		return fmt.Sprintf("extraction failed: %v", err.Err)
	}
	return fmt.Sprintf("extraction failed for %s: %v", err.Source, err.Err)
}

// Unwrap exposes the underlying cause.
func (err *ExtractionError) Unwrap() error {
	return err.Err
}

// IsEmptyParse reports whether err is the empty parse result error.
func IsEmptyParse(err error) bool {
	return errors.Is(err, question.ErrEmptyParseResult)
}

// IsExtraction reports whether err is an extraction failure.
func IsExtraction(err error) bool {
	var extractionErr *ExtractionError
	return errors.As(err, &extractionErr)
}
