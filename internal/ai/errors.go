package ai

import (
	"errors"
	"fmt"

	"github.com/nao1215/docscore/internal/model"
)

var (
	// ErrEmptyResponse is returned when the model response has no text.
	ErrEmptyResponse = errors.New("empty model response")

	// ErrMalformedResponse is returned when the model text does not follow
	// the requested format.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrUnexpectedStatus is returned when the API answers with a non-200 status.
	ErrUnexpectedStatus = errors.New("unexpected API status")
)

// SupplementError describes a failed supplement request. It is logged by
// the client and never returned to the analyzers.
type SupplementError struct {
	Criterion model.Criterion

	// Stage is the step that failed: "rate_limit", "prompt", "request"
	// or "parse".
	Stage string

	Err error
}

// Error implements the error interface.
func (e *SupplementError) Error() string {
	return fmt.Sprintf("AI supplement for %s failed at %s: %v", e.Criterion, e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *SupplementError) Unwrap() error {
	return e.Err
}
