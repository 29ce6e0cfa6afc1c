package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/nao1215/docscore/internal/config"
	"github.com/nao1215/docscore/internal/extractor"
	"github.com/nao1215/docscore/internal/fetcher"
	"github.com/nao1215/docscore/internal/model"
)

// ErrMissingInput is returned when a step runs before the step that
// produces its input.
var ErrMissingInput = errors.New("missing step input")

// StepError records which step failed.
type StepError struct {
	Step string
	Err  error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}

// Classify converts an analysis error into a failure record.
func Classify(url string, err error) *model.Failure {
	f := &model.Failure{
		URL:       url,
		ErrorKind: model.ErrorKindInternal,
		Message:   err.Error(),
	}

	var stepErr *StepError
	if errors.As(err, &stepErr) {
		f.Stage = stepErr.Step
		f.Message = stepErr.Err.Error()
	}

	var (
		netErr     *fetcher.NetworkError
		contentErr *fetcher.InsufficientContentError
		extractErr *extractor.ExtractionError
		cfgErr     *config.ConfigError
	)
	switch {
	case errors.As(err, &netErr):
		f.ErrorKind = model.ErrorKindNetwork
		f.StatusCode = netErr.StatusCode
	case errors.As(err, &contentErr):
		f.ErrorKind = model.ErrorKindInsufficientContent
	case errors.As(err, &extractErr):
		f.ErrorKind = model.ErrorKindExtraction
	case errors.As(err, &cfgErr):
		f.ErrorKind = model.ErrorKindConfig
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		f.ErrorKind = model.ErrorKindCancelled
	}
	return f
}
