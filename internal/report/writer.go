package report

import (
	"io"

	"github.com/nao1215/docscore/internal/model"
)

// Writer outputs analysis results in one format.
type Writer interface {
	// Write outputs the analysis of a single URL.
	Write(result *model.AnalysisResult) (int, error)

	// WriteBatch outputs the outcomes of a batch in input order.
	WriteBatch(outcomes []model.Outcome) (int, error)
}

// MultiWriter writes to multiple Writers in order and stops at the first
// error.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the result to all configured Writers.
// Returns the total bytes written across all writers.
func (m *MultiWriter) Write(result *model.AnalysisResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteBatch outputs the outcomes to all configured Writers.
func (m *MultiWriter) WriteBatch(outcomes []model.Outcome) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteBatch(outcomes)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
