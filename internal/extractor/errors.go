package extractor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoMatch is returned by a Strategy whose content container is not
// present in the page.
var ErrNoMatch = errors.New("content container not found")

// ExtractionError reports that no strategy produced a usable Document.
type ExtractionError struct {
	URL string

	// Tried lists the strategies attempted, in order.
	Tried []string

	// BestWords is the highest word count any strategy produced.
	BestWords int

	// MinWords is the word count a Document needed.
	MinWords int

	// Err is set when the page could not be parsed at all.
	Err error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to extract content from %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("failed to extract content from %s: best strategy found %d words, need %d (tried %s)",
		e.URL, e.BestWords, e.MinWords, strings.Join(e.Tried, ", "))
}

// Unwrap returns the parse error, if any.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}
