package fetcher

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidURL is returned when the target is not an absolute
	// http or https URL with a host.
	ErrInvalidURL = errors.New("invalid URL: must be an absolute http or https URL")

	// ErrUnexpectedStatus is returned when the server answers with a
	// non-2xx status code.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
)

// NetworkError reports a fetch that did not produce a usable response.
type NetworkError struct {
	// URL is the requested URL.
	URL string

	// StatusCode is the last HTTP status observed, or 0 when no response
	// was received.
	StatusCode int

	// Attempts is the number of requests sent.
	Attempts int

	// Err is the error of the final attempt.
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s failed after %d attempt(s) (status %d): %v", e.URL, e.Attempts, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s failed after %d attempt(s): %v", e.URL, e.Attempts, e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// InsufficientContentError reports a page with too little visible text.
type InsufficientContentError struct {
	URL string

	// Length is the visible text length in characters.
	Length int

	// Minimum is the required visible text length.
	Minimum int
}

// Error implements the error interface.
func (e *InsufficientContentError) Error() string {
	return fmt.Sprintf("insufficient content at %s: %d visible characters, need at least %d", e.URL, e.Length, e.Minimum)
}
