package config

import (
	"errors"
	"fmt"
)

// Configuration validation errors.
// These errors are returned wrapped in a *ConfigError by Config.Validate
// and the scoring validators, so callers can use errors.Is for the
// specific problem and errors.As for the offending field.
var (
	// ErrNoTarget is returned when no URL or list file is specified.
	ErrNoTarget = errors.New("no target specified: provide a URL or use --list")

	// ErrInvalidTimeout is returned when a timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidRetries is returned when the retry count is negative.
	ErrInvalidRetries = errors.New("invalid retry count: must be non-negative")

	// ErrInvalidBackoff is returned when a backoff duration is negative
	// or the cap is below the base.
	ErrInvalidBackoff = errors.New("invalid backoff: must be non-negative and cap must not be below base")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidThreshold is returned when a count or ratio threshold is out of range.
	ErrInvalidThreshold = errors.New("invalid threshold: out of range")

	// ErrInvalidGradeBand is returned when the target grade band is empty or negative.
	ErrInvalidGradeBand = errors.New("invalid target grade band: min must be positive and not above max")

	// ErrNegativeWeight is returned when a criterion weight is negative.
	ErrNegativeWeight = errors.New("invalid weight: must be non-negative")

	// ErrWeightsSum is returned when the criterion weights do not sum to 1.0.
	ErrWeightsSum = errors.New("invalid weights: must sum to 1.0")

	// ErrInvalidTiers is returned when the recommendation tiers cannot
	// map every score in [0, 10] to a label.
	ErrInvalidTiers = errors.New("invalid recommendation tiers")

	// ErrInvalidRateLimit is returned when the AI request rate is negative.
	ErrInvalidRateLimit = errors.New("invalid AI request rate: must be non-negative")

	// ErrUnknownCriterion is returned when a prompt template names an unknown criterion.
	ErrUnknownCriterion = errors.New("unknown criterion")
)

// ConfigError reports an invalid configuration value.
// It is raised once at startup and never while analyzing a URL.
type ConfigError struct {
	// Field is the configuration key that failed validation.
	Field string

	// Err is the sentinel describing the problem.
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// newConfigError wraps err for field, adding detail when given.
func newConfigError(field string, err error, detail string) *ConfigError {
	if detail != "" {
		err = fmt.Errorf("%w (%s)", err, detail)
	}
	return &ConfigError{Field: field, Err: err}
}
