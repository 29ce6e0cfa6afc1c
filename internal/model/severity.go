package model

import (
	"fmt"
	"strings"
)

// Severity is the qualitative level an AI reviewer assigns to a criterion.
// The zero value is not a valid severity so that a missing field can be
// detected after parsing.
type Severity int

const (
	// SeverityUnknown is the zero value and never appears in valid findings.
	SeverityUnknown Severity = iota

	// SeverityLow means the reviewer found only minor issues.
	SeverityLow

	// SeverityMedium means the reviewer found issues worth fixing.
	SeverityMedium

	// SeverityHigh means the reviewer found issues that hurt the reader.
	SeverityHigh
)

// String returns the lowercase name used in prompts and JSON.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a case-insensitive name into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return SeverityLow, nil
	case "medium", "moderate":
		return SeverityMedium, nil
	case "high", "severe":
		return SeverityHigh, nil
	default:
		return SeverityUnknown, fmt.Errorf("unknown severity %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	parsed, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// AIFindings is the parsed qualitative supplement for one criterion.
type AIFindings struct {
	// Notes are short observations from the reviewer.
	Notes []string `json:"notes"`

	// FlaggedTerms are words or phrases the reviewer found problematic.
	FlaggedTerms []string `json:"flagged_terms"`

	// Severity is the overall level of the reported issues.
	Severity Severity `json:"severity"`
}
