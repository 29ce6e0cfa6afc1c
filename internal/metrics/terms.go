package metrics

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultJargon lists terms counted as technical regardless of casing.
var DefaultJargon = []string{
	"api", "sdk", "json", "xml", "yaml", "html", "css", "javascript",
	"integration", "endpoint", "endpoints", "authentication", "authorization",
	"webhook", "webhooks", "callback", "callbacks", "parameter", "parameters",
	"payload", "request", "response", "configuration", "implementation",
	"deployment", "initialization", "instantiation", "middleware", "runtime",
	"serialization", "deserialization", "latency", "throughput", "idempotent",
	"asynchronous", "synchronous", "namespace", "schema", "token", "oauth",
	"cli", "url", "uri", "http", "https", "repository", "dependency",
	"dependencies", "compile", "compiler", "instance", "container",
}

var ordinal = regexp.MustCompile(`^\d+(st|nd|rd|th)$`)

// TermStats describes technical vocabulary in a text.
type TermStats struct {
	Words     int
	Technical int

	// Density is Technical / Words.
	Density float64

	// Terms holds distinct technical tokens in first-seen order.
	Terms []string
}

// TechnicalTerms counts technical tokens in text. A token is technical
// when it appears in jargon (case-insensitive), is CamelCase, is ALL_CAPS
// with at least two letters, is snake_case, or mixes letters and digits.
func TechnicalTerms(text string, jargon []string) TermStats {
	lookup := make(map[string]bool, len(jargon))
	for _, j := range jargon {
		lookup[strings.ToLower(j)] = true
	}

	words := Words(text)
	stats := TermStats{Words: len(words), Terms: make([]string, 0)}
	seen := make(map[string]bool)

	for _, w := range words {
		lower := strings.ToLower(w)
		if !lookup[lower] && !isIdentifierLike(w) {
			continue
		}
		stats.Technical++
		if !seen[lower] {
			seen[lower] = true
			stats.Terms = append(stats.Terms, w)
		}
	}
	stats.Density = ratio(float64(stats.Technical), float64(stats.Words))
	return stats
}

// isIdentifierLike reports whether a token looks like code or an acronym.
func isIdentifierLike(w string) bool {
	var letters, upper, digits int
	camel := false
	var prev rune
	for i, r := range w {
		switch {
		case unicode.IsUpper(r):
			letters++
			upper++
			if i > 0 && unicode.IsLower(prev) {
				camel = true
			}
		case unicode.IsLetter(r):
			letters++
		case unicode.IsDigit(r):
			digits++
		}
		prev = r
	}

	switch {
	case camel:
		return true
	case letters >= 2 && upper == letters:
		return true
	case letters > 0 && strings.Contains(w, "_"):
		return true
	case letters > 0 && digits > 0:
		return !ordinal.MatchString(strings.ToLower(w))
	default:
		return false
	}
}
