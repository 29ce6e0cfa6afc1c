// Package scoring implements the four documentation analyzers:
// readability, structure, completeness and style.
//
// Each analyzer blends deterministic text metrics from package metrics
// into a score in [0, 10], records the sub-metrics in a breakdown map and
// derives suggestions ordered worst first. An optional AI supplement adds
// "ai_" breakdown entries and reviewer suggestions; when the supplement
// is unavailable the result is computed from metrics alone. Analyzers
// never fail and share only the read-only Document, so they can run
// concurrently.
package scoring
