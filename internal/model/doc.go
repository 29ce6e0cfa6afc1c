// Package model defines the core data structures used throughout docscore.
//
// This package contains the following main types:
//   - Document: The structured content extracted from a documentation page
//   - CriterionResult: The score, breakdown and suggestions for one criterion
//   - AnalysisResult: The complete per-URL result with summary
//   - Outcome: A batch entry holding either a result or a failure record
//
// Models live in their own package so that the extractor, analyzers,
// aggregator and report writers can share them without import cycles.
// All types serialize to JSON with snake_case field names.
package model
