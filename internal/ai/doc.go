// Package ai requests qualitative reviews of documentation excerpts from
// a large language model.
//
// The analyzers call a Supplementer once per criterion. A supplement is
// optional: any failure is logged and reported as a nil result, and the
// analyzers fall back to their deterministic metrics. GeminiClient talks
// to the Gemini generateContent REST API; Nop is used when no API key
// is configured.
package ai
