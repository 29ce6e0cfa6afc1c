// Package metrics implements the deterministic text metrics used by the
// analyzers: sentence and syllable counting, readability indices,
// technical term density, heading hierarchy, paragraph lengths, voice,
// tone and the presence of examples, steps and code.
//
// Every function is pure and total. Degenerate input (no words, no
// sentences, no headings) yields zero values rather than an error or NaN,
// so analyzers can combine metrics without guarding each division.
package metrics
