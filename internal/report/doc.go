// Package report renders analysis results and stores them on disk.
//
// Writers share the Writer interface so the CLI can pick one by flag:
//   - SimpleWriter: plain text for terminal display
//   - JSONWriter: the result field names as serialized by the model package
//   - MarkdownWriter: tables and a mermaid chart for sharing
//
// FileStore saves per-URL results, extracted documents and batch
// summaries under an output directory.
package report
