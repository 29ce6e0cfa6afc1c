// Package main provides the entry point for the docscore CLI.
//
// docscore fetches documentation pages and scores them on readability,
// structure, completeness and style, with optional AI reviewer input.
//
// Usage:
//
//	docscore analyze <url>
//	docscore analyze --list <file>
//	docscore serve --addr :5000
//
// See --help for all available options.
package main

func main() {
	Execute()
}
