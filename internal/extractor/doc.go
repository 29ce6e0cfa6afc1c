// Package extractor turns a documentation page's HTML into a
// model.Document.
//
// Extraction runs a chain of strategies. Each strategy locates a content
// container (a CSS selector, the readability algorithm, or the whole
// body) and builds a Document from it. The first Document with enough
// words wins. Strategies are pure functions of the page, so extracting
// the same HTML twice yields equal Documents.
package extractor
