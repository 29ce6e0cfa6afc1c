// Package pipeline runs the analysis of a documentation page as a
// sequence of steps: fetch, extract, score and aggregate.
//
// Each step receives the shared State and fills in its part of it. The
// name of the step that fails becomes the stage of the failure record, so
// batch output tells the user where a URL stopped.
//
// BatchProcessor analyzes many URLs with bounded concurrency using
// errgroup. A failing URL is recorded as a model.Failure and never stops
// the others.
package pipeline
