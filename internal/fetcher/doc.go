// Package fetcher downloads documentation pages over HTTP.
//
// Fetch validates the URL, sends browser-like headers and retries
// transient failures (transport errors, 5xx, 408, 425 and 429) with
// capped exponential backoff. Other client errors fail on the first
// attempt. A page whose visible text is shorter than the configured
// minimum is rejected with InsufficientContentError so that error pages
// and JavaScript shells are not scored.
package fetcher
