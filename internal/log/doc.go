// Package log provides slog handlers that keep credentials out of log output.
//
// docscore logs request URLs, HTTP errors and configuration at debug
// level. The AI client authenticates with an API key passed as a URL query
// parameter, so a careless log line (or a wrapped *url.Error) can leak it.
// SecureHandler wraps any slog.Handler and:
//   - masks attributes whose key names a credential (api_key, token, cookie)
//   - masks string values shaped like credentials (Google API keys, JWTs,
//     bearer tokens)
//   - rewrites credential query parameters (key=, api_key=, token=) inside
//     URLs and error messages, keeping the rest of the text readable
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log
