// Package logging provides structured logging for the metrics bridge.
//
// It wraps log/slog with level parsing, JSON/text output selection, and
// default service/version fields. Loggers are constructed once in main
// and passed down explicitly; there is no package-level logger.
package logging
