// Package logging assembles structured slog loggers and field helpers used
// across mriseq.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so loaders and the classifier tag
// log lines with the same keys. Console output goes to stderr so command
// results on stdout stay machine readable; an optional log directory receives
// a JSON copy of every record. The package also provides a no-op logger for
// tests and library callers that pass no logger.
package logging
