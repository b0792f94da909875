// Package logging provides the structured logging interface used by the
// result aggregator, backed by zerolog.
package logging
