// Package errors provides centralized error handling for BUILDTRACK.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
// The report writer and listener deliberately degrade instead of returning
// errors (observation must never fail the host build), so the catalog covers
// only the surfaces that do error: logging setup and the replay driver.
var (
	// ErrMalformedEvent indicates a replayed event line could not be parsed.
	ErrMalformedEvent = errors.New("malformed event")

	// ErrEventStreamClosed indicates the event stream ended before a run
	// result was delivered.
	ErrEventStreamClosed = errors.New("event stream closed")

	// ErrInvalidLogLevel indicates an unrecognized log level was configured.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrReportNotFound indicates the expected report file does not exist.
	ErrReportNotFound = errors.New("report not found")

	// ErrVerificationFailed indicates a replayed run's report did not parse
	// back as well-formed YAML.
	ErrVerificationFailed = errors.New("report verification failed")
)
