// Package testutil provides testing utilities for BUILDTRACK.
//
// This package contains mock errors and test helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockReadFailed indicates a mock read failure (used in tests).
	ErrMockReadFailed = errors.New("read failed")
)
