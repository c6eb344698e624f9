// Package domain provides shared domain types for the BUILDTRACK build observer.
// These types are used across all internal packages to ensure consistent data structures.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
//
// All JSON field names use snake_case per architecture requirements.
package domain

import "strings"

// StatusKind discriminates the TaskStatus tagged variant.
// Exactly one kind applies to each completed task.
type StatusKind string

// Status kind constants define the three task completion classifications.
const (
	// StatusSuccess indicates the task executed (or was satisfied from a
	// previous execution) without error.
	StatusSuccess StatusKind = "success"

	// StatusSkipped indicates the host skipped the task, optionally with
	// an explanatory message.
	StatusSkipped StatusKind = "skipped"

	// StatusFailed indicates any other outcome. The host provides no
	// further failure detail.
	StatusFailed StatusKind = "failed"
)

// TaskStatus is the tagged completion status of a single task.
// The payload fields are only meaningful for their respective kind:
// UpToDate and FromCache for StatusSuccess, Message for StatusSkipped.
// Construct values through SuccessStatus, SkippedStatus, or FailedStatus
// so exactly one kind is ever set.
type TaskStatus struct {
	// Kind is the variant tag.
	Kind StatusKind `json:"kind"`

	// UpToDate reports whether a successful task was already up to date.
	UpToDate bool `json:"up_to_date,omitempty"`

	// FromCache reports whether a successful task was restored from the
	// host's build cache.
	FromCache bool `json:"from_cache,omitempty"`

	// Message is the optional skip reason supplied by the host.
	Message string `json:"message,omitempty"`
}

// SuccessStatus returns a success status with the given host flags.
func SuccessStatus(upToDate, fromCache bool) TaskStatus {
	return TaskStatus{Kind: StatusSuccess, UpToDate: upToDate, FromCache: fromCache}
}

// SkippedStatus returns a skipped status with an optional message.
func SkippedStatus(message string) TaskStatus {
	return TaskStatus{Kind: StatusSkipped, Message: message}
}

// FailedStatus returns a failed status.
func FailedStatus() TaskStatus {
	return TaskStatus{Kind: StatusFailed}
}

// Render produces the report representation of the status:
//
//	SUCCESS[ UP-TO-DATE][ FROM-CACHE]
//	SKIPPED[ <message>]
//	FAILED
//
// Field order is part of the report contract for downstream parsers.
func (s TaskStatus) Render() string {
	switch s.Kind {
	case StatusSuccess:
		var b strings.Builder
		b.WriteString("SUCCESS")
		if s.UpToDate {
			b.WriteString(" UP-TO-DATE")
		}
		if s.FromCache {
			b.WriteString(" FROM-CACHE")
		}
		return b.String()
	case StatusSkipped:
		if s.Message != "" {
			return "SKIPPED " + s.Message
		}
		return "SKIPPED"
	case StatusFailed:
		return "FAILED"
	default:
		// Unknown kinds render as FAILED rather than corrupting the report.
		return "FAILED"
	}
}

// TaskRecord is one completed task as recorded in the report.
// Records are immutable once created and ordered by arrival.
type TaskRecord struct {
	// Path is the hierarchical task identifier (e.g., ":app:assembleDebug").
	Path string `json:"path"`

	// DurationMillis is the task's wall-clock duration in milliseconds.
	// Always non-negative; negative host-computed values are clamped to 0
	// before a record is created.
	DurationMillis int64 `json:"duration_ms"`

	// Status is the task's completion classification.
	Status TaskStatus `json:"status"`
}
