package domain

// OutcomeKind discriminates the host's classification of a finished task.
type OutcomeKind string

// Outcome kind constants mirror the host's task-finish classifications.
const (
	// OutcomeSuccess indicates the host reports the task as successful.
	OutcomeSuccess OutcomeKind = "success"

	// OutcomeSkipped indicates the host skipped the task.
	OutcomeSkipped OutcomeKind = "skipped"

	// OutcomeOther covers every other host classification; it is recorded
	// as a failure.
	OutcomeOther OutcomeKind = "other"
)

// Outcome is the host's classification of a finished task.
// UpToDate and FromCache apply only to OutcomeSuccess; Message applies only
// to OutcomeSkipped.
type Outcome struct {
	// Kind is the classification tag.
	Kind OutcomeKind `json:"kind"`

	// UpToDate reports whether the successful task was already up to date.
	UpToDate bool `json:"up_to_date,omitempty"`

	// FromCache reports whether the successful task was served from cache.
	FromCache bool `json:"from_cache,omitempty"`

	// Message is the optional skip reason.
	Message string `json:"message,omitempty"`
}

// TaskFinishEvent is one task-finish notification delivered by the host.
// Events arrive in arbitrary order relative to other host activity but are
// monotonic per task: each task finishes exactly once.
type TaskFinishEvent struct {
	// Path is the hierarchical task identifier.
	Path string `json:"path"`

	// StartTimeMillis is the task's start time in epoch milliseconds.
	StartTimeMillis int64 `json:"start_time_ms"`

	// EndTimeMillis is the task's end time in epoch milliseconds.
	EndTimeMillis int64 `json:"end_time_ms"`

	// Outcome is the host's completion classification.
	Outcome Outcome `json:"outcome"`
}

// DurationMillis returns the event's duration clamped to be non-negative.
// Clock anomalies on the host can produce end times before start times;
// those are recorded as zero-duration rather than propagated.
func (e TaskFinishEvent) DurationMillis() int64 {
	d := e.EndTimeMillis - e.StartTimeMillis
	if d < 0 {
		return 0
	}
	return d
}

// Record converts the event into an immutable TaskRecord.
func (e TaskFinishEvent) Record() TaskRecord {
	return TaskRecord{
		Path:           e.Path,
		DurationMillis: e.DurationMillis(),
		Status:         e.Outcome.Status(),
	}
}

// Status maps the host outcome onto the TaskStatus variant.
// Unknown outcome kinds map to failed; observation never rejects an event.
func (o Outcome) Status() TaskStatus {
	switch o.Kind {
	case OutcomeSuccess:
		return SuccessStatus(o.UpToDate, o.FromCache)
	case OutcomeSkipped:
		return SkippedStatus(o.Message)
	case OutcomeOther:
		return FailedStatus()
	default:
		return FailedStatus()
	}
}

// BuildResult is the host's end-of-run signal.
type BuildResult struct {
	// Succeeded reports whether the run passed. A nil value means the host
	// provided no result signal; the run is reported as FAILED.
	Succeeded *bool `json:"succeeded"`

	// EndTimeMillis is the host's wall-clock time at run end in epoch
	// milliseconds. Zero when unavailable.
	EndTimeMillis int64 `json:"end_time_ms,omitempty"`
}

// Passed reports whether the host delivered an affirmative result.
// A missing result signal counts as a failure.
func (r BuildResult) Passed() bool {
	return r.Succeeded != nil && *r.Succeeded
}
