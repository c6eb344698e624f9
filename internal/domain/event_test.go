package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTaskFinishEvent_DurationMillis verifies duration computation including
// the clamp for clock anomalies.
func TestTaskFinishEvent_DurationMillis(t *testing.T) {
	tests := []struct {
		name  string
		start int64
		end   int64
		want  int64
	}{
		{"normal duration", 1000, 1050, 50},
		{"zero duration", 1000, 1000, 0},
		{"negative duration clamps to zero", 1050, 1000, 0},
		{"large duration", 0, 3_600_000, 3_600_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := TaskFinishEvent{Path: ":app:build", StartTimeMillis: tt.start, EndTimeMillis: tt.end}
			assert.Equal(t, tt.want, ev.DurationMillis())
		})
	}
}

// TestOutcome_Status verifies the mapping from host outcome classifications
// onto the TaskStatus variant.
func TestOutcome_Status(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    TaskStatus
	}{
		{"success", Outcome{Kind: OutcomeSuccess}, SuccessStatus(false, false)},
		{"up-to-date success", Outcome{Kind: OutcomeSuccess, UpToDate: true}, SuccessStatus(true, false)},
		{"cached success", Outcome{Kind: OutcomeSuccess, FromCache: true}, SuccessStatus(false, true)},
		{"skipped", Outcome{Kind: OutcomeSkipped, Message: "no work"}, SkippedStatus("no work")},
		{"other maps to failed", Outcome{Kind: OutcomeOther}, FailedStatus()},
		{"unknown kind maps to failed", Outcome{Kind: OutcomeKind("weird")}, FailedStatus()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outcome.Status())
		})
	}
}

// TestTaskFinishEvent_Record verifies record conversion carries the path,
// clamped duration, and mapped status.
func TestTaskFinishEvent_Record(t *testing.T) {
	ev := TaskFinishEvent{
		Path:            ":lib:compileJava",
		StartTimeMillis: 2000,
		EndTimeMillis:   1900,
		Outcome:         Outcome{Kind: OutcomeSuccess, UpToDate: true},
	}

	rec := ev.Record()
	assert.Equal(t, ":lib:compileJava", rec.Path)
	assert.Equal(t, int64(0), rec.DurationMillis, "negative duration should clamp to zero")
	assert.Equal(t, SuccessStatus(true, false), rec.Status)
}

// TestBuildResult_Passed verifies that a missing result signal counts as failure.
func TestBuildResult_Passed(t *testing.T) {
	succeeded := true
	failed := false

	assert.True(t, BuildResult{Succeeded: &succeeded}.Passed())
	assert.False(t, BuildResult{Succeeded: &failed}.Passed())
	assert.False(t, BuildResult{}.Passed(), "nil result signal should count as failure")
}
