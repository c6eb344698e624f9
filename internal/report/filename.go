package report

import (
	"strings"
	"time"

	"github.com/mrz1836/buildtrack/internal/constants"
)

// FileBaseName computes the report file name (without extension) for a run:
// "<timestamp>-<project>-<tasknames>", where the timestamp renders the run
// start time and the task segment joins the last colon-delimited component of
// each requested task, lower-cased and hyphen-joined. Flag-like entries
// (leading "-") and entries with no trailing component are excluded.
//
// When no usable task names exist (default-tasks runs) the segment is dropped
// entirely, leaving "<timestamp>-<project>".
func FileBaseName(startTimeMillis int64, projectName string, requestedTasks []string) string {
	parts := []string{
		time.UnixMilli(startTimeMillis).Format(constants.TimestampLayout),
		sanitizeSegment(projectName),
	}
	if seg := taskSegment(requestedTasks); seg != "" {
		parts = append(parts, seg)
	}
	return strings.Join(parts, "-")
}

// taskSegment builds the task-name portion of the file name.
func taskSegment(requestedTasks []string) string {
	names := make([]string, 0, len(requestedTasks))
	for _, task := range requestedTasks {
		if strings.HasPrefix(task, "-") {
			// Flag-like entries (e.g. "--stacktrace") are not tasks.
			continue
		}
		name := lastPathComponent(task)
		if name == "" {
			continue
		}
		names = append(names, strings.ToLower(name))
	}
	return strings.Join(names, "-")
}

// lastPathComponent returns the trailing segment of a colon-delimited
// hierarchical task identifier (":app:assembleDebug" → "assembleDebug").
func lastPathComponent(task string) string {
	if idx := strings.LastIndex(task, ":"); idx >= 0 {
		return task[idx+1:]
	}
	return task
}

// sanitizeSegment makes a string safe for use in a file name by replacing
// path separators and whitespace with hyphens.
func sanitizeSegment(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', '\t':
			return '-'
		default:
			return r
		}
	}, s)
}
