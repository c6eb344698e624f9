package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/mrz1836/buildtrack/internal/constants"
	"github.com/mrz1836/buildtrack/internal/domain"
)

// Rendering of the report document.
//
// Field order and quoting are part of the contract for downstream parsers,
// so the document is emitted line by line rather than through a generic
// YAML marshaler. The output is nonetheless valid YAML and round-trips
// through yaml.Unmarshal (verified in tests).

// renderHeader emits the fields written when the artifact is opened:
// format version, project name, and run start time.
func renderHeader(projectName string, startTimeMillis int64) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "version: %d\n", constants.ReportFormatVersion)
	fmt.Fprintf(&b, "project: %s\n", strconv.Quote(projectName))
	fmt.Fprintf(&b, "buildStartTime: %d\n", startTimeMillis)
	return b.Bytes()
}

// renderTaskNames emits the buildTaskNames list. An empty list renders as an
// explicit empty sequence so the document stays parseable.
func renderTaskNames(taskNames []string) []byte {
	var b bytes.Buffer
	if len(taskNames) == 0 {
		b.WriteString("buildTaskNames: []\n")
		return b.Bytes()
	}
	b.WriteString("buildTaskNames:\n")
	for _, name := range taskNames {
		fmt.Fprintf(&b, "- %s\n", strconv.Quote(name))
	}
	return b.Bytes()
}

// renderTaskDetailsKey emits the taskDetails mapping key, with an explicit
// empty sequence when no records follow.
func renderTaskDetailsKey(empty bool) []byte {
	if empty {
		return []byte("taskDetails: []\n")
	}
	return []byte("taskDetails:\n")
}

// renderTaskEntry emits one task record as a taskDetails sequence entry.
func renderTaskEntry(rec domain.TaskRecord) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "- path: %s\n", strconv.Quote(rec.Path))
	fmt.Fprintf(&b, "  duration: %d\n", rec.DurationMillis)
	fmt.Fprintf(&b, "  status: %s\n", strconv.Quote(rec.Status.Render()))
	return b.Bytes()
}

// renderFooter emits the terminal fields: final status and total duration.
func renderFooter(status constants.BuildStatus, durationMillis int64) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "buildStatus: %s\n", strconv.Quote(status.String()))
	fmt.Fprintf(&b, "buildDuration: %d\n", durationMillis)
	return b.Bytes()
}

// renderDocument composes the complete report in contract order:
//
//	version, project, buildStartTime, buildTaskNames, taskDetails,
//	buildStatus, buildDuration.
func renderDocument(projectName string, startTimeMillis int64, taskNames []string,
	records []domain.TaskRecord, status constants.BuildStatus, durationMillis int64) []byte {
	var b bytes.Buffer
	b.Write(renderHeader(projectName, startTimeMillis))
	b.Write(renderTaskNames(taskNames))
	b.Write(renderTaskDetailsKey(len(records) == 0))
	for _, rec := range records {
		b.Write(renderTaskEntry(rec))
	}
	b.Write(renderFooter(status, durationMillis))
	return b.Bytes()
}
