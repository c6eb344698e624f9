package replay

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/buildtrack/internal/errors"
)

// Document is the parsed form of an emitted report, used to verify that a
// replayed run produced a well-formed artifact. Field names follow the report
// contract exactly.
type Document struct {
	// Version is the report format version.
	Version int `yaml:"version"`

	// Project is the observed project name.
	Project string `yaml:"project"`

	// BuildStartTime is the run start time in epoch milliseconds.
	BuildStartTime int64 `yaml:"buildStartTime"`

	// BuildTaskNames is the final task-name list.
	BuildTaskNames []string `yaml:"buildTaskNames"`

	// TaskDetails holds one entry per recorded task, in arrival order.
	TaskDetails []TaskDetail `yaml:"taskDetails"`

	// BuildStatus is the rendered final status ("SUCCESS" or "FAILED").
	BuildStatus string `yaml:"buildStatus"`

	// BuildDuration is the total run duration in milliseconds.
	BuildDuration int64 `yaml:"buildDuration"`
}

// TaskDetail is one recorded task within a Document.
type TaskDetail struct {
	// Path is the hierarchical task identifier.
	Path string `yaml:"path"`

	// Duration is the task duration in milliseconds.
	Duration int64 `yaml:"duration"`

	// Status is the rendered task status string.
	Status string `yaml:"status"`
}

// VerifyReport reads the report at path and parses it back into a Document.
// Returns ErrReportNotFound when the file does not exist and a wrapped
// ErrVerificationFailed when the contents do not parse as a report.
func VerifyReport(path string) (*Document, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path comes from the writer, not user input
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrReportNotFound, "%s", path)
		}
		return nil, errors.Wrap(err, "failed to read report")
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrVerificationFailed, err.Error())
	}
	if doc.Version == 0 || doc.BuildStatus == "" {
		return nil, errors.Wrap(errors.ErrVerificationFailed, "missing version or buildStatus")
	}
	return &doc, nil
}
