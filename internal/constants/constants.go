// Package constants provides shared constant values for BUILDTRACK.
// This package has no dependencies and can be imported by any other package.
package constants

// AppName is the canonical application name used in logs and file paths.
const AppName = "buildtrack"

// ReportFormatVersion is the version number written into every report header.
// Downstream parsers key their field expectations off this value.
const ReportFormatVersion = 1

// ReportExtension is the file extension of a finalized report.
const ReportExtension = ".yaml"

// ProvisionalExtension marks a report file that is still being written.
// The file is atomically renamed to ReportExtension on successful finalize.
const ProvisionalExtension = ".yaml.tmp"

// TimestampLayout is the Go time layout used in report filenames.
// Produces strings like "2025-12-27--10-00-00".
const TimestampLayout = "2006-01-02--15-04-05"

// Directory and file permission constants.
const (
	// DirPerm is the permission mode for created report directories.
	DirPerm = 0o750

	// FilePerm is the permission mode for created report files.
	FilePerm = 0o600
)

// EnvPrefix is the environment variable prefix for configuration overrides.
// Example: BUILDTRACK_DISABLED=true
const EnvPrefix = "BUILDTRACK"
