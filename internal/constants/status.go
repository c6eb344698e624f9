package constants

// BuildStatus represents the final outcome of an observed build run.
type BuildStatus string

// Build status constants define the two terminal run outcomes.
// A run with no result signal from the host is reported as FAILED.
const (
	// BuildStatusSuccess indicates the host reported a successful run.
	BuildStatusSuccess BuildStatus = "SUCCESS"

	// BuildStatusFailed indicates the host reported failure, or supplied
	// no result signal at all.
	BuildStatusFailed BuildStatus = "FAILED"
)

// String returns the string representation of the BuildStatus.
// This implements fmt.Stringer for convenient logging and debugging.
func (s BuildStatus) String() string {
	return string(s)
}
