package report

// State represents the lifecycle state of the report artifact.
type State string

// Report state constants define the valid states of the artifact lifecycle.
//
// The state machine follows this flow:
//
//	Unopened → Open, Suppressed
//	Open → Finalized, Discarded
//
// Suppressed, Finalized, and Discarded are terminal.
const (
	// StateUnopened indicates no artifact has been created yet.
	StateUnopened State = "unopened"

	// StateOpen indicates the artifact exists and accepts task records.
	StateOpen State = "open"

	// StateSuppressed indicates artifact creation failed and all further
	// operations are permanent no-ops. Observation degrades gracefully;
	// it never fails the host run.
	StateSuppressed State = "suppressed"

	// StateFinalized indicates the artifact was completed and renamed to
	// its final extension. No further writes are accepted.
	StateFinalized State = "finalized"

	// StateDiscarded indicates the artifact was closed and deleted because
	// the run turned out not to warrant recording. No further writes are
	// accepted.
	StateDiscarded State = "discarded"
)

// String returns the string representation of the State.
// This implements fmt.Stringer for convenient logging and debugging.
func (s State) String() string {
	return string(s)
}

// validTransitions defines all allowed state transitions in the report
// lifecycle. Terminal states are those not present as keys.
//
//nolint:gochecknoglobals // Read-only lookup table
var validTransitions = map[State][]State{
	StateUnopened: {StateOpen, StateSuppressed},
	StateOpen:     {StateFinalized, StateDiscarded},
}

// terminalStates defines states where no further transitions are allowed.
// Intentionally duplicated from validTransitions for O(1) lookup.
//
//nolint:gochecknoglobals // Read-only lookup table
var terminalStates = map[State]bool{
	StateSuppressed: true,
	StateFinalized:  true,
	StateDiscarded:  true,
}

// IsValidTransition checks if a transition from one state to another is allowed.
// Returns false for transitions from terminal states or to the same state.
func IsValidTransition(from, to State) bool {
	if from == to {
		return false
	}
	for _, target := range validTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

// IsTerminalState returns true for states where no further transitions are
// allowed. Terminal states: Suppressed, Finalized, Discarded.
func IsTerminalState(s State) bool {
	return terminalStates[s]
}
