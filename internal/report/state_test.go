package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestIsValidTransition_AllValidTransitions tests all valid transitions
// defined in the report lifecycle.
func TestIsValidTransition_AllValidTransitions(t *testing.T) {
	tests := []struct {
		name string
		from State
		to   State
	}{
		{"unopened to open", StateUnopened, StateOpen},
		{"unopened to suppressed", StateUnopened, StateSuppressed},
		{"open to finalized", StateOpen, StateFinalized},
		{"open to discarded", StateOpen, StateDiscarded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsValidTransition(tt.from, tt.to),
				"transition from %s to %s should be valid", tt.from, tt.to)
		})
	}
}

// TestIsValidTransition_InvalidTransitions tests transitions that are NOT allowed.
func TestIsValidTransition_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		from State
		to   State
	}{
		// Cannot skip the open state
		{"unopened to finalized", StateUnopened, StateFinalized},
		{"unopened to discarded", StateUnopened, StateDiscarded},

		// Terminal states cannot transition
		{"finalized to open", StateFinalized, StateOpen},
		{"finalized to discarded", StateFinalized, StateDiscarded},
		{"discarded to open", StateDiscarded, StateOpen},
		{"discarded to finalized", StateDiscarded, StateFinalized},
		{"suppressed to open", StateSuppressed, StateOpen},

		// Transitions are one-way
		{"open to unopened", StateOpen, StateUnopened},
		{"open to suppressed", StateOpen, StateSuppressed},

		// Same state is not a transition
		{"open to open", StateOpen, StateOpen},
		{"unopened to unopened", StateUnopened, StateUnopened},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, IsValidTransition(tt.from, tt.to),
				"transition from %s to %s should be invalid", tt.from, tt.to)
		})
	}
}

// TestIsTerminalState verifies terminal state classification.
func TestIsTerminalState(t *testing.T) {
	assert.False(t, IsTerminalState(StateUnopened))
	assert.False(t, IsTerminalState(StateOpen))
	assert.True(t, IsTerminalState(StateSuppressed))
	assert.True(t, IsTerminalState(StateFinalized))
	assert.True(t, IsTerminalState(StateDiscarded))
}
