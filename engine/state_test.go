package engine

import "testing"

// TestCanTransition checks the lifecycle table in both directions
func TestCanTransition(t *testing.T) {
	validTransitions := map[State][]State{
		StateIdle:    {StateRunning, StateStopped},
		StateRunning: {StatePaused, StateStopped},
		StatePaused:  {StateRunning, StateStopped},
	}

	for from, validTos := range validTransitions {
		for _, to := range validTos {
			if !CanTransition(from, to) {
				t.Errorf("Expected transition %s -> %s to be valid, but it was rejected", from, to)
			}
		}
	}

	invalidTransitions := []struct {
		from State
		to   State
		desc string
	}{
		{StateIdle, StatePaused, "Idle -> Paused (must start first)"},
		{StateRunning, StateIdle, "Running -> Idle (can't go backwards)"},
		{StatePaused, StateIdle, "Paused -> Idle (can't go backwards)"},
		{StateRunning, StateRunning, "Running -> Running (no self loop)"},
		{StateStopped, StateRunning, "Stopped -> Running (terminal)"},
		{StateStopped, StateIdle, "Stopped -> Idle (terminal)"},
	}

	for _, tc := range invalidTransitions {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("Expected transition %s -> %s to be invalid, but it was allowed (%s)", tc.from, tc.to, tc.desc)
		}
	}
}

func TestStateString(t *testing.T) {
	if got := State(99).String(); got != "unknown" {
		t.Errorf("Expected unknown, got %q", got)
	}
	if got := StatePaused.String(); got != "paused" {
		t.Errorf("Expected paused, got %q", got)
	}
}
