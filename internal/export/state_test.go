package export

import "testing"

func TestStateTransitions(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateIdle, StateRendering, true},
		{StateIdle, StateFailed, true},
		{StateRendering, StateEncoding, true},
		{StateRendering, StateCancelled, true},
		{StateRendering, StateFailed, true},
		{StateEncoding, StateCompleted, true},
		{StateEncoding, StateCancelled, true},
		{StateIdle, StateCompleted, false},
		{StateRendering, StateCompleted, false},
		{StateCompleted, StateRendering, false},
		{StateCancelled, StateRendering, false},
		{StateFailed, StateIdle, false},
	}
	for _, tt := range tests {
		if got := isAllowedTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTerminalStates(t *testing.T) {
	for _, s := range []State{StateCompleted, StateCancelled, StateFailed} {
		if !IsTerminal(s) {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []State{StateIdle, StateRendering, StateEncoding} {
		if IsTerminal(s) {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestJobStateIsSetOnce(t *testing.T) {
	j := &Job{state: StateRendering}
	if !j.setState(StateCancelled) {
		t.Fatal("rendering -> cancelled should be allowed")
	}
	if j.setState(StateFailed) {
		t.Error("terminal state must not change again")
	}
	if j.State() != StateCancelled {
		t.Errorf("state = %s, want cancelled", j.State())
	}
}
