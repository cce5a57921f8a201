package control

import "testing"

func TestRunStateTransitions(t *testing.T) {
	var state RunState

	if state.Running() {
		t.Fatalf("zero value must be stopped")
	}

	state.Start()
	state.Start()
	if !state.Running() {
		t.Fatalf("expected running after start")
	}

	state.Stop()
	state.Stop()
	if state.Running() {
		t.Fatalf("expected stopped after stop")
	}
}
