package risk

import "testing"

func TestGateAllow(t *testing.T) {
	gate := Gate{MinProfitUSD: 0.10}

	if !gate.Allow(0.15) {
		t.Fatalf("0.15 should clear a 0.10 threshold")
	}
	if gate.Allow(0.10) {
		t.Fatalf("threshold must be strict: 0.10 does not clear 0.10")
	}
	if gate.Allow(-0.05) {
		t.Fatalf("losses never clear the gate")
	}

	gate = Gate{MinProfitUSD: 0.20}
	if gate.Allow(0.15) {
		t.Fatalf("0.15 should not clear a 0.20 threshold")
	}
}
