package auth

import "testing"

// TestIPAllowed_ScenarioS2 implements spec scenario S2: a disallowed CIDR
// block rejects, except for an explicitly allowed IP within it.
func TestIPAllowed_ScenarioS2(t *testing.T) {
	disallowed := []string{"192.0.2.0/24"}
	allowed := []string{"192.0.2.7"}

	if ipAllowed("192.0.2.1", disallowed, allowed) {
		t.Errorf("ipAllowed(192.0.2.1) = true, want false (in disallowed block)")
	}
	if !ipAllowed("192.0.2.7", disallowed, allowed) {
		t.Errorf("ipAllowed(192.0.2.7) = false, want true (explicit exception)")
	}
	if !ipAllowed("203.0.113.5", disallowed, allowed) {
		t.Errorf("ipAllowed(203.0.113.5) = false, want true (outside any disallowed block)")
	}
}
