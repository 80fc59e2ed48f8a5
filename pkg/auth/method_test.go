package auth

import "testing"

// TestAvailableMethods_ScenarioS3 implements spec scenario S3: method
// narrowing through set_verified.
func TestAvailableMethods_ScenarioS3(t *testing.T) {
	available := AvailableMethods{
		NewMethodSet(MethodKindPassword, MethodKindToken),
		NewMethodSet(MethodKindPassword),
	}

	if !available.IsAuthNecessary() {
		t.Fatalf("IsAuthNecessary() = false before any verification")
	}

	stillNecessary := available.SetVerified(BitPassword)
	if !stillNecessary {
		t.Fatalf("SetVerified(password) returned false, want true (token route remains)")
	}
	if len(available) != 1 || available[0] != NewMethodSet(MethodKindToken) {
		t.Fatalf("after SetVerified(password): available = %v, want [{token}]", available)
	}

	stillNecessary = available.SetVerified(BitToken)
	if stillNecessary {
		t.Fatalf("SetVerified(token) returned true, want false (fully satisfied)")
	}
	if len(available) != 1 || !available[0].IsEmpty() {
		t.Fatalf("after SetVerified(token): available = %v, want [{}]", available)
	}
	if available.IsAuthNecessary() {
		t.Fatalf("IsAuthNecessary() = true after full narrowing, want false")
	}
}

// TestMethodSetNarrowing_Property2 implements testable property 2:
// set_verified only ever removes elements (never adds routes back), and
// is_auth_necessary transitions monotonically from true to false.
func TestMethodSetNarrowing_Property2(t *testing.T) {
	available := AvailableMethods{
		NewMethodSet(MethodKindPassword, MethodKindToken),
		NewMethodSet(MethodKindPassword),
	}
	before := len(available)

	available.SetVerified(BitPassword)
	if len(available) > before {
		t.Fatalf("SetVerified grew the route count: %d -> %d", before, len(available))
	}

	sawFalse := false
	for _, bit := range []MethodBit{BitToken} {
		necessary := available.SetVerified(bit)
		if !necessary {
			sawFalse = true
		}
		if sawFalse && necessary {
			t.Fatalf("is_auth_necessary went back to true after becoming false — not monotone")
		}
	}
}

func TestMethodSet_IsSubsetOf(t *testing.T) {
	full := NewMethodSet(MethodKindPassword, MethodKindToken)
	passwordOnly := NewMethodSet(MethodKindPassword)
	if !passwordOnly.IsSubsetOf(full) {
		t.Errorf("IsSubsetOf: password should be a subset of password+token")
	}
	if full.IsSubsetOf(passwordOnly) {
		t.Errorf("IsSubsetOf: password+token should not be a subset of password-only")
	}
}
