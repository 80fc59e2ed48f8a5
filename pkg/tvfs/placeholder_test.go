package tvfs

import "testing"

// TestPlaceholder_RoundTrip checks that Substitute expands each template
// to the expected value (the "%%" escape yields a literal "%") and that
// expanding twice with the same Vars yields the same result.
func TestPlaceholder_RoundTrip(t *testing.T) {
	vars := Vars{User: "alice", Home: "/srv/alice", Extra: map[string]string{"tier": "gold"}}

	tests := []struct {
		native string
		want   string
	}{
		{"%h/incoming", "/srv/alice/incoming"},
		{"%u", "alice"},
		{"/pool/%<tier>/data", "/pool/gold/data"},
		{"literal%%percent", "literal%percent"},
		{"/mixed/%<tier>/%<tier>", "/mixed/gold/gold"},
	}
	for _, tc := range tests {
		got1, err := Substitute(tc.native, vars)
		if err != nil {
			t.Fatalf("Substitute(%q) error = %v", tc.native, err)
		}
		if got1 != tc.want {
			t.Errorf("Substitute(%q) = %q, want %q", tc.native, got1, tc.want)
		}
		got2, _ := Substitute(tc.native, vars)
		if got1 != got2 {
			t.Errorf("Substitute(%q) not stable across calls: %q vs %q", tc.native, got1, got2)
		}
	}
}

func TestPlaceholder_UndefinedKeyErrors(t *testing.T) {
	_, err := Substitute("/pool/%<missing>", Vars{})
	if err == nil {
		t.Fatalf("Substitute() with undefined key = nil error, want error")
	}
}

func TestValidatePlaceholders_ShorthandOnlyAtStart(t *testing.T) {
	if err := ValidatePlaceholders("%h/incoming"); err != nil {
		t.Errorf("ValidatePlaceholders(%%h/incoming) error = %v, want nil", err)
	}
	if err := ValidatePlaceholders("/incoming/%h"); err == nil {
		t.Errorf("ValidatePlaceholders(/incoming/%%h) = nil, want error (shorthand mid-path)")
	}
	if err := ValidatePlaceholders("%h/%u"); err == nil {
		t.Errorf("ValidatePlaceholders(%%h/%%u) = nil, want error (two shorthand tokens)")
	}
}

func TestValidatePlaceholders_CustomKeyAnywhere(t *testing.T) {
	if err := ValidatePlaceholders("/pool/%<tier>/archive/%<tier>"); err != nil {
		t.Errorf("ValidatePlaceholders() error = %v, want nil", err)
	}
}

func TestValidatePlaceholders_Malformed(t *testing.T) {
	cases := []string{"/pool/%<unterminated", "trailing%", "/bad/%z"}
	for _, c := range cases {
		if err := ValidatePlaceholders(c); err == nil {
			t.Errorf("ValidatePlaceholders(%q) = nil, want error", c)
		}
	}
}
