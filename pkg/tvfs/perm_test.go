package tvfs

import "testing"

func TestDerivePerm(t *testing.T) {
	tests := []struct {
		name      string
		access    Access
		recursion Recursion
		want      Perm
	}{
		{"disabled", AccessDisabled, RecursionNone, 0},
		{"disabled with recursion still empty", AccessDisabled, RecursionApplyAndAllowStructureMod, 0},
		{"read-only no recursion", AccessReadOnly, RecursionNone, PermRead | PermListMounts},
		{"read-write no recursion", AccessReadWrite, RecursionNone, PermRead | PermListMounts | PermWrite},
		{
			"read-write apply",
			AccessReadWrite, RecursionApply,
			PermRead | PermListMounts | PermWrite | PermApplyRecursively,
		},
		{
			"read-write full structure mod",
			AccessReadWrite, RecursionApplyAndAllowStructureMod,
			PermRead | PermListMounts | PermWrite | PermApplyRecursively |
				PermAllowStructureModification | PermRemove | PermRename,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DerivePerm(tc.access, tc.recursion); got != tc.want {
				t.Errorf("DerivePerm(%v, %v) = %v, want %v", tc.access, tc.recursion, got, tc.want)
			}
		})
	}
}

func TestPerm_HasWithWithout(t *testing.T) {
	p := PermRead.With(PermWrite)
	if !p.Has(PermRead) || !p.Has(PermWrite) {
		t.Fatalf("With() did not set expected bits: %v", p)
	}
	if p.Has(PermRemove) {
		t.Fatalf("Has() reported unset bit as set")
	}
	p = p.Without(PermWrite)
	if p.Has(PermWrite) {
		t.Fatalf("Without() did not clear bit")
	}
}

func TestAccessRecursionStringRoundTrip(t *testing.T) {
	for _, a := range []Access{AccessDisabled, AccessReadOnly, AccessReadWrite} {
		got, ok := ParseAccess(a.String())
		if !ok || got != a {
			t.Errorf("ParseAccess(%q) = (%v, %v), want (%v, true)", a.String(), got, ok, a)
		}
	}
	for _, r := range []Recursion{RecursionNone, RecursionApply, RecursionApplyAndAllowStructureMod} {
		got, ok := ParseRecursion(r.String())
		if !ok || got != r {
			t.Errorf("ParseRecursion(%q) = (%v, %v), want (%v, true)", r.String(), got, ok, r)
		}
	}
}
