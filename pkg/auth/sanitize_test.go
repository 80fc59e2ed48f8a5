package auth

import "testing"

func cloneUsers(users []userRecord) []userRecord {
	out := make([]userRecord, len(users))
	for i, u := range users {
		groups := make([]string, len(u.Groups))
		copy(groups, u.Groups)
		u.Groups = groups
		out[i] = u
	}
	return out
}

// TestSanitize_DropsDanglingGroups covers the basic case: a membership in
// a group that does not exist is removed, a membership in one that does
// exist is kept.
func TestSanitize_DropsDanglingGroups(t *testing.T) {
	groups := []groupRecord{{Name: "editors"}}
	users := []userRecord{{Name: "alice", Groups: []string{"editors", "ghosts"}}}

	Sanitize(groups, users)

	if got := users[0].Groups; len(got) != 1 || got[0] != "editors" {
		t.Fatalf("Groups = %v, want [editors]", got)
	}
}

// TestSanitize_Idempotent implements testable property 1: sanitizing an
// already-sanitized document is a no-op.
func TestSanitize_Idempotent(t *testing.T) {
	groups := []groupRecord{{Name: "editors"}, {Name: "viewers"}}
	users := []userRecord{
		{Name: "alice", Groups: []string{"editors", "ghosts", "viewers"}},
		{Name: "bob", Groups: []string{"ghosts"}},
		{Name: "carol", Groups: nil},
	}

	Sanitize(groups, users)
	once := cloneUsers(users)

	Sanitize(groups, users)
	twice := users

	if len(once) != len(twice) {
		t.Fatalf("user count changed between passes: %d -> %d", len(once), len(twice))
	}
	for i := range once {
		if len(once[i].Groups) != len(twice[i].Groups) {
			t.Fatalf("user %q: Groups changed on second sanitize pass: %v -> %v", once[i].Name, once[i].Groups, twice[i].Groups)
		}
		for j := range once[i].Groups {
			if once[i].Groups[j] != twice[i].Groups[j] {
				t.Fatalf("user %q: Groups changed on second sanitize pass: %v -> %v", once[i].Name, once[i].Groups, twice[i].Groups)
			}
		}
	}
}
