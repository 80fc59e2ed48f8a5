package auth

// Sanitize drops dangling references in-place: a user's membership in a
// group that no longer exists is removed, matching
// file_based_authenticator.cpp's sanitize() pass run after every load
// (including hot-reload) and before any user is materialized.
func Sanitize(groups []groupRecord, users []userRecord) {
	known := make(map[string]bool, len(groups))
	for _, g := range groups {
		known[g.Name] = true
	}
	for i := range users {
		kept := users[i].Groups[:0]
		for _, g := range users[i].Groups {
			if known[g] {
				kept = append(kept, g)
			}
		}
		users[i].Groups = kept
	}
}
