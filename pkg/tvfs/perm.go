// Package tvfs implements the Translated Virtual File System: a mount
// tree that maps client-visible virtual unix-like paths to native
// storage paths, with permission composition, placeholder expansion,
// path validation, and a backend abstraction over local and
// impersonated I/O.
package tvfs

// Perm is the TVFS permission bitmap. It is intentionally a flat bitmap
// (rather than an NFSv4-style ACE list) because TVFS permissions are
// derived mechanically from a mount point's Access/Recursion settings,
// not negotiated per-principal.
type Perm uint32

const (
	// PermRead allows reading file contents and directory listings.
	PermRead Perm = 1 << iota
	// PermWrite allows creating and writing files.
	PermWrite
	// PermRemove allows deleting files and (non-recursive) empty directories.
	PermRemove
	// PermRename allows renaming/moving entries.
	PermRename
	// PermListMounts exposes child mount points at this node even when the
	// node itself has no native target.
	PermListMounts
	// PermApplyRecursively means permissions and target inheritance extend
	// to descendants rather than stopping at this node.
	PermApplyRecursively
	// PermAllowStructureModification additionally permits mkdir/rmdir/rename
	// of the directory structure itself, not just file contents.
	PermAllowStructureModification
)

// Has reports whether all bits in want are set.
func (p Perm) Has(want Perm) bool { return p&want == want }

// With returns p with the given bits set.
func (p Perm) With(bits Perm) Perm { return p | bits }

// Without returns p with the given bits cleared.
func (p Perm) Without(bits Perm) Perm { return p &^ bits }

// Access is a mount point's coarse access level, from which a base Perm
// is derived.
type Access int

const (
	AccessDisabled Access = iota
	AccessReadOnly
	AccessReadWrite
)

// String implements fmt.Stringer for diagnostics and XML round-tripping.
func (a Access) String() string {
	switch a {
	case AccessReadOnly:
		return "read_only"
	case AccessReadWrite:
		return "read_write"
	default:
		return "disabled"
	}
}

// ParseAccess parses the String() form back into an Access value.
func ParseAccess(s string) (Access, bool) {
	switch s {
	case "disabled", "":
		return AccessDisabled, true
	case "read_only":
		return AccessReadOnly, true
	case "read_write":
		return AccessReadWrite, true
	default:
		return AccessDisabled, false
	}
}

// Recursion is a mount point's recursion mode.
type Recursion int

const (
	// RecursionNone confines the mount point's permissions/target to the
	// node itself; descendants only see list_mounts.
	RecursionNone Recursion = iota
	// RecursionApply extends the target and base permissions to descendants.
	RecursionApply
	// RecursionApplyAndAllowStructureMod additionally allows structural
	// modification (mkdir/rmdir/rename) of descendants.
	RecursionApplyAndAllowStructureMod
)

func (r Recursion) String() string {
	switch r {
	case RecursionApply:
		return "apply"
	case RecursionApplyAndAllowStructureMod:
		return "apply_and_allow_structure_mod"
	default:
		return "none"
	}
}

// ParseRecursion parses the String() form back into a Recursion value.
func ParseRecursion(s string) (Recursion, bool) {
	switch s {
	case "none", "":
		return RecursionNone, true
	case "apply":
		return RecursionApply, true
	case "apply_and_allow_structure_mod":
		return RecursionApplyAndAllowStructureMod, true
	default:
		return RecursionNone, false
	}
}

// Flags carries boolean mount point options beyond access/recursion.
type Flags struct {
	// Autocreate asks the authenticator to create the native directory for
	// this mount point (if missing) right before surfacing a successful
	// login.
	Autocreate bool
}

// DerivePerm computes the base permission bitmap for a mount point from
// its Access and Recursion settings, per spec §4.2's derivation table:
//
//	access=ro -> read|list_mounts
//	access=rw -> read|list_mounts|write
//	disabled  -> 0
//
// Recursion adds apply_recursively and, for the strongest mode, also
// allow_structure_modification. Disabled mount points never get structural
// bits regardless of recursion.
func DerivePerm(access Access, recursion Recursion) Perm {
	var p Perm
	switch access {
	case AccessReadOnly:
		p = PermRead | PermListMounts
	case AccessReadWrite:
		p = PermRead | PermListMounts | PermWrite
	case AccessDisabled:
		return 0
	}

	switch recursion {
	case RecursionApply:
		p |= PermApplyRecursively
	case RecursionApplyAndAllowStructureMod:
		p |= PermApplyRecursively | PermAllowStructureModification
		if access != AccessDisabled {
			p |= PermRemove | PermRename
		}
	}
	return p
}
