package tvfs

import (
	"fmt"
	"strings"
)

// Resolution is the result of resolving a virtual path against a Tree: the
// expanded native path, the effective permission bitmap that governs it,
// and whether the resolution landed exactly on a mount point or merely
// beneath one via recursive inheritance.
type Resolution struct {
	Virtual string
	Native  string
	Perm    Perm
	// ExactMount is true when Virtual names a node that itself carries a
	// MountPoint, as opposed to inheriting one from a recursive ancestor.
	ExactMount bool
	// MountVirtual is the virtual path of the governing mount point.
	MountVirtual string
}

// ErrNoMount is returned by Resolve when no mount point governs the
// requested virtual path: no ancestor carries a MountPoint, or the path
// lies beneath a non-recursive mount.
type ErrNoMount struct{ Virtual string }

func (e *ErrNoMount) Error() string {
	return fmt.Sprintf("tvfs: %q is not under any configured mount point", e.Virtual)
}

// Resolve translates a virtual path into a Resolution using t and vars.
// Resolution walks down from the root, remembering the deepest ancestor
// (inclusive) that carries a MountPoint — the "governing" mount — and
// then:
//
//   - if the governing mount is reached exactly (no remaining segments),
//     its own Native/Perm apply directly;
//   - if there are remaining segments, they are only honored when the
//     governing mount's Recursion is not RecursionNone; otherwise the
//     requested path does not exist beneath a non-recursive mount and
//     Resolve reports ErrNoMount for the full requested path.
func Resolve(t *Tree, virtual string, vars Vars) (Resolution, error) {
	if err := ValidateVirtualPath(virtual); err != nil {
		return Resolution{}, err
	}
	virtual = NormalizeVirtualPath(virtual)
	segs := splitVirtual(virtual)

	governing, consumed, _, _ := t.lookup(segs)
	if governing == nil || governing.mount == nil {
		return Resolution{}, &ErrNoMount{Virtual: virtual}
	}

	remainder := segs[consumed:]
	if len(remainder) > 0 && governing.mount.Recursion == RecursionNone {
		return Resolution{}, &ErrNoMount{Virtual: virtual}
	}

	native, err := Substitute(governing.mount.Native, vars)
	if err != nil {
		return Resolution{}, err
	}
	if len(remainder) > 0 {
		native = strings.TrimRight(native, "/") + "/" + strings.Join(remainder, "/")
	}
	if err := ValidateNativePath(native); err != nil {
		return Resolution{}, err
	}

	return Resolution{
		Virtual:      virtual,
		Native:       native,
		Perm:         governing.mount.Perm(),
		ExactMount:   len(remainder) == 0,
		MountVirtual: governing.mount.Virtual,
	}, nil
}
