package tvfs

// ListMode selects how Engine.GetEntries combines real backend entries
// with synthetic mount-point entries at a directory.
type ListMode int

const (
	// ListAutodetect lists real backend entries (if the resolved path has
	// a native target) merged with any child mount points, and falls back
	// to mount-points-only when the resolution has no native backing at
	// all (a purely structural node with PermListMounts).
	ListAutodetect ListMode = iota
	// ListOnlyChildren lists only synthetic child mount points, ignoring
	// any backend entries that might exist at the same virtual directory.
	ListOnlyChildren
	// ListNoChildren lists only real backend entries, omitting synthetic
	// mount-point entries even if child mounts exist.
	ListNoChildren
)

// Entry is one listing row returned by Engine.GetEntries: either a real
// backend Info or a synthetic mount point, never both for the same name.
type Entry struct {
	Info
	// IsMountPoint is true when this row represents a child mount point
	// rather than a real backend entry. Synthetic mount-point rows use
	// KindDirectory and carry no reliable Size/ModTime.
	IsMountPoint bool
	// Perm is the effective permission bitmap for this entry, after fixup
	// (see fixupPerms): a synthetic mount entry carries its own mount's
	// permissions, and a real entry inherits its governing mount's
	// permissions narrowed by PermApplyRecursively.
	Perm Perm
}

// mergeEntries combines real backend entries with synthetic mount-point
// rows per mode, de-duplicating by name so a directory that is both a
// real backend entry and a mount point (the common case: a mount's own
// directory node) is only listed once, as a mount point.
func mergeEntries(mode ListMode, real []Info, realPerm Perm, mountNames []string, mounts *Tree, dir string) []Entry {
	mountSet := make(map[string]bool, len(mountNames))
	for _, n := range mountNames {
		mountSet[n] = true
	}

	out := make([]Entry, 0, len(real)+len(mountNames))

	if mode != ListOnlyChildren {
		for _, info := range real {
			if mountSet[info.Name] {
				continue // superseded by the synthetic mount-point row below
			}
			out = append(out, Entry{Info: info, Perm: realPerm})
		}
	}

	if mode != ListNoChildren {
		for _, name := range mountNames {
			childVirtual := dir
			if childVirtual != "/" {
				childVirtual += "/"
			}
			childVirtual += name

			perm := Perm(0)
			if res, err := Resolve(mounts, childVirtual, Vars{}); err == nil {
				perm = res.Perm
			}
			out = append(out, Entry{
				Info: Info{Name: name, Kind: KindDirectory},
				IsMountPoint: true,
				Perm:         perm,
			})
		}
	}
	return out
}

// fixupPerms narrows perm for entries reached only via inherited recursion:
// a non-exact mount match loses PermAllowStructureModification unless the
// governing mount explicitly carries RecursionApplyAndAllowStructureMod,
// and always loses PermListMounts (only the mount's own node advertises
// child mounts).
func fixupPerms(perm Perm, exactMount bool) Perm {
	if !exactMount {
		perm = perm.Without(PermListMounts)
	}
	return perm
}
