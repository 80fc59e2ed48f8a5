package tvfs

import (
	"errors"
	"testing"
)

func mustTree(t *testing.T, mounts []MountPoint) *Tree {
	t.Helper()
	tree, err := BuildTree(mounts)
	if err != nil {
		t.Fatalf("BuildTree() error = %v", err)
	}
	return tree
}

// TestResolve_ScenarioS4 implements spec scenario S4: a single mount of
// "/docs" -> "/srv/ftp/docs" with read_write access and recursion that
// allows structural modification resolves "/docs/readme.txt" to
// "/srv/ftp/docs/readme.txt" carrying read, write, remove and rename.
func TestResolve_ScenarioS4(t *testing.T) {
	tree := mustTree(t, []MountPoint{
		{
			Virtual:   "/docs",
			Native:    "/srv/ftp/docs",
			Access:    AccessReadWrite,
			Recursion: RecursionApplyAndAllowStructureMod,
		},
	})

	res, err := Resolve(tree, "/docs/readme.txt", Vars{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Native != "/srv/ftp/docs/readme.txt" {
		t.Errorf("Native = %q, want /srv/ftp/docs/readme.txt", res.Native)
	}
	for _, want := range []Perm{PermRead, PermWrite, PermRemove, PermRename} {
		if !res.Perm.Has(want) {
			t.Errorf("Perm %v missing expected bit %v", res.Perm, want)
		}
	}
	if res.ExactMount {
		t.Errorf("ExactMount = true for a path beneath the mount, want false")
	}
}

// TestResolve_PathResolutionInvariant implements testable property 3:
// resolving a path and then resolving <resolved virtual prefix> + suffix
// yields the same native path as resolving the full path directly
// (resolution is compositional over the mount boundary).
func TestResolve_PathResolutionInvariant(t *testing.T) {
	tree := mustTree(t, []MountPoint{
		{Virtual: "/a", Native: "/native/a", Access: AccessReadOnly, Recursion: RecursionApply},
	})

	full, err := Resolve(tree, "/a/b/c.txt", Vars{})
	if err != nil {
		t.Fatalf("Resolve(full) error = %v", err)
	}

	prefix, err := Resolve(tree, "/a/b", Vars{})
	if err != nil {
		t.Fatalf("Resolve(prefix) error = %v", err)
	}
	// prefix.Native + "/c.txt" must equal full.Native.
	if prefix.Native+"/c.txt" != full.Native {
		t.Errorf("prefix+suffix = %q, full = %q, want equal", prefix.Native+"/c.txt", full.Native)
	}
}

func TestResolve_NonRecursiveMountRejectsDescendant(t *testing.T) {
	tree := mustTree(t, []MountPoint{
		{Virtual: "/a", Native: "/native/a", Access: AccessReadOnly, Recursion: RecursionNone},
	})
	_, err := Resolve(tree, "/a/child", Vars{})
	var noMount *ErrNoMount
	if !errors.As(err, &noMount) {
		t.Fatalf("Resolve() error = %v, want *ErrNoMount", err)
	}
}

func TestResolve_NoMountAtAll(t *testing.T) {
	tree := mustTree(t, nil)
	_, err := Resolve(tree, "/anything", Vars{})
	var noMount *ErrNoMount
	if !errors.As(err, &noMount) {
		t.Fatalf("Resolve() error = %v, want *ErrNoMount", err)
	}
}

func TestResolve_PlaceholderExpansion(t *testing.T) {
	tree := mustTree(t, []MountPoint{
		{Virtual: "/home", Native: "%h", Access: AccessReadWrite, Recursion: RecursionApply},
	})
	res, err := Resolve(tree, "/home/file.txt", Vars{Home: "/srv/users/alice"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Native != "/srv/users/alice/file.txt" {
		t.Errorf("Native = %q, want /srv/users/alice/file.txt", res.Native)
	}
}

func TestResolve_RootListMountsOnly(t *testing.T) {
	tree := mustTree(t, []MountPoint{
		{Virtual: "/docs", Native: "/srv/docs", Access: AccessReadOnly, Recursion: RecursionNone},
	})
	if _, err := Resolve(tree, "/", Vars{}); err == nil {
		t.Errorf("Resolve(\"/\") with no root mount = nil error, want ErrNoMount")
	}
	names := tree.ChildMounts("/")
	if len(names) != 1 || names[0] != "docs" {
		t.Errorf("ChildMounts(/) = %v, want [docs]", names)
	}
}
