package tvfs

import (
	"fmt"
	"path"
	"strings"
)

// MountPoint binds a virtual path to a native target with a permission
// policy. Native may contain placeholders (see placeholder.go) that are
// expanded per-session against the authenticated user's substitution map.
type MountPoint struct {
	// Virtual is the client-visible path, always absolute and using
	// forward slashes ("/", "/docs", "/home/%u").
	Virtual string
	// Native is the backend path the virtual path resolves to. May contain
	// placeholders.
	Native string
	Access    Access
	Recursion Recursion
	Flags     Flags
}

// Perm returns the base permission bitmap derived from this mount point's
// Access/Recursion settings.
func (m MountPoint) Perm() Perm {
	return DerivePerm(m.Access, m.Recursion)
}

// Validate checks the mount point's static shape (virtual path form); it
// does not expand placeholders or touch the filesystem.
func (m MountPoint) Validate() error {
	if m.Virtual == "" || m.Virtual[0] != '/' {
		return fmt.Errorf("tvfs: mount virtual path %q must be absolute", m.Virtual)
	}
	if m.Virtual != "/" && strings.HasSuffix(m.Virtual, "/") {
		return fmt.Errorf("tvfs: mount virtual path %q must not have a trailing slash", m.Virtual)
	}
	if m.Native == "" {
		return fmt.Errorf("tvfs: mount at %q has no native target", m.Virtual)
	}
	return nil
}

// splitVirtual splits a cleaned absolute virtual path into its non-empty
// segments. "/" yields an empty slice.
func splitVirtual(p string) []string {
	p = path.Clean(p)
	if p == "/" || p == "." {
		return nil
	}
	return strings.Split(strings.TrimPrefix(p, "/"), "/")
}

// node is one level of the mount tree. Nodes exist for every path segment
// that appears in some mount point's Virtual path, whether or not that
// exact node itself carries a MountPoint (intermediate nodes may be purely
// structural, existing only so their children are reachable).
type node struct {
	name     string
	children map[string]*node
	mount    *MountPoint // nil for purely structural nodes
}

func newNode(name string) *node {
	return &node{name: name, children: make(map[string]*node)}
}

// Tree is the mount tree for one TVFS configuration. It is immutable once
// built; callers rebuild a new Tree on configuration change rather than
// mutating a live one, so a Tree can be safely shared and read
// concurrently by many sessions without locking.
type Tree struct {
	root *node
}

// BuildTree constructs a Tree from an ordered list of mount points.
// Mount points are applied in order, so later entries overwrite an
// exact-path collision with an earlier one (the last one wins), matching
// typical "more specific configuration overrides defaults" expectations.
func BuildTree(mounts []MountPoint) (*Tree, error) {
	root := newNode("")
	for _, m := range mounts {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		m := m // capture
		segs := splitVirtual(m.Virtual)
		cur := root
		for _, seg := range segs {
			child, ok := cur.children[seg]
			if !ok {
				child = newNode(seg)
				cur.children[seg] = child
			}
			cur = child
		}
		cur.mount = &m
	}
	return &Tree{root: root}, nil
}

// lookup walks segs from the tree root, returning the last node on the
// path that carries a MountPoint (the "governing" mount) along with the
// number of segments consumed to reach it, and the deepest node actually
// reached (which may be a purely structural node with no mount, e.g. when
// resolving a path that does not exist as a literal mount but falls under
// a recursive ancestor).
func (t *Tree) lookup(segs []string) (governing *node, consumed int, deepest *node, deepestConsumed int) {
	cur := t.root
	deepest = cur
	deepestConsumed = 0
	if cur.mount != nil {
		governing, consumed = cur, 0
	}
	for i, seg := range segs {
		child, ok := cur.children[seg]
		if !ok {
			break
		}
		cur = child
		deepest, deepestConsumed = cur, i+1
		if cur.mount != nil {
			governing, consumed = cur, i+1
		}
	}
	return governing, consumed, deepest, deepestConsumed
}

// ChildMounts returns the names of child mount points directly beneath the
// virtual directory path dir (not recursive), used by get_entries to
// surface synthetic mount-point entries alongside real backend entries.
func (t *Tree) ChildMounts(dir string) []string {
	segs := splitVirtual(dir)
	cur := t.root
	for _, seg := range segs {
		child, ok := cur.children[seg]
		if !ok {
			return nil
		}
		cur = child
	}
	names := make([]string, 0, len(cur.children))
	for name := range cur.children {
		names = append(names, name)
	}
	return names
}
