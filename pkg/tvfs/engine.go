package tvfs

import (
	"context"
	"fmt"
	"time"
)

// ErrPermissionDenied is returned by Engine operations when the resolved
// mount's permission bitmap does not grant the bit the operation needs.
type ErrPermissionDenied struct {
	Virtual string
	Needed  Perm
}

func (e *ErrPermissionDenied) Error() string {
	return fmt.Sprintf("tvfs: %q: permission denied (missing %v)", e.Virtual, e.Needed)
}

// Engine is the per-session entry point into a TVFS mount tree: it
// resolves virtual paths, enforces the governing mount's permission
// bitmap, and dispatches to a Backend. One Engine is constructed per
// authenticated session, sharing the immutable *Tree across sessions but
// holding its own Vars (username/home/extra) and current directory.
type Engine struct {
	tree    *Tree
	backend Backend
	vars    Vars

	cwd string // always absolute, normalized
}

// NewEngine creates an Engine bound to tree and backend for one session,
// starting at the virtual root.
func NewEngine(tree *Tree, backend Backend, vars Vars) *Engine {
	return &Engine{tree: tree, backend: backend, vars: vars, cwd: "/"}
}

// CurrentDirectory returns the session's current virtual directory.
func (e *Engine) CurrentDirectory() string { return e.cwd }

// absolute resolves p against the session's current directory if p is
// not itself absolute.
func (e *Engine) absolute(p string) string {
	if p == "" {
		return e.cwd
	}
	if p[0] == '/' {
		return p
	}
	if e.cwd == "/" {
		return "/" + p
	}
	return e.cwd + "/" + p
}

func (e *Engine) resolve(virtual string) (Resolution, error) {
	return Resolve(e.tree, e.absolute(virtual), e.vars)
}

func requirePerm(res Resolution, needed Perm) error {
	if !res.Perm.Has(needed) {
		return &ErrPermissionDenied{Virtual: res.Virtual, Needed: needed}
	}
	return nil
}

// SetCurrentDirectory changes the session's current virtual directory
// after confirming it resolves to an existing directory the session may
// at least read.
func (e *Engine) SetCurrentDirectory(ctx context.Context, virtual string) error {
	res, err := e.resolve(virtual)
	if err != nil {
		return err
	}
	if err := requirePerm(res, PermRead); err != nil {
		return err
	}
	info, err := e.backend.GetEntry(ctx, res.Native)
	if err != nil {
		return err
	}
	if info.Kind != KindDirectory {
		return fmt.Errorf("tvfs: %q is not a directory", res.Virtual)
	}
	e.cwd = res.Virtual
	return nil
}

// OpenFile opens virtual for reading or writing, enforcing PermRead or
// PermWrite as appropriate.
func (e *Engine) OpenFile(ctx context.Context, virtual string, mode OpenMode) (File, error) {
	res, err := e.resolve(virtual)
	if err != nil {
		return nil, err
	}
	needed := PermRead
	if mode != OpenRead {
		needed = PermWrite
	}
	if err := requirePerm(res, needed); err != nil {
		return nil, err
	}
	return e.backend.OpenFile(ctx, res.Native, mode)
}

// GetEntries lists the contents of the virtual directory dir per mode,
// merging real backend entries with synthetic child-mount rows and
// fixing up permissions for entries reached via inherited recursion.
func (e *Engine) GetEntries(ctx context.Context, dir string, mode ListMode) ([]Entry, error) {
	virtual := e.absolute(dir)
	res, err := e.resolve(virtual)

	var real []Info
	var realPerm Perm
	switch {
	case err == nil:
		if rerr := requirePerm(res, PermRead); rerr != nil {
			return nil, rerr
		}
		real, err = e.backend.GetEntries(ctx, res.Native)
		if err != nil {
			return nil, err
		}
		realPerm = fixupPerms(res.Perm, res.ExactMount)
	case isNoMount(err):
		// A purely structural node (no native target of its own) can
		// still be listed if it has child mounts to show.
	default:
		return nil, err
	}

	mountNames := e.tree.ChildMounts(virtual)
	if len(mountNames) == 0 && real == nil && isNoMount(err) {
		return nil, err
	}

	entries := mergeEntries(mode, real, realPerm, mountNames, e.tree, virtual)
	return entries, nil
}

func isNoMount(err error) bool {
	_, ok := err.(*ErrNoMount)
	return ok
}

// GetEntry stats a single virtual path.
func (e *Engine) GetEntry(ctx context.Context, virtual string) (Info, error) {
	res, err := e.resolve(virtual)
	if err != nil {
		return Info{}, err
	}
	if err := requirePerm(res, PermRead); err != nil {
		return Info{}, err
	}
	return e.backend.GetEntry(ctx, res.Native)
}

// MakeDirectory creates a directory at virtual, requiring structural
// modification permission.
func (e *Engine) MakeDirectory(ctx context.Context, virtual string) error {
	res, err := e.resolve(virtual)
	if err != nil {
		return err
	}
	if err := requirePerm(res, PermWrite|PermAllowStructureModification); err != nil {
		return err
	}
	return e.backend.MakeDirectory(ctx, res.Native)
}

// SetModTime updates the modification time of virtual, requiring write
// permission.
func (e *Engine) SetModTime(ctx context.Context, virtual string, t time.Time) error {
	res, err := e.resolve(virtual)
	if err != nil {
		return err
	}
	if err := requirePerm(res, PermWrite); err != nil {
		return err
	}
	return e.backend.SetModTime(ctx, res.Native, t)
}

// RemoveFile deletes the file at virtual, requiring PermRemove.
func (e *Engine) RemoveFile(ctx context.Context, virtual string) error {
	res, err := e.resolve(virtual)
	if err != nil {
		return err
	}
	if err := requirePerm(res, PermRemove); err != nil {
		return err
	}
	return e.backend.RemoveFile(ctx, res.Native)
}

// RemoveDirectory deletes the directory at virtual. A recursive removal
// additionally requires PermAllowStructureModification, matching the
// spec's rule that recursive delete is a structural operation while a
// non-recursive rmdir of an already-empty directory is not.
func (e *Engine) RemoveDirectory(ctx context.Context, virtual string, recursive bool) error {
	res, err := e.resolve(virtual)
	if err != nil {
		return err
	}
	needed := PermRemove
	if recursive {
		needed |= PermAllowStructureModification
	}
	if err := requirePerm(res, needed); err != nil {
		return err
	}
	return e.backend.RemoveDirectory(ctx, res.Native, recursive)
}

// Rename moves fromVirtual to toVirtual. Both endpoints are resolved (they
// may fall under different mount points) and both must grant PermRename;
// the destination must additionally be writable.
func (e *Engine) Rename(ctx context.Context, fromVirtual, toVirtual string) error {
	fromRes, err := e.resolve(fromVirtual)
	if err != nil {
		return err
	}
	if err := requirePerm(fromRes, PermRename); err != nil {
		return err
	}
	toRes, err := e.resolve(toVirtual)
	if err != nil {
		return err
	}
	if err := requirePerm(toRes, PermRename|PermWrite); err != nil {
		return err
	}
	return e.backend.Rename(ctx, fromRes.Native, toRes.Native)
}
