package tvfs

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"
)

// fakeBackend is an in-memory Backend used to test Engine without
// touching the real filesystem.
type fakeBackend struct {
	dirs  map[string]bool
	files map[string][]byte
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{dirs: map[string]bool{"/srv/docs": true}, files: map[string][]byte{}}
}

type fakeFile struct {
	*bytes.Reader
	buf *bytes.Buffer
}

func (f *fakeFile) Write(p []byte) (int, error) {
	if f.buf == nil {
		return 0, io.ErrClosedPipe
	}
	return f.buf.Write(p)
}
func (f *fakeFile) Close() error { return nil }
func (f *fakeFile) Seek(offset int64, whence int) (int64, error) {
	if f.Reader != nil {
		return f.Reader.Seek(offset, whence)
	}
	return 0, nil
}
func (f *fakeFile) Read(p []byte) (int, error) {
	if f.Reader == nil {
		return 0, io.EOF
	}
	return f.Reader.Read(p)
}

func (b *fakeBackend) OpenFile(ctx context.Context, native string, mode OpenMode) (File, error) {
	if mode == OpenRead {
		data, ok := b.files[native]
		if !ok {
			return nil, io.ErrUnexpectedEOF
		}
		return &fakeFile{Reader: bytes.NewReader(data)}, nil
	}
	buf := &bytes.Buffer{}
	return &fakeFile{buf: buf}, nil
}

func (b *fakeBackend) GetEntries(ctx context.Context, native string) ([]Info, error) {
	var out []Info
	for name := range b.files {
		out = append(out, Info{Name: name, Kind: KindFile})
	}
	return out, nil
}

func (b *fakeBackend) GetEntry(ctx context.Context, native string) (Info, error) {
	if b.dirs[native] {
		return Info{Name: native, Kind: KindDirectory}, nil
	}
	if _, ok := b.files[native]; ok {
		return Info{Name: native, Kind: KindFile}, nil
	}
	return Info{}, io.ErrUnexpectedEOF
}

func (b *fakeBackend) MakeDirectory(ctx context.Context, native string) error {
	b.dirs[native] = true
	return nil
}

func (b *fakeBackend) SetModTime(ctx context.Context, native string, t time.Time) error { return nil }

func (b *fakeBackend) RemoveFile(ctx context.Context, native string) error {
	delete(b.files, native)
	return nil
}

func (b *fakeBackend) RemoveDirectory(ctx context.Context, native string, recursive bool) error {
	delete(b.dirs, native)
	return nil
}

func (b *fakeBackend) Rename(ctx context.Context, from, to string) error {
	if data, ok := b.files[from]; ok {
		b.files[to] = data
		delete(b.files, from)
	}
	return nil
}

func newTestEngine(t *testing.T) (*Engine, *fakeBackend) {
	t.Helper()
	tree := mustTree(t, []MountPoint{
		{Virtual: "/docs", Native: "/srv/docs", Access: AccessReadWrite, Recursion: RecursionApplyAndAllowStructureMod},
	})
	backend := newFakeBackend()
	return NewEngine(tree, backend, Vars{User: "alice"}), backend
}

func TestEngine_SetCurrentDirectory(t *testing.T) {
	e, _ := newTestEngine(t)
	if err := e.SetCurrentDirectory(context.Background(), "/docs"); err != nil {
		t.Fatalf("SetCurrentDirectory() error = %v", err)
	}
	if e.CurrentDirectory() != "/docs" {
		t.Errorf("CurrentDirectory() = %q, want /docs", e.CurrentDirectory())
	}
}

func TestEngine_MakeDirectoryThenList(t *testing.T) {
	e, backend := newTestEngine(t)
	ctx := context.Background()
	if err := e.MakeDirectory(ctx, "/docs/sub"); err != nil {
		t.Fatalf("MakeDirectory() error = %v", err)
	}
	if !backend.dirs["/srv/docs/sub"] {
		t.Errorf("backend did not receive MakeDirectory at /srv/docs/sub")
	}
}

func TestEngine_PermissionDeniedOnReadOnlyMount(t *testing.T) {
	tree := mustTree(t, []MountPoint{
		{Virtual: "/ro", Native: "/srv/ro", Access: AccessReadOnly, Recursion: RecursionApply},
	})
	e := NewEngine(tree, newFakeBackend(), Vars{})
	_, err := e.OpenFile(context.Background(), "/ro/file.txt", OpenWriteTruncate)
	var denied *ErrPermissionDenied
	if err == nil {
		t.Fatalf("OpenFile(write) on read-only mount succeeded, want ErrPermissionDenied")
	}
	if !isPermDenied(err, &denied) {
		t.Fatalf("error = %v, want *ErrPermissionDenied", err)
	}
}

func isPermDenied(err error, target **ErrPermissionDenied) bool {
	pd, ok := err.(*ErrPermissionDenied)
	if ok {
		*target = pd
	}
	return ok
}

func TestEngine_RemoveDirectoryRecursiveNeedsStructuralPerm(t *testing.T) {
	tree := mustTree(t, []MountPoint{
		// recursion = apply (not allow_structure_mod) grants neither remove
		// nor structural modification, so recursive directory removal fails.
		{Virtual: "/limited", Native: "/srv/limited", Access: AccessReadWrite, Recursion: RecursionApply},
	})
	e := NewEngine(tree, newFakeBackend(), Vars{})
	err := e.RemoveDirectory(context.Background(), "/limited/sub", true)
	if err == nil {
		t.Fatalf("RemoveDirectory(recursive) without structural perm succeeded, want error")
	}
}
