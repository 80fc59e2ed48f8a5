package tvfs

import (
	"context"
	"io"
	"time"
)

// EntryKind distinguishes the handful of entry types TVFS surfaces to
// clients; it deliberately does not expose the full breadth of OS file
// types (sockets, devices, ...), which have no FTP representation.
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDirectory
	KindSymlink
)

// Info describes one filesystem entry as surfaced over the protocol.
type Info struct {
	Name    string
	Kind    EntryKind
	Size    int64
	ModTime time.Time
}

// OpenMode selects how OpenFile treats an existing/missing target.
type OpenMode int

const (
	OpenRead OpenMode = iota
	OpenWriteTruncate
	OpenWriteAppend
)

// File is a handle returned by Backend.OpenFile. It is intentionally
// narrower than os.File: TVFS backends (in particular the impersonated
// backend, which proxies calls to a child process) cannot cheaply expose
// every os.File method across a process boundary.
type File interface {
	io.ReadWriteCloser
	io.Seeker
}

// Backend performs native filesystem operations against a resolved
// native path. Two implementations exist: localBackend, which calls the
// os package directly (used when the authenticated OS identity matches
// the server process's own identity, or impersonation is disabled), and
// the impersonation package's backend, which proxies the same calls
// through a per-identity child process.
//
// Every method receives a context for cancellation; long-lived methods
// (OpenFile for a transfer that may stall) must respect ctx.Done().
type Backend interface {
	OpenFile(ctx context.Context, native string, mode OpenMode) (File, error)
	GetEntries(ctx context.Context, native string) ([]Info, error)
	GetEntry(ctx context.Context, native string) (Info, error)
	MakeDirectory(ctx context.Context, native string) error
	SetModTime(ctx context.Context, native string, t time.Time) error
	RemoveFile(ctx context.Context, native string) error
	RemoveDirectory(ctx context.Context, native string, recursive bool) error
	Rename(ctx context.Context, nativeFrom, nativeTo string) error
}
