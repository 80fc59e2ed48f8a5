package tvfs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// LocalBackend implements Backend directly against the server process's
// own OS identity. It is used when impersonation is disabled, or as the
// backend a per-identity child process runs internally once the
// impersonation package has already switched that process's credentials.
type LocalBackend struct{}

// NewLocalBackend returns a Backend that performs operations as the
// calling process's own OS user.
func NewLocalBackend() Backend { return LocalBackend{} }

func (LocalBackend) OpenFile(ctx context.Context, native string, mode OpenMode) (File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var flag int
	switch mode {
	case OpenRead:
		flag = os.O_RDONLY
	case OpenWriteTruncate:
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	case OpenWriteAppend:
		flag = os.O_WRONLY | os.O_CREATE | os.O_APPEND
	default:
		return nil, fmt.Errorf("tvfs: unknown open mode %d", mode)
	}
	f, err := os.OpenFile(native, flag, 0o644)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (LocalBackend) GetEntries(ctx context.Context, native string) ([]Info, error) {
	entries, err := os.ReadDir(native)
	if err != nil {
		return nil, err
	}
	out := make([]Info, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fi, err := e.Info()
		if err != nil {
			continue // entry vanished mid-listing; skip rather than fail the whole listing
		}
		out = append(out, infoFromFS(e.Name(), fi))
	}
	return out, nil
}

func (LocalBackend) GetEntry(ctx context.Context, native string) (Info, error) {
	fi, err := os.Lstat(native)
	if err != nil {
		return Info{}, err
	}
	return infoFromFS(fi.Name(), fi), nil
}

func infoFromFS(name string, fi fs.FileInfo) Info {
	kind := KindFile
	switch {
	case fi.Mode()&fs.ModeSymlink != 0:
		kind = KindSymlink
	case fi.IsDir():
		kind = KindDirectory
	}
	return Info{Name: name, Kind: kind, Size: fi.Size(), ModTime: fi.ModTime()}
}

func (LocalBackend) MakeDirectory(ctx context.Context, native string) error {
	return os.Mkdir(native, 0o755)
}

func (LocalBackend) SetModTime(ctx context.Context, native string, t time.Time) error {
	return os.Chtimes(native, t, t)
}

func (LocalBackend) RemoveFile(ctx context.Context, native string) error {
	return os.Remove(native)
}

func (LocalBackend) RemoveDirectory(ctx context.Context, native string, recursive bool) error {
	if recursive {
		return os.RemoveAll(native)
	}
	return os.Remove(native)
}

func (LocalBackend) Rename(ctx context.Context, nativeFrom, nativeTo string) error {
	return os.Rename(nativeFrom, nativeTo)
}
