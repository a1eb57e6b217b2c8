// Package localfs is the local-filesystem adapter (component C3): a
// parallel surface to internal/remote against the host filesystem.
// Grounded on the teacher's internal/obsidian.Vault, generalized from a
// single-purpose vault store to the read/write/enumerate surface the
// reconciliation engine drives symmetrically against both sides.
package localfs

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sftpsync/watcher/internal/errors"
	"github.com/sftpsync/watcher/internal/model"
)

const (
	dirPerm  = fs.FileMode(0o755)
	filePerm = fs.FileMode(0o644)
)

// Adapter operates on a single local root. Every path it accepts is
// root-relative; it resolves and validates before touching the OS.
type Adapter struct {
	root   string
	ignore *IgnoreFilter
}

// New creates an Adapter rooted at root, which must be an absolute path
// (the caller, internal/config, enforces this at construction).
func New(root string, ignore *IgnoreFilter) *Adapter {
	return &Adapter{root: root, ignore: ignore}
}

// Root returns the adapter's absolute root path.
func (a *Adapter) Root() string {
	return a.root
}

// AbsPath resolves a root-relative path to an absolute local path,
// applying the same traversal guard as every other entry point.
func (a *Adapter) AbsPath(relPath string) (string, error) {
	return resolve(a.root, relPath)
}

// dirHandle is the concrete type behind model.Directory.Handle for this
// adapter: an open directory stream plus the entries already read from
// it, since os.File's ReadDir is most efficient read in a single batch
// rather than one entry at a time.
type dirHandle struct {
	f       *os.File
	entries []os.DirEntry
	idx     int
}

// OpenDir opens a root-relative directory for enumeration.
func (a *Adapter) OpenDir(relPath string) (*model.Directory, error) {
	abs, err := resolve(a.root, relPath)
	if err != nil {
		return nil, errors.New(errors.OriginLocal, 0, relPath, err)
	}

	f, err := os.Open(abs) //nolint:gosec // G304: abs validated by resolve
	if err != nil {
		return nil, errors.New(errors.OriginLocal, errnoOf(err), relPath, err)
	}

	entries, err := f.ReadDir(-1)
	if err != nil {
		_ = f.Close()
		return nil, errors.New(errors.OriginLocal, errnoOf(err), relPath, err)
	}

	dir := &model.Directory{
		AbsPath: abs,
		RelPath: relPath,
		Opened:  true,
		Handle:  &dirHandle{f: f, entries: entries},
	}

	return dir, nil
}

// ReadDir returns the next entry from a directory opened with OpenDir,
// or ok=false once exhausted. Dot-entries are never produced by
// os.ReadDir, so unlike the remote adapter there is no sentinel to
// filter here.
func (a *Adapter) ReadDir(dir *model.Directory) (item model.FileItem, ok bool, err error) {
	h, isHandle := dir.Handle.(*dirHandle)
	if !isHandle {
		return model.FileItem{}, false, fmt.Errorf("localfs: ReadDir called on unopened directory %q", dir.RelPath)
	}

	if h.idx >= len(h.entries) {
		return model.FileItem{}, false, nil
	}

	entry := h.entries[h.idx]
	h.idx++

	name := normalizePath(entry.Name())
	if a.ignore.Ignored(filepath.Join(dir.RelPath, name)) {
		return a.ReadDir(dir)
	}

	info, err := entry.Info()
	if err != nil {
		return model.FileItem{}, false, errors.New(errors.OriginLocal, errnoOf(err), name, err)
	}

	return model.FileItem{Name: name, Type: entryType(info), Attr: attrFrom(info)}, true, nil
}

// CloseDir releases the directory stream opened by OpenDir.
func (a *Adapter) CloseDir(dir *model.Directory) error {
	h, ok := dir.Handle.(*dirHandle)
	if !ok {
		return nil
	}

	dir.Handle = nil
	dir.Opened = false

	return h.f.Close()
}

// Stat returns the attribute record for a root-relative path.
func (a *Adapter) Stat(relPath string) (model.Attr, error) {
	abs, err := resolve(a.root, relPath)
	if err != nil {
		return model.Attr{}, errors.New(errors.OriginLocal, 0, relPath, err)
	}

	info, err := os.Lstat(abs)
	if err != nil {
		return model.Attr{}, errors.New(errors.OriginLocal, errnoOf(err), relPath, err)
	}

	return attrFrom(info), nil
}

// Mkdir creates a directory, idempotently: if it already exists, its
// mtime/atime are updated to match attr rather than erroring, matching
// the remote adapter's idempotent mkdir semantics.
func (a *Adapter) Mkdir(relPath string, attr model.Attr) error {
	abs, err := resolve(a.root, relPath)
	if err != nil {
		return errors.New(errors.OriginLocal, 0, relPath, err)
	}

	if err := os.MkdirAll(abs, dirPerm); err != nil {
		return errors.New(errors.OriginLocal, errnoOf(err), relPath, err)
	}

	return a.SetAttr(relPath, attr)
}

// Rmdir recursively removes a directory tree.
func (a *Adapter) Rmdir(relPath string) error {
	abs, err := resolve(a.root, relPath)
	if err != nil {
		return errors.New(errors.OriginLocal, 0, relPath, err)
	}

	if err := os.RemoveAll(abs); err != nil {
		return errors.New(errors.OriginLocal, errnoOf(err), relPath, err)
	}

	return nil
}

// Remove unlinks a file.
func (a *Adapter) Remove(relPath string) error {
	abs, err := resolve(a.root, relPath)
	if err != nil {
		return errors.New(errors.OriginLocal, 0, relPath, err)
	}

	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return errors.New(errors.OriginLocal, errnoOf(err), relPath, err)
	}

	return nil
}

// SetAttr applies mtime/atime and, on POSIX platforms, permission bits
// from attr to the file at relPath.
func (a *Adapter) SetAttr(relPath string, attr model.Attr) error {
	abs, err := resolve(a.root, relPath)
	if err != nil {
		return errors.New(errors.OriginLocal, 0, relPath, err)
	}

	if attr.Valid.Has(model.AttrMTime) {
		atime := time.Unix(attr.ATime, 0)
		if !attr.Valid.Has(model.AttrATime) {
			atime = time.Unix(attr.MTime, 0)
		}

		if err := os.Chtimes(abs, atime, time.Unix(attr.MTime, 0)); err != nil {
			return errors.New(errors.OriginLocal, errnoOf(err), relPath, err)
		}
	}

	if attr.Valid.Has(model.AttrPermissions) && attr.Mode != 0 {
		if err := os.Chmod(abs, attr.Mode.Perm()); err != nil {
			return errors.New(errors.OriginLocal, errnoOf(err), relPath, err)
		}
	}

	return nil
}

// errnoOf extracts a POSIX-ish numeric code from an OS error, per spec
// section 7's "local filesystem errors ... captured with errno-equivalent
// codes". Falls back to 0 when the error carries no syscall errno.
func errnoOf(err error) int {
	var errno syscall.Errno

	if stderrors.As(err, &errno) {
		return int(errno)
	}

	return 0
}

func entryType(info os.FileInfo) model.EntryType {
	mode := info.Mode()

	switch {
	case mode.IsRegular():
		return model.TypeRegular
	case mode.IsDir():
		return model.TypeDirectory
	case mode&os.ModeSymlink != 0:
		return model.TypeSymlink
	case mode&os.ModeDevice != 0 && mode&os.ModeCharDevice != 0:
		return model.TypeCharDevice
	case mode&os.ModeDevice != 0:
		return model.TypeBlockDevice
	case mode&os.ModeNamedPipe != 0:
		return model.TypeFIFO
	case mode&os.ModeSocket != 0:
		return model.TypeSocket
	default:
		return model.TypeInvalid
	}
}

func attrFrom(info os.FileInfo) model.Attr {
	attr := model.Attr{
		Size:  info.Size(),
		MTime: info.ModTime().Unix(),
		Mode:  info.Mode(),
		Valid: model.AttrSize | model.AttrMTime | model.AttrPermissions,
	}

	if uid, gid, atime, ok := extractStat(info); ok {
		attr.UID = uid
		attr.GID = gid
		attr.ATime = atime
		attr.Valid |= model.AttrOwner | model.AttrATime
	}

	return attr
}
