package reconcile

import (
	"github.com/sftpsync/watcher/internal/model"
)

// EventKind classifies a dispatch operation for the file-event callback,
// per spec section 6's `kind ∈ {local-delete, remote-delete, upload,
// download}`.
type EventKind int

const (
	EventLocalDelete EventKind = iota
	EventRemoteDelete
	EventUpload
	EventDownload
)

func (k EventKind) String() string {
	switch k {
	case EventLocalDelete:
		return "local-delete"
	case EventRemoteDelete:
		return "remote-delete"
	case EventUpload:
		return "upload"
	case EventDownload:
		return "download"
	default:
		return "unknown"
	}
}

// EventFunc is the file-event callback: called once with status=false
// before a transfer starts and once with status=true after every
// completed operation (transfers and deletions).
type EventFunc func(item model.FileItem, kind EventKind, status bool)

// ErrFunc is the error callback: invoked whenever a dispatched operation
// returns a non-zero result, with the affected path attached.
type ErrFunc func(path string, err error)

// Callbacks bundles the two host hooks dispatch drives. Either field may
// be nil.
type Callbacks struct {
	OnEvent EventFunc
	OnError ErrFunc
}

func (c Callbacks) event(item model.FileItem, kind EventKind, status bool) {
	if c.OnEvent != nil {
		c.OnEvent(item, kind, status)
	}
}

func (c Callbacks) fail(path string, err error) {
	if err != nil && c.OnError != nil {
		c.OnError(path, err)
	}
}

// StopFunc reports whether the dispatch loop should terminate early, per
// spec section 4.4.5's "checks the stop flag on every iteration".
type StopFunc func() bool

// dispatchPass drains a pass's SyncQueue in the fixed l_del -> r_del ->
// r_new -> l_new order (spec 4.4.5, a hard contract observed by tests).
// localDirs/remoteDirs are pruned for directory deletes so the next pass
// does not walk into them.
func dispatchPass(remote RemoteAdapter, local LocalAdapter, localDirs, remoteDirs *model.DirList, base *model.DirSnapshot, queue model.SyncQueue, cb Callbacks, stop StopFunc) {
	// l_del: deleted locally. The local copy vanished; per spec 4.4.5 the
	// remove/rmdir for an l_del entry is applied to the remote side.
	for _, entry := range queue.LDel {
		if stop() {
			return
		}

		dispatchDeleteRemote(remote, localDirs, remoteDirs, entry, cb)
	}

	// r_del: deleted remotely; remove/rmdir applied to the local side.
	for _, entry := range queue.RDel {
		if stop() {
			return
		}

		dispatchDeleteLocal(local, localDirs, remoteDirs, entry, cb)
	}

	for _, ref := range queue.RNew {
		if stop() {
			return
		}

		dispatchDownload(remote, local, base, ref, cb)
	}

	for _, ref := range queue.LNew {
		if stop() {
			return
		}

		dispatchUpload(remote, local, base, ref, cb)
	}
}

// dispatchDeleteRemote handles an l_del entry: the local copy is already
// gone, so the remote copy is rmdir'd/removed to match. A directory delete
// prunes both DirLists -- remoteDirs because the directory is being
// removed here, localDirs because the local side already lost it (that's
// why this is an l_del) and would otherwise retain a stale key the next
// walk tries to OpenDir and fails on forever.
func dispatchDeleteRemote(remote RemoteAdapter, localDirs, remoteDirs *model.DirList, entry model.QueueEntry, cb Callbacks) {
	relPath := childPath(entry.DirKey, entry.Item.Name)

	var err error

	switch entry.Item.Type {
	case model.TypeDirectory:
		err = remote.Rmdir(relPath)

		childKey := model.ChildKey("/", entry.DirKey, entry.Item.Name)
		remoteDirs.Delete(childKey)
		localDirs.Delete(childKey)
	case model.TypeSymlink, model.TypeRegular:
		err = remote.Remove(relPath)
	default:
		return
	}

	cb.fail(relPath, err)
	cb.event(entry.Item, EventRemoteDelete, true)
}

// dispatchDeleteLocal handles an r_del entry: the remote copy is already
// gone, so the local copy is rmdir'd/removed to match, pruning both
// DirLists for the same reason dispatchDeleteRemote does, mirrored.
func dispatchDeleteLocal(local LocalAdapter, localDirs, remoteDirs *model.DirList, entry model.QueueEntry, cb Callbacks) {
	relPath := childPath(entry.DirKey, entry.Item.Name)

	var err error

	switch entry.Item.Type {
	case model.TypeDirectory:
		err = local.Rmdir(relPath)

		childKey := model.ChildKey("/", entry.DirKey, entry.Item.Name)
		localDirs.Delete(childKey)
		remoteDirs.Delete(childKey)
	case model.TypeSymlink, model.TypeRegular:
		err = local.Remove(relPath)
	default:
		return
	}

	cb.fail(relPath, err)
	cb.event(entry.Item, EventLocalDelete, true)
}

// dispatchDownload materializes one r_new entry: the remote side is
// authoritative, the local side is written to. ref is re-resolved
// against base since r_new holds a composite key rather than a live
// pointer (spec section 9's mixed-ownership note).
func dispatchDownload(remote RemoteAdapter, local LocalAdapter, base *model.DirSnapshot, ref model.QueueRef, cb Callbacks) {
	item, ok := base.Dir(ref.DirKey).Get(ref.Name)
	if !ok {
		return
	}

	relPath := childPath(ref.DirKey, ref.Name)

	switch item.Type {
	case model.TypeDirectory:
		err := local.Mkdir(relPath, item.Attr)

		cb.fail(relPath, err)
		cb.event(item, EventDownload, true)

	case model.TypeSymlink:
		localAbs, err := local.AbsPath(relPath)
		if err == nil {
			err = remote.DownloadSymlink(relPath, localAbs)
		}

		cb.fail(relPath, err)
		cb.event(item, EventDownload, true)

	case model.TypeRegular:
		cb.event(item, EventDownload, false)

		localAbs, err := local.AbsPath(relPath)
		if err == nil {
			_, err = remote.DownloadFile(relPath, localAbs)
		}

		cb.fail(relPath, err)
		cb.event(item, EventDownload, true)

	default:
		// Device, FIFO, socket: silently skipped per spec 4.4.5.
	}
}

// dispatchUpload materializes one l_new entry: the local side is
// authoritative, the remote side is written to.
func dispatchUpload(remote RemoteAdapter, local LocalAdapter, base *model.DirSnapshot, ref model.QueueRef, cb Callbacks) {
	item, ok := base.Dir(ref.DirKey).Get(ref.Name)
	if !ok {
		return
	}

	relPath := childPath(ref.DirKey, ref.Name)

	switch item.Type {
	case model.TypeDirectory:
		err := remote.Mkdir(relPath, item.Attr)

		cb.fail(relPath, err)
		cb.event(item, EventUpload, true)

	case model.TypeSymlink:
		// A local symlink is uploaded as a regular file copy: the remote
		// adapter exposes no up_symlink counterpart to down_symlink, mirroring
		// what the spec's C2 surface actually offers. Symlinks aren't file
		// transfers, so -- like Mkdir above -- this gets no start event.
		localAbs, err := local.AbsPath(relPath)
		if err == nil {
			_, err = remote.UploadFile(localAbs, relPath)
		}

		cb.fail(relPath, err)
		cb.event(item, EventUpload, true)

	case model.TypeRegular:
		cb.event(item, EventUpload, false)

		localAbs, err := local.AbsPath(relPath)
		if err == nil {
			_, err = remote.UploadFile(localAbs, relPath)
		}

		cb.fail(relPath, err)
		cb.event(item, EventUpload, true)

	default:
		// Device, FIFO, socket: silently skipped per spec 4.4.5.
	}
}

func childPath(dirKey, name string) string {
	if dirKey == model.RootKey {
		return name
	}

	return dirKey + "/" + name
}
