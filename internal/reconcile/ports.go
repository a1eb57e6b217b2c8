// Package reconcile is the reconciliation engine (component C4): the
// three-way snapshot diff described in spec sections 4.4 and 8. It is
// grounded on the teacher's internal/obsidian.Reconciler -- the decision
// table, phased walk/diff/dispatch structure, and conflict sub-table
// follow its reconcile.go, generalized from a single server-authoritative
// merge to the symmetric remote-wins three-way diff this spec defines.
package reconcile

import "github.com/sftpsync/watcher/internal/model"

//go:generate go run go.uber.org/mock/mockgen -source=ports.go -destination=mock_ports_test.go -package=reconcile

// RemoteAdapter is the subset of internal/remote.Adapter the engine
// drives during a pass. Defined here (rather than depended on directly)
// so tests can substitute a mock, per the teacher's wsConn-interface
// pattern in internal/obsidian/sync.go.
type RemoteAdapter interface {
	OpenDir(relPath string) (*model.Directory, error)
	ReadDir(dir *model.Directory) (model.FileItem, bool, error)
	CloseDir(dir *model.Directory) error
	Mkdir(relPath string, attr model.Attr) error
	Rmdir(relPath string) error
	Remove(relPath string) error
	DownloadFile(relPath, localAbsPath string) (model.Attr, error)
	UploadFile(localAbsPath, relPath string) (model.Attr, error)
	DownloadSymlink(relPath, localAbsPath string) error
}

// LocalAdapter is the subset of internal/localfs.Adapter the engine
// drives during a pass.
type LocalAdapter interface {
	OpenDir(relPath string) (*model.Directory, error)
	ReadDir(dir *model.Directory) (model.FileItem, bool, error)
	CloseDir(dir *model.Directory) error
	Mkdir(relPath string, attr model.Attr) error
	Rmdir(relPath string) error
	Remove(relPath string) error
	// AbsPath resolves a root-relative path to an absolute local path, for
	// the engine to hand to the remote adapter's transfer calls.
	AbsPath(relPath string) (string, error)
}
