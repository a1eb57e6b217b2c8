// Package model holds the data types shared by the remote adapter, the
// local adapter, and the reconciliation engine: file items, directory
// descriptors, the ordered snapshot maps, and the dispatch queue. It has
// no behavior of its own -- see internal/reconcile for the algorithms
// that operate on these types.
package model

import "io/fs"

// AttrFlags marks which fields of Attr were actually populated by the
// side that produced it. SFTP attribute responses are sparse (a server
// may omit uid/gid or times), so callers must check Valid before trusting
// a zero value.
type AttrFlags uint8

const (
	AttrSize AttrFlags = 1 << iota
	AttrMTime
	AttrATime
	AttrOwner
	AttrPermissions
)

// Has reports whether all bits in want are set.
func (f AttrFlags) Has(want AttrFlags) bool {
	return f&want == want
}

// Attr is the common attribute record for a file item, translated from
// either an SFTP FileStat or an os.FileInfo/syscall.Stat_t pair.
type Attr struct {
	Size  int64
	MTime int64 // seconds since epoch
	ATime int64 // seconds since epoch
	UID   uint32
	GID   uint32
	Mode  fs.FileMode
	Valid AttrFlags
}

// Equivalent reports whether two attribute records describe the same
// file for sync purposes. Per the spec's equivalence definition, this is
// size and modification time only -- no other field may affect the diff.
func (a Attr) Equivalent(b Attr) bool {
	return a.Size == b.Size && a.MTime == b.MTime
}

// EntryType classifies a directory entry. Named after POSIX file types;
// Invalid marks an entry whose mode matches none of the other types, and
// the walk skips such entries.
type EntryType uint8

const (
	TypeInvalid EntryType = iota
	TypeRegular
	TypeDirectory
	TypeSymlink
	TypeCharDevice
	TypeBlockDevice
	TypeFIFO
	TypeSocket
)

// FileItem is a named entry discovered in a directory. Name is the bare
// entry name within its directory; the directory's snapshot key supplies
// the rest of the root-relative path.
type FileItem struct {
	Name string
	Type EntryType
	Attr Attr
}
