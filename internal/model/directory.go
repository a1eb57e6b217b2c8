package model

// RootKey is the snapshot key for the root directory on either side.
const RootKey = "/"

// Directory is a discovered directory descriptor. Depth exists so an
// optional maximum-depth policy can gate expansion; root is depth 0.
type Directory struct {
	AbsPath string
	RelPath string // root-relative; empty for the root
	Depth   int
	Opened  bool
	// Handle is an opaque enumeration handle. Its concrete type differs
	// between the remote adapter (its own dirHandle holding the entry list
	// read in OpenDir) and the local adapter (its own dirHandle wrapping
	// the open *os.File and its entries); the reconciliation engine
	// never inspects it, only threads it between OpenDir/ReadDir/CloseDir
	// calls on the owning adapter.
	Handle any
}

// Key returns the snapshot key for a directory: "/" for the root, or its
// root-relative path otherwise.
func (d *Directory) Key() string {
	if d.RelPath == "" {
		return RootKey
	}

	return d.RelPath
}

// DirList is an ordered mapping from relative-directory key to
// directory descriptor. Maintained separately for remote and local.
type DirList struct {
	*OrderedMap[*Directory]
}

// NewDirList creates a DirList containing only the root sentinel entry.
func NewDirList(rootAbsPath string) *DirList {
	dl := &DirList{OrderedMap: NewOrderedMap[*Directory]()}
	dl.Set(RootKey, &Directory{AbsPath: rootAbsPath, RelPath: "", Depth: 0})

	return dl
}

// PathFile is an ordered mapping from entry name (within the directory)
// to file item -- the contents of one directory.
type PathFile struct {
	*OrderedMap[FileItem]
}

// NewPathFile creates an empty PathFile.
func NewPathFile() *PathFile {
	return &PathFile{OrderedMap: NewOrderedMap[FileItem]()}
}

// DirSnapshot is an ordered mapping from relative-directory key to
// PathFile. local_snap, remote_snap, and base_snap are each a DirSnapshot.
type DirSnapshot struct {
	*OrderedMap[*PathFile]
}

// NewDirSnapshot creates a DirSnapshot with an empty PathFile registered
// for the root directory key, matching DirList's root sentinel.
func NewDirSnapshot() *DirSnapshot {
	ds := &DirSnapshot{OrderedMap: NewOrderedMap[*PathFile]()}
	ds.Set(RootKey, NewPathFile())

	return ds
}

// Dir returns the PathFile for a directory key, creating an empty one if
// absent. This is the mutation entry point the walk phase uses so it
// never has to special-case "directory not yet in the snapshot".
func (ds *DirSnapshot) Dir(key string) *PathFile {
	pf, ok := ds.Get(key)
	if !ok {
		pf = NewPathFile()
		ds.Set(key, pf)
	}

	return pf
}
