package reconcile

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sftpsync/watcher/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// dirCursor backs the Handle field scriptedRemote/scriptedLocal hand out
// from OpenDir, so ReadDir can replay a fixed entry list per directory --
// the same Handle-threading contract the real adapters use.
type dirCursor struct {
	items []model.FileItem
	idx   int
}

type scriptedRemote struct {
	entries map[string][]model.FileItem
	log     *[]call
	fail    map[string]error
}

func (f *scriptedRemote) OpenDir(relPath string) (*model.Directory, error) {
	return &model.Directory{RelPath: relPath, Handle: &dirCursor{items: f.entries[relPath]}}, nil
}

func (f *scriptedRemote) ReadDir(dir *model.Directory) (model.FileItem, bool, error) {
	c := dir.Handle.(*dirCursor)
	if c.idx >= len(c.items) {
		return model.FileItem{}, false, nil
	}

	item := c.items[c.idx]
	c.idx++

	return item, true, nil
}

func (f *scriptedRemote) CloseDir(*model.Directory) error { return nil }

func (f *scriptedRemote) Mkdir(relPath string, _ model.Attr) error {
	*f.log = append(*f.log, call{"r.mkdir", relPath})
	return f.fail[relPath]
}

func (f *scriptedRemote) Rmdir(relPath string) error {
	*f.log = append(*f.log, call{"r.rmdir", relPath})
	return f.fail[relPath]
}

func (f *scriptedRemote) Remove(relPath string) error {
	*f.log = append(*f.log, call{"r.remove", relPath})
	return f.fail[relPath]
}

func (f *scriptedRemote) DownloadFile(relPath, _ string) (model.Attr, error) {
	*f.log = append(*f.log, call{"r.download", relPath})
	return model.Attr{}, f.fail[relPath]
}

func (f *scriptedRemote) UploadFile(_, relPath string) (model.Attr, error) {
	*f.log = append(*f.log, call{"r.upload", relPath})
	return model.Attr{}, f.fail[relPath]
}

func (f *scriptedRemote) DownloadSymlink(relPath, _ string) error {
	*f.log = append(*f.log, call{"r.downlink", relPath})
	return f.fail[relPath]
}

type scriptedLocal struct {
	entries map[string][]model.FileItem
	log     *[]call
	fail    map[string]error
}

func (f *scriptedLocal) OpenDir(relPath string) (*model.Directory, error) {
	return &model.Directory{RelPath: relPath, Handle: &dirCursor{items: f.entries[relPath]}}, nil
}

func (f *scriptedLocal) ReadDir(dir *model.Directory) (model.FileItem, bool, error) {
	c := dir.Handle.(*dirCursor)
	if c.idx >= len(c.items) {
		return model.FileItem{}, false, nil
	}

	item := c.items[c.idx]
	c.idx++

	return item, true, nil
}

func (f *scriptedLocal) CloseDir(*model.Directory) error { return nil }

func (f *scriptedLocal) Mkdir(relPath string, _ model.Attr) error {
	*f.log = append(*f.log, call{"l.mkdir", relPath})
	return f.fail[relPath]
}

func (f *scriptedLocal) Rmdir(relPath string) error {
	*f.log = append(*f.log, call{"l.rmdir", relPath})
	return f.fail[relPath]
}

func (f *scriptedLocal) Remove(relPath string) error {
	*f.log = append(*f.log, call{"l.remove", relPath})
	return f.fail[relPath]
}

func (f *scriptedLocal) AbsPath(relPath string) (string, error) {
	return "/local/" + relPath, nil
}

func TestClear_ReturnsFreshRootOnlyState(t *testing.T) {
	dirs, snaps := Clear("/local", "/remote")

	assert.True(t, dirs.Local.Has(model.RootKey))
	assert.True(t, dirs.Remote.Has(model.RootKey))
	assert.Equal(t, 1, len(dirs.Local.Keys()))
	assert.Equal(t, 1, len(dirs.Remote.Keys()))
	assert.Equal(t, 1, len(snaps.Local.Keys()))
	assert.Equal(t, 1, len(snaps.Remote.Keys()))
	assert.Equal(t, 1, len(snaps.Base.Keys()))
}

// TestPass_UploadsLocalOnlyFileOnFirstPass exercises the full
// walk -> diff -> dispatch pipeline for the simplest end-to-end case: a
// file observed only on the local walk is uploaded, and the resulting
// queue stats report exactly one l_new.
func TestPass_UploadsLocalOnlyFileOnFirstPass(t *testing.T) {
	var log []call

	remote := &scriptedRemote{log: &log, fail: map[string]error{}, entries: map[string][]model.FileItem{}}
	local := &scriptedLocal{log: &log, fail: map[string]error{}, entries: map[string][]model.FileItem{
		"": {{Name: "a.txt", Type: model.TypeRegular, Attr: model.Attr{Size: 10}}},
	}}

	dirs := Dirs{Local: model.NewDirList("/local"), Remote: model.NewDirList("/remote")}
	snaps := Snapshots{Local: model.NewDirSnapshot(), Remote: model.NewDirSnapshot(), Base: model.NewDirSnapshot()}

	stats := Pass(remote, local, dirs, snaps, Callbacks{}, noStop, true, discardLogger())

	assert.Equal(t, 1, stats.LNew)
	assert.Equal(t, 0, stats.RNew)
	assert.Equal(t, 0, stats.LDel)
	assert.Equal(t, 0, stats.RDel)
	require.Len(t, log, 1)
	assert.Equal(t, call{"r.upload", "a.txt"}, log[0])
}

func TestPass_NoOpWhenNothingChanged(t *testing.T) {
	var log []call

	remote := &scriptedRemote{log: &log, fail: map[string]error{}, entries: map[string][]model.FileItem{}}
	local := &scriptedLocal{log: &log, fail: map[string]error{}, entries: map[string][]model.FileItem{}}

	dirs := Dirs{Local: model.NewDirList("/local"), Remote: model.NewDirList("/remote")}
	snaps := Snapshots{Local: model.NewDirSnapshot(), Remote: model.NewDirSnapshot(), Base: model.NewDirSnapshot()}

	stats := Pass(remote, local, dirs, snaps, Callbacks{}, noStop, true, discardLogger())

	assert.Equal(t, PassStats{}, stats)
	assert.Empty(t, log)
}

// TestPass_NoOpWhenBothSidesAlreadyMatchBase confirms that a file
// observed identically on both walks, matching what base already
// records, produces no queue entries -- the converged case of the
// conflict sub-table where neither side has diverged from base.
func TestPass_NoOpWhenBothSidesAlreadyMatchBase(t *testing.T) {
	var log []call

	item := model.FileItem{Name: "a.txt", Type: model.TypeRegular, Attr: model.Attr{Size: 10}}

	remote := &scriptedRemote{log: &log, fail: map[string]error{}, entries: map[string][]model.FileItem{
		"": {item},
	}}
	local := &scriptedLocal{log: &log, fail: map[string]error{}, entries: map[string][]model.FileItem{
		"": {item},
	}}

	dirs := Dirs{Local: model.NewDirList("/local"), Remote: model.NewDirList("/remote")}
	snaps := Snapshots{Local: model.NewDirSnapshot(), Remote: model.NewDirSnapshot(), Base: model.NewDirSnapshot()}
	snaps.Base.Dir(model.RootKey).Set("a.txt", item)

	stats := Pass(remote, local, dirs, snaps, Callbacks{}, noStop, true, discardLogger())

	assert.Equal(t, PassStats{}, stats)
	assert.Empty(t, log)
}
