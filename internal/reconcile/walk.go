package reconcile

import (
	"log/slog"

	"github.com/sftpsync/watcher/internal/model"
)

// ins records, per directory key, which names were observed (added,
// removed, or changed) during this pass's walk -- spec section 4.4.1's
// `ins[snap_key]`. The diff phase only evaluates paths present here.
type ins map[string]map[string]struct{}

func newIns() ins {
	return make(ins)
}

func (i ins) mark(dirKey, name string) {
	set, ok := i[dirKey]
	if !ok {
		set = make(map[string]struct{})
		i[dirKey] = set
	}

	set[name] = struct{}{}
}

func (i ins) touch(dirKey string) {
	if _, ok := i[dirKey]; !ok {
		i[dirKey] = make(map[string]struct{})
	}
}

// side bundles one side's adapter, directory list, and snapshot so
// walkSide can operate on either local or remote uniformly -- both walks
// are structurally identical per spec section 4.4.3 ("Identical in
// structure to the remote walk").
type side struct {
	dirs *model.DirList
	snap *model.DirSnapshot
}

// dirEnumerator is the minimal surface walkSide needs, satisfied by both
// RemoteAdapter and LocalAdapter.
type dirEnumerator interface {
	OpenDir(relPath string) (*model.Directory, error)
	ReadDir(dir *model.Directory) (model.FileItem, bool, error)
	CloseDir(dir *model.Directory) error
}

// walkSide performs spec section 4.4.2/4.4.3's walk for one side: opens
// every directory currently known to dirs, reconciles its snapshot
// against what's observed, and records touched directories/names in
// observed. A directory whose open fails increments errCount and halts
// the rest of this side's walk for the pass -- "increment the
// consecutive-error counter and stop the walk" -- leaving any
// directories not yet reached untouched; the dispatch phase still
// processes whatever queue the diff phase built from what was walked.
func walkSide(adapter dirEnumerator, s side, log *slog.Logger) (observed ins, errCount int) {
	observed = newIns()

	for _, dirKey := range s.dirs.Keys() {
		dir, ok := s.dirs.Get(dirKey)
		if !ok {
			continue
		}

		if err := walkOneDir(adapter, s, dir, observed); err != nil {
			errCount++

			log.Warn("walk: opening directory failed", "dir", dirKey, "err", err)

			break
		}
	}

	return observed, errCount
}

func walkOneDir(adapter dirEnumerator, s side, dir *model.Directory, observed ins) error {
	opened, err := adapter.OpenDir(dir.RelPath)
	if err != nil {
		return err
	}

	defer func() { _ = adapter.CloseDir(opened) }()

	dirKey := dir.Key()
	observed.touch(dirKey)

	pathFile := s.snap.Dir(dirKey)
	current := make(map[string]struct{})

	for {
		item, ok, err := adapter.ReadDir(opened)
		if err != nil {
			return err
		}

		if !ok {
			break
		}

		if item.Type == model.TypeInvalid {
			continue
		}

		current[item.Name] = struct{}{}

		if existing, has := pathFile.Get(item.Name); !has || !existing.Attr.Equivalent(item.Attr) {
			pathFile.Set(item.Name, item)
			observed.mark(dirKey, item.Name)
		}

		if item.Type == model.TypeDirectory {
			childKey := model.ChildKey("/", dirKey, item.Name)

			if !s.dirs.Has(childKey) {
				s.dirs.Set(childKey, &model.Directory{
					AbsPath: dir.AbsPath + "/" + item.Name,
					RelPath: childKey,
					Depth:   dir.Depth + 1,
				})
			}
		}
	}

	for _, name := range pathFile.Keys() {
		if _, seen := current[name]; !seen {
			observed.mark(dirKey, name)
			pathFile.Delete(name)
		}
	}

	return nil
}
