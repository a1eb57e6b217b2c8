package reconcile

import (
	"log/slog"

	"github.com/sftpsync/watcher/internal/model"
)

// Snapshots bundles the three directory snapshots a watcher context
// owns, per spec section 3: local_snap, remote_snap, base_snap.
type Snapshots struct {
	Local  *model.DirSnapshot
	Remote *model.DirSnapshot
	Base   *model.DirSnapshot
}

// Dirs bundles the two directory lists a watcher context owns.
type Dirs struct {
	Local  *model.DirList
	Remote *model.DirList
}

// PassStats summarizes one call to Pass, for the sync driver's
// consecutive-error threshold logic (spec 4.5 step 2).
type PassStats struct {
	WalkErrCount int
	LNew, RNew   int
	LDel, RDel   int
}

// Pass runs one full reconciliation pass: walk both sides, diff against
// base, then dispatch the resulting queue -- spec section 4.4's "one
// invocation corresponds to one pass". The walk phase always completes
// before the diff phase, which always completes before the dispatch
// phase (spec section 5's ordering guarantee).
func Pass(remote RemoteAdapter, local LocalAdapter, dirs Dirs, snaps Snapshots, cb Callbacks, stop StopFunc, debug bool, log *slog.Logger) PassStats {
	observedRemote, remoteErrs := walkSide(remote, side{dirs: dirs.Remote, snap: snaps.Remote}, log)
	observedLocal, localErrs := walkSide(local, side{dirs: dirs.Local, snap: snaps.Local}, log)

	result := diffPass(snaps.Base, snaps.Local, snaps.Remote, observedLocal, observedRemote, debug)

	dispatchPass(remote, local, dirs.Local, dirs.Remote, snaps.Base, result.queue, cb, stop)

	return PassStats{
		WalkErrCount: remoteErrs + localErrs,
		LNew:         len(result.queue.LNew),
		RNew:         len(result.queue.RNew),
		LDel:         len(result.queue.LDel),
		RDel:         len(result.queue.RDel),
	}
}

// Clear resets snapshots and directory lists to the single root entry
// and returns fresh zero-valued instances, per spec section 5's `clear`
// contract ("only called between stop-completion and the next start").
func Clear(localRoot, remoteRoot string) (Dirs, Snapshots) {
	return Dirs{
			Local:  model.NewDirList(localRoot),
			Remote: model.NewDirList(remoteRoot),
		}, Snapshots{
			Local:  model.NewDirSnapshot(),
			Remote: model.NewDirSnapshot(),
			Base:   model.NewDirSnapshot(),
		}
}
