package reconcile

import (
	"github.com/sftpsync/watcher/internal/errors"
	"github.com/sftpsync/watcher/internal/model"
)

// diffResult is the output of one pass's diff phase: the four ordered
// queues dispatch.go drains, per spec section 3's SyncQueue.
type diffResult struct {
	queue model.SyncQueue
}

// diffPass evaluates spec section 4.4.4's three-way merge for every
// directory key touched this pass, then runs the orphan sweep over any
// base_snap directory key absent from observedLocal/observedRemote.
// base, local, and remote are mutated in place: entries are copied in on
// download/upload, dropped on delete, per the decision table.
func diffPass(base, local, remote *model.DirSnapshot, observedLocal, observedRemote ins, debug bool) diffResult {
	var result diffResult

	visited := make(map[string]struct{}, len(observedLocal)+len(observedRemote))

	for dirKey, names := range observedLocal {
		visited[dirKey] = struct{}{}
		diffDirectory(dirKey, names, base, local, remote, &result.queue, debug)
	}

	for dirKey, names := range observedRemote {
		if _, already := visited[dirKey]; already {
			continue
		}

		visited[dirKey] = struct{}{}
		diffDirectory(dirKey, names, base, local, remote, &result.queue, debug)
	}

	sweepOrphans(base, local, remote, visited, &result.queue)

	return result
}

func diffDirectory(dirKey string, names map[string]struct{}, base, local, remote *model.DirSnapshot, queue *model.SyncQueue, debug bool) {
	baseDir := base.Dir(dirKey)
	localDir := local.Dir(dirKey)
	remoteDir := remote.Dir(dirKey)

	for name := range names {
		baseItem, hasBase := baseDir.Get(name)
		localItem, hasLocal := localDir.Get(name)
		remoteItem, hasRemote := remoteDir.Get(name)

		switch {
		case !hasBase && !hasLocal && hasRemote:
			baseDir.Set(name, remoteItem)
			queue.RNew = append(queue.RNew, model.QueueRef{DirKey: dirKey, Name: name})

		case !hasBase && hasLocal && !hasRemote:
			baseDir.Set(name, localItem)
			queue.LNew = append(queue.LNew, model.QueueRef{DirKey: dirKey, Name: name})

		case hasBase && hasLocal && !hasRemote:
			queue.RDel = append(queue.RDel, model.QueueEntry{DirKey: dirKey, Item: localItem})
			baseDir.Delete(name)
			localDir.Delete(name)

		case hasBase && !hasLocal && hasRemote:
			queue.LDel = append(queue.LDel, model.QueueEntry{DirKey: dirKey, Item: remoteItem})
			baseDir.Delete(name)
			remoteDir.Delete(name)

		case hasBase && !hasLocal && !hasRemote:
			// Base orphan with both sides already gone inside this same
			// directory's observed set. Swept here rather than deferred to
			// sweepOrphans since the directory itself was visited this pass.
			baseDir.Delete(name)

		case hasLocal && hasRemote:
			diffConflict(dirKey, name, baseItem, hasBase, localItem, remoteItem, baseDir, queue)

		default:
			errors.AssertUnreachable(debug, "reconcile.diffDirectory: all three existence bits false")
		}
	}
}

func diffConflict(dirKey, name string, baseItem model.FileItem, hasBase bool, localItem, remoteItem model.FileItem, baseDir *model.PathFile, queue *model.SyncQueue) {
	lbDiff := !hasBase || !localItem.Attr.Equivalent(baseItem.Attr)
	rbDiff := !hasBase || !remoteItem.Attr.Equivalent(baseItem.Attr)

	switch {
	case !lbDiff && !rbDiff:
		// No-op; already in sync.

	case lbDiff && !rbDiff:
		baseDir.Set(name, localItem)
		queue.LNew = append(queue.LNew, model.QueueRef{DirKey: dirKey, Name: name})

	case !lbDiff && rbDiff:
		baseDir.Set(name, remoteItem)
		queue.RNew = append(queue.RNew, model.QueueRef{DirKey: dirKey, Name: name})

	default: // lbDiff && rbDiff
		baseDir.Set(name, remoteItem)

		if !localItem.Attr.Equivalent(remoteItem.Attr) {
			queue.RNew = append(queue.RNew, model.QueueRef{DirKey: dirKey, Name: name})
		}
		// Both sides moved identically: base is refreshed from remote above
		// but nothing is enqueued, since there is nothing to transfer.
	}
}

// sweepOrphans handles spec section 4.4.4's orphan sweep: every base_snap
// directory key not visited this pass (absent from visited) has its
// entries enqueued for deletion on both sides and erased from all three
// snapshots.
func sweepOrphans(base, local, remote *model.DirSnapshot, visited map[string]struct{}, queue *model.SyncQueue) {
	for _, dirKey := range base.Keys() {
		if _, ok := visited[dirKey]; ok {
			continue
		}

		baseDir, _ := base.Get(dirKey)
		if baseDir == nil || baseDir.Len() == 0 {
			continue
		}

		for _, name := range baseDir.Keys() {
			item, _ := baseDir.Get(name)

			queue.LDel = append(queue.LDel, model.QueueEntry{DirKey: dirKey, Item: item})
			queue.RDel = append(queue.RDel, model.QueueEntry{DirKey: dirKey, Item: item})
		}

		local.Delete(dirKey)
		remote.Delete(dirKey)
		base.Delete(dirKey)
	}
}
