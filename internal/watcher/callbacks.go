package watcher

import (
	"github.com/sftpsync/watcher/internal/model"
	"github.com/sftpsync/watcher/internal/reconcile"
)

// EventKind re-exports reconcile.EventKind so hosts never need to
// import internal/reconcile directly.
type EventKind = reconcile.EventKind

const (
	EventLocalDelete  = reconcile.EventLocalDelete
	EventRemoteDelete = reconcile.EventRemoteDelete
	EventUpload       = reconcile.EventUpload
	EventDownload     = reconcile.EventDownload
)

// FileEventFunc is the host's file-event hook, per spec section 6:
// called once with status=false before a transfer starts and once with
// status=true after every completed operation (transfers and
// deletions).
type FileEventFunc func(item model.FileItem, kind EventKind, status bool)

// ErrorFunc is the host's error hook, invoked whenever a dispatched
// operation fails or a root fails validation.
type ErrorFunc func(path string, err error)

// CleanupFunc is invoked once after the worker loop exits, whether it
// stopped cleanly or due to a terminal root-validation failure.
type CleanupFunc func()

// Callbacks bundles the three host hooks. Any field may be nil.
//
// Per spec section 5's "the worker suspends ... until the callback
// indicates completion, so the host sees one in-flight event at a time",
// invocations are serialized by routing them through a capacity-1
// channel rather than calling the host function directly inline: a
// slow or blocking host handler for one event cannot be skipped ahead
// of by a concurrent one, and the dispatch loop backpressures on the
// channel exactly as it would on a semaphore wait.
type Callbacks struct {
	OnFileEvent FileEventFunc
	OnError     ErrorFunc
	OnCleanup   CleanupFunc
}

// deliver wraps Callbacks behind a capacity-1 channel worker so the
// reconcile package's synchronous Callbacks can be driven without the
// dispatch loop ever blocking on a slow host handler for longer than
// one event at a time.
type deliver struct {
	ch   chan func()
	done chan struct{}
}

func newDeliver() *deliver {
	d := &deliver{ch: make(chan func(), 1), done: make(chan struct{})}

	go func() {
		defer close(d.done)

		for fn := range d.ch {
			fn()
		}
	}()

	return d
}

func (d *deliver) send(fn func()) {
	d.ch <- fn
}

func (d *deliver) close() {
	close(d.ch)
	<-d.done
}

// reconcileCallbacks adapts the host-facing Callbacks into the
// reconcile package's synchronous Callbacks, serialized through d.
func (w *Watcher) reconcileCallbacks(d *deliver) reconcile.Callbacks {
	return reconcile.Callbacks{
		OnEvent: func(item model.FileItem, kind EventKind, status bool) {
			if w.cb.OnFileEvent == nil {
				return
			}

			d.send(func() { w.cb.OnFileEvent(item, kind, status) })
		},
		OnError: func(path string, err error) {
			w.setLastErr(err)

			if w.cb.OnError == nil {
				return
			}

			d.send(func() { w.cb.OnError(path, err) })
		},
	}
}
