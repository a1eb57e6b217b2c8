// Package watcher is the host-facing watcher context and sync driver
// (components C1 and C5): owned configuration and snapshots, the
// worker loop that drives the reconciliation engine at a configured
// cadence, reconnect backoff, and the callback surface the host
// consumes. Grounded on the teacher's internal/obsidian.SyncClient --
// the connectedMu-guarded-field pattern for state shared between the
// worker and the host, and the reconnect/backoff loop shape, carried
// over from a WebSocket-reconnect design to this SFTP one.
package watcher

import (
	"log/slog"
	"sync"

	"github.com/sftpsync/watcher/internal/config"
	"github.com/sftpsync/watcher/internal/localfs"
	"github.com/sftpsync/watcher/internal/reconcile"
	"github.com/sftpsync/watcher/internal/remote"
)

// Status mirrors remote.Status for host consumption without requiring
// the host to import internal/remote directly.
type Status = remote.Status

// Watcher is the watcher context (C1): owns configuration, the three
// snapshots, the two directory lists, connection state, and the
// lifecycle fields the host and the worker both touch. Per spec section
// 4.1, mutation of snapshots/dirs/connection state/status is confined to
// the worker during a pass; the host may read status/fingerprint/last
// error and write the stop flag at any time, guarded by stateMu.
type Watcher struct {
	cfg *config.Config
	log *slog.Logger

	remote *remote.Adapter
	local  *localfs.Adapter

	dirs  reconcile.Dirs
	snaps reconcile.Snapshots

	cb Callbacks

	stateMu  sync.RWMutex
	status   Status
	lastErr  error
	fp       []byte
	stopFlag bool

	errCount int

	wake *wakeSource
	wg   sync.WaitGroup
}

// New constructs a Watcher from a loaded configuration. Construction
// itself never touches the network; call Connect before Start.
func New(cfg *config.Config, cb Callbacks, log *slog.Logger) *Watcher {
	if log == nil {
		log = slog.Default()
	}

	ignore := localfs.NewIgnoreFilter(cfg.IgnorePatterns)

	w := &Watcher{
		cfg: cfg,
		log: log,
		remote: remote.New(remote.Config{
			Host:        cfg.Host,
			Port:        cfg.Port,
			Username:    cfg.Username,
			PubKeyPath:  cfg.PubKeyPath,
			PrivKeyPath: cfg.PrivKeyPath,
			Password:    cfg.Password,
			UseKeyboard: cfg.UseKeyboard,
			TimeoutSec:  cfg.Timeout,
		}),
		local: localfs.New(cfg.LocalPath, ignore),
		cb:    cb,
	}

	w.dirs, w.snaps = reconcile.Clear(cfg.LocalPath, cfg.RemotePath)

	return w
}

// Connect runs connect+authenticate against the remote endpoint. Per
// spec section 6, idempotent relative to status: calling it again after
// a successful connect is a cheap no-op check rather than a fresh dial.
func (w *Watcher) Connect() error {
	if w.remote.Status() == remote.StatusAuthenticated {
		return nil
	}

	if err := w.remote.Connect(); err != nil {
		w.setLastErr(err)
		return err
	}

	if err := w.remote.Authenticate(); err != nil {
		w.setLastErr(err)
		return err
	}

	w.setStatus(w.remote.Status())
	w.setFingerprint(w.remote.Fingerprint())

	return nil
}

// Fingerprint reads the server fingerprint bytes captured during the
// last successful handshake.
func (w *Watcher) Fingerprint() []byte {
	w.stateMu.RLock()
	defer w.stateMu.RUnlock()

	return w.fp
}

// GetError reads the most recent error record.
func (w *Watcher) GetError() error {
	w.stateMu.RLock()
	defer w.stateMu.RUnlock()

	return w.lastErr
}

// StatusValue reads the current connection status.
func (w *Watcher) StatusValue() Status {
	w.stateMu.RLock()
	defer w.stateMu.RUnlock()

	return w.status
}

func (w *Watcher) setStatus(s Status) {
	w.stateMu.Lock()
	w.status = s
	w.stateMu.Unlock()
}

func (w *Watcher) setFingerprint(fp []byte) {
	w.stateMu.Lock()
	w.fp = fp
	w.stateMu.Unlock()
}

func (w *Watcher) setLastErr(err error) {
	w.stateMu.Lock()
	w.lastErr = err
	w.stateMu.Unlock()

	if err != nil {
		w.log.Warn("watcher error", "err", err)
	}
}

// requestStop raises the stop flag. Cooperative: the worker observes it
// at the next checkpoint rather than being interrupted mid-syscall.
func (w *Watcher) requestStop() {
	w.stateMu.Lock()
	w.stopFlag = true
	w.stateMu.Unlock()
}

func (w *Watcher) shouldStop() bool {
	w.stateMu.RLock()
	defer w.stateMu.RUnlock()

	return w.stopFlag
}

// Clear resets snapshots and directory lists to the single root entry
// and zeros the consecutive-error counter. Per spec section 5, this must
// only be called between stop-completion and the next start.
func (w *Watcher) Clear() {
	w.dirs, w.snaps = reconcile.Clear(w.cfg.LocalPath, w.cfg.RemotePath)
	w.errCount = 0
}

