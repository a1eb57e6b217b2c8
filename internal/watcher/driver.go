package watcher

import (
	"fmt"
	"time"

	"github.com/sftpsync/watcher/internal/reconcile"
)

// sleepSlice is the granularity of the inter-pass sleep, per spec
// section 4.5 step 3: "sleep delay_ms in 50 ms slices that each recheck
// the stop flag, yielding prompt cancellation."
const sleepSlice = 50 * time.Millisecond

// Start validates both roots, then begins the worker loop in a
// background goroutine. Must be preceded by a successful Connect, per
// spec section 6.
func (w *Watcher) Start() error {
	if err := w.validateRoots(); err != nil {
		w.setLastErr(err)
		w.emitError("", err)

		if w.cb.OnCleanup != nil {
			w.cb.OnCleanup()
		}

		return err
	}

	w.stateMu.Lock()
	w.stopFlag = false
	w.stateMu.Unlock()

	if ws, err := startWakeSource(w.cfg.LocalPath); err != nil {
		w.log.Warn("fsnotify early-wake disabled", "err", err)
	} else {
		w.wake = ws
	}

	w.wg.Add(1)

	go w.run()

	return nil
}

// Stop raises the stop flag and blocks until the worker has joined and
// the cleanup callback has returned, per spec section 6.
func (w *Watcher) Stop() {
	w.requestStop()
	w.wg.Wait()

	if w.wake != nil {
		w.wake.stop()
		w.wake = nil
	}
}

// validateRoots performs the open_dir+close_dir round-trip spec section
// 4.5 step 1 requires for both roots before the loop starts.
func (w *Watcher) validateRoots() error {
	remoteDir, err := w.remote.OpenDir("")
	if err != nil {
		return fmt.Errorf("validating remote root %s: %w", w.cfg.RemotePath, err)
	}

	if err := w.remote.CloseDir(remoteDir); err != nil {
		return fmt.Errorf("closing remote root %s: %w", w.cfg.RemotePath, err)
	}

	localDir, err := w.local.OpenDir("")
	if err != nil {
		return fmt.Errorf("validating local root %s: %w", w.cfg.LocalPath, err)
	}

	if err := w.local.CloseDir(localDir); err != nil {
		return fmt.Errorf("closing local root %s: %w", w.cfg.LocalPath, err)
	}

	return nil
}

func (w *Watcher) run() {
	defer w.wg.Done()

	d := newDeliver()
	defer d.close()

	cb := w.reconcileCallbacks(d)

	for !w.shouldStop() {
		stats := reconcile.Pass(w.remote, w.local, w.dirs, w.snaps, cb, w.shouldStop, !w.cfg.IsProduction(), w.log)

		if stats.WalkErrCount > 0 {
			w.errCount += stats.WalkErrCount
		} else {
			w.errCount = 0
		}

		if w.errCount >= w.cfg.MaxErrCount {
			w.log.Warn("consecutive walk error threshold reached, reconnecting", "count", w.errCount)

			if !w.reconnectLoop() {
				break // stop was requested during reconnect
			}

			w.errCount = 0
		}

		if w.shouldStop() {
			break
		}

		w.sleepInterPass()
	}

	if w.cb.OnCleanup != nil {
		w.cb.OnCleanup()
	}
}

// reconnectLoop retries connect+authenticate with additive backoff
// starting at delay_ms, adding delay_ms each failed attempt, capped at
// timeout_sec*1000 (spec 4.5 step 2), until it succeeds or stop is
// raised. Returns false if it exited because of a stop request.
func (w *Watcher) reconnectLoop() bool {
	_ = w.remote.Disconnect()

	backoff := time.Duration(w.cfg.DelayMs) * time.Millisecond
	ceiling := time.Duration(w.cfg.Timeout) * time.Second

	for {
		if w.shouldStop() {
			return false
		}

		if w.attemptReconnect() {
			return true
		}

		if !w.sleepInterruptible(backoff) {
			return false
		}

		backoff += time.Duration(w.cfg.DelayMs) * time.Millisecond
		if backoff > ceiling {
			backoff = ceiling
		}
	}
}

func (w *Watcher) attemptReconnect() bool {
	if err := w.remote.Connect(); err != nil {
		w.setLastErr(err)
		return false
	}

	if err := w.remote.Authenticate(); err != nil {
		w.setLastErr(err)
		return false
	}

	w.setStatus(w.remote.Status())
	w.setFingerprint(w.remote.Fingerprint())

	return true
}

// sleepInterPass sleeps delay_ms in 50ms slices, rechecking the stop
// flag between each so a stop request is observed promptly. A pending
// fsnotify wake cuts the sleep short -- latency only, the next pass
// still runs in full regardless of why it woke.
func (w *Watcher) sleepInterPass() {
	w.sleepInterruptible(time.Duration(w.cfg.DelayMs) * time.Millisecond)
}

// sleepInterruptible sleeps d in sleepSlice increments, returning false
// early if the stop flag is raised mid-sleep.
func (w *Watcher) sleepInterruptible(d time.Duration) bool {
	for remaining := d; remaining > 0; remaining -= sleepSlice {
		if w.shouldStop() {
			return false
		}

		if w.wake != nil {
			select {
			case <-w.wake.wakeCh:
				return true
			default:
			}
		}

		slice := sleepSlice
		if remaining < slice {
			slice = remaining
		}

		time.Sleep(slice)
	}

	return true
}

func (w *Watcher) emitError(path string, err error) {
	w.setLastErr(err)

	if w.cb.OnError != nil {
		w.cb.OnError(path, err)
	}
}

