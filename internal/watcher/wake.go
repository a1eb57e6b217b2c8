package watcher

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// wakeSource watches the local root with fsnotify and signals wakeCh
// whenever something changes, so the driver's inter-pass sleep can cut
// short instead of waiting out the full delay_ms. This is a latency
// optimization only: fsnotify has no remote-side counterpart and misses
// events under high filesystem load, so it never replaces the periodic
// walk -- a pass still runs on its own regardless of whether a wake
// fired. Grounded on the teacher's vault.Watch/addRecursive, trimmed to
// a fire-and-forget signal rather than an index update.
type wakeSource struct {
	watcher *fsnotify.Watcher
	wakeCh  chan struct{}
	done    chan struct{}
}

// startWakeSource begins watching root recursively. A failure here is
// non-fatal -- per the teacher's comment on fsnotify errors, the watcher
// just falls back to delay_ms-only pacing.
func startWakeSource(root string) (*wakeSource, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := addRecursive(fw, root); err != nil {
		_ = fw.Close()
		return nil, err
	}

	ws := &wakeSource{
		watcher: fw,
		wakeCh:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}

	go ws.loop()

	return ws, nil
}

func (ws *wakeSource) loop() {
	defer close(ws.done)

	for {
		select {
		case event, ok := <-ws.watcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Lstat(event.Name); err == nil && info.IsDir() {
					_ = ws.watcher.Add(event.Name)
				}
			}

			ws.signal()

		case _, ok := <-ws.watcher.Errors:
			if !ok {
				return
			}
			// Non-fatal; the periodic walk still runs on its own cadence.
		}
	}
}

func (ws *wakeSource) signal() {
	select {
	case ws.wakeCh <- struct{}{}:
	default:
		// Already pending; the driver will wake on its next select.
	}
}

func (ws *wakeSource) stop() {
	_ = ws.watcher.Close()
	<-ws.done
}

// addRecursive adds every directory under root to fw, skipping hidden
// directories (names starting with ".") below root.
func addRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		if d.Name() != filepath.Base(root) && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}

		return fw.Add(path)
	})
}
