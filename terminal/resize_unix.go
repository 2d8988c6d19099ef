//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"os"
	"os/signal"
	"syscall"
)

// ResizeWatcher records SIGWINCH notifications for a single-threaded poller.
// Bursts coalesce into one pending flag; the poller re-probes when it drains it.
type ResizeWatcher struct {
	sigCh   chan os.Signal
	pending chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// WatchResize starts listening for SIGWINCH
func WatchResize() *ResizeWatcher {
	w := &ResizeWatcher{
		sigCh:   make(chan os.Signal, 1),
		pending: make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	signal.Notify(w.sigCh, syscall.SIGWINCH)
	go w.watchLoop()
	return w
}

// Pending reports and clears an outstanding resize notification without blocking
func (w *ResizeWatcher) Pending() bool {
	select {
	case <-w.pending:
		return true
	default:
		return false
	}
}

// Stop stops the watcher; safe to call once
func (w *ResizeWatcher) Stop() {
	signal.Stop(w.sigCh)
	close(w.stopCh)
	<-w.doneCh
}

func (w *ResizeWatcher) watchLoop() {
	defer close(w.doneCh)

	for {
		select {
		case <-w.stopCh:
			return
		case <-w.sigCh:
			// Non-blocking post, an undrained notification already covers this one
			select {
			case w.pending <- struct{}{}:
			default:
			}
		}
	}
}
