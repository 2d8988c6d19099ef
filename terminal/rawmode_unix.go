//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

// @lixen: #focus{sys[term,raw]}
package terminal

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// RawMode holds the single termios snapshot taken before entering raw mode.
// The snapshot is restored at most once; later Disable calls return the first result.
type RawMode struct {
	fd    int
	vtime uint8

	mu       sync.Mutex
	orig     *unix.Termios
	restored bool
	err      error
}

// NewRawMode prepares raw mode for fd with the given read window
func NewRawMode(fd int, readTimeout time.Duration) *RawMode {
	return &RawMode{fd: fd, vtime: Deciseconds(readTimeout)}
}

// Deciseconds converts a read window to a VTIME value clamped to [1, 255]
func Deciseconds(d time.Duration) uint8 {
	ds := (d + 50*time.Millisecond) / (100 * time.Millisecond)
	if ds < 1 {
		return 1
	}
	if ds > 255 {
		return 255
	}
	return uint8(ds)
}

// Enable snapshots the current termios and applies the raw discipline
func (r *RawMode) Enable() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.orig != nil {
		return nil
	}
	if !term.IsTerminal(r.fd) {
		return configError("isatty", ErrNotTerminal)
	}

	orig, err := unix.IoctlGetTermios(r.fd, ioctlGetTermios)
	if err != nil {
		return configError("tcgetattr", err)
	}

	raw := rawAttrs(*orig, r.vtime)
	if err := unix.IoctlSetTermios(r.fd, ioctlSetTermiosFlush, &raw); err != nil {
		return configError("tcsetattr", err)
	}
	r.orig = orig
	return nil
}

// Disable restores the snapshot taken by Enable. No-op if Enable never succeeded.
func (r *RawMode) Disable() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.orig == nil || r.restored {
		return r.err
	}
	r.restored = true
	if err := unix.IoctlSetTermios(r.fd, ioctlSetTermiosFlush, r.orig); err != nil {
		r.err = configError("tcsetattr", err)
	}
	return r.err
}

// Active reports whether raw mode is applied and not yet restored
func (r *RawMode) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orig != nil && !r.restored
}

// rawAttrs derives the raw discipline from the original termios
func rawAttrs(t unix.Termios, vtime uint8) unix.Termios {
	t.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Cflag |= unix.CS8
	t.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = vtime
	return t
}
