//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

type unixBackend struct {
	in    *os.File
	out   *os.File
	inFd  int
	outFd int
	raw   *RawMode

	buf [1]byte
}

// NewBackend returns a Backend over the given tty files; readTimeout sets the VTIME window
func NewBackend(in, out *os.File, readTimeout time.Duration) Backend {
	inFd := int(in.Fd())
	return &unixBackend{
		in:    in,
		out:   out,
		inFd:  inFd,
		outFd: int(out.Fd()),
		raw:   NewRawMode(inFd, readTimeout),
	}
}

func (b *unixBackend) Init() error {
	return b.raw.Enable()
}

func (b *unixBackend) Fini() error {
	return b.raw.Disable()
}

func (b *unixBackend) Size() (int, int, error) {
	ws, err := unix.IoctlGetWinsize(b.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

func (b *unixBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

// ReadByte reads through the raw descriptor; os.File would report a VTIME expiry as io.EOF
func (b *unixBackend) ReadByte() (byte, error) {
	n, err := unix.Read(b.inFd, b.buf[:])
	if err != nil {
		if err == unix.EINTR || err == unix.EAGAIN {
			return 0, ErrNoInput
		}
		return 0, err
	}
	if n == 0 {
		return 0, ErrNoInput
	}
	return b.buf[0], nil
}
