package terminal

import "io"

// Backend abstracts the terminal device a session runs against.
// The unix implementation drives the process tty; tests substitute scripted input.
type Backend interface {
	// Lifecycle
	Init() error
	Fini() error

	// Size queries the OS window size facility; zero columns means unavailable
	Size() (cols, rows int, err error)

	// Write emits p in a single call
	io.Writer

	// ReadByte waits at most one read window; ErrNoInput when nothing arrived
	io.ByteReader
}
