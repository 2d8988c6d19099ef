// @focus: #sys { term }
// Package terminal owns the controlling terminal for the lifetime of a session.
//
// Features:
//   - Raw mode acquisition and exactly-once restoration of the original termios
//   - Byte-at-a-time input with a VTIME-bounded read window
//   - Escape sequence decoding that degrades to a bare Escape on partial reads
//   - Viewport discovery via TIOCGWINSZ with a cursor-position-report fallback
//   - SIGWINCH resize notification, drained by the caller between polls
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
