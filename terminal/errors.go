package terminal

import (
	"errors"
	"fmt"
)

// Kind classifies fatal terminal failures
type Kind uint8

const (
	// KindTerminalConfig is a failure to read or write line discipline settings
	KindTerminalConfig Kind = iota + 1
	// KindInputRead is an input error other than an empty read window
	KindInputRead
	// KindViewportProbe means neither the winsize query nor the DSR fallback produced a viewport
	KindViewportProbe
)

func (k Kind) String() string {
	switch k {
	case KindTerminalConfig:
		return "terminal configuration"
	case KindInputRead:
		return "input read"
	case KindViewportProbe:
		return "viewport probe"
	default:
		return "unknown"
	}
}

// Error is a fatal terminal failure naming the operation that failed
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err carries a terminal Error of kind k
func IsKind(err error, k Kind) bool {
	var te *Error
	return errors.As(err, &te) && te.Kind == k
}

var (
	// ErrNoInput is returned by Backend.ReadByte when the read window closed with no byte
	ErrNoInput = errors.New("no input within read window")
	// ErrNotTerminal is returned when raw mode is requested on a non-tty descriptor
	ErrNotTerminal = errors.New("not a terminal")

	// Cursor position report failures
	ErrReplyOverflow     = errors.New("cursor position reply exceeds buffer")
	ErrReplyUnterminated = errors.New("cursor position reply unterminated")
	ErrReplyMalformed    = errors.New("cursor position reply malformed")
)

func configError(op string, err error) error {
	return &Error{Kind: KindTerminalConfig, Op: op, Err: err}
}

func readError(op string, err error) error {
	return &Error{Kind: KindInputRead, Op: op, Err: err}
}

func probeError(op string, err error) error {
	return &Error{Kind: KindViewportProbe, Op: op, Err: err}
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrReplyMalformed}, args...)...)
}
