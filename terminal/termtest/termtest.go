// Package termtest provides a scripted terminal.Backend for deterministic tests.
package termtest

import (
	"bytes"
	"errors"
	"sync"

	"github.com/lixenwraith/tilde/terminal"
)

// ErrIdle is returned once a backend has produced MaxIdle consecutive empty reads
var ErrIdle = errors.New("termtest: input script exhausted")

type item struct {
	b   byte
	gap bool
	err error
}

// Backend replays scripted input and records every write.
// Reads on an empty script report terminal.ErrNoInput until MaxIdle is reached.
type Backend struct {
	mu sync.Mutex

	Cols, Rows int
	SizeErr    error
	InitErr    error
	WriteErr   error
	MaxIdle    int

	input   []item
	replies map[string]string
	idle    int

	Inits  int
	Finis  int
	Writes [][]byte
	Out    bytes.Buffer
}

// New returns a backend reporting the given winsize
func New(cols, rows int) *Backend {
	return &Backend{
		Cols:    cols,
		Rows:    rows,
		MaxIdle: 1000,
		replies: make(map[string]string),
	}
}

// Feed queues bytes that arrive back to back
func (b *Backend) Feed(s string) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := 0; i < len(s); i++ {
		b.input = append(b.input, item{b: s[i]})
	}
	return b
}

// Pause queues one empty read window
func (b *Backend) Pause() *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.input = append(b.input, item{gap: true})
	return b
}

// Fail queues a hard read error
func (b *Backend) Fail(err error) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.input = append(b.input, item{err: err})
	return b
}

// Respond feeds reply as input whenever seq is written
func (b *Backend) Respond(seq, reply string) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replies[seq] = reply
	return b
}

func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Inits++
	return b.InitErr
}

func (b *Backend) Fini() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Finis++
	return nil
}

func (b *Backend) Size() (int, int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.Cols, b.Rows, b.SizeErr
}

func (b *Backend) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.WriteErr != nil {
		return 0, b.WriteErr
	}
	b.Writes = append(b.Writes, append([]byte(nil), p...))
	b.Out.Write(p)
	if reply, ok := b.replies[string(p)]; ok {
		for i := 0; i < len(reply); i++ {
			b.input = append(b.input, item{b: reply[i]})
		}
	}
	return len(p), nil
}

func (b *Backend) ReadByte() (byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.input) == 0 {
		b.idle++
		if b.MaxIdle > 0 && b.idle > b.MaxIdle {
			return 0, ErrIdle
		}
		return 0, terminal.ErrNoInput
	}
	it := b.input[0]
	b.input = b.input[1:]
	switch {
	case it.err != nil:
		return 0, it.err
	case it.gap:
		return 0, terminal.ErrNoInput
	}
	b.idle = 0
	return it.b, nil
}

// Pending returns the number of unread script items
func (b *Backend) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.input)
}

// LastWrite returns the most recent write, nil if none
func (b *Backend) LastWrite() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.Writes) == 0 {
		return nil
	}
	return b.Writes[len(b.Writes)-1]
}
