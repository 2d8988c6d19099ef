// @lixen: #focus{sys[term,io,input]}
package terminal

import (
	"context"
	"errors"
	"io"
	"iter"
)

// Decoder turns a byte stream into logical key events.
// Escape sequences are never assumed complete: an empty read window
// inside a sequence yields a bare Escape instead of blocking.
type Decoder struct {
	in io.ByteReader
}

// NewDecoder creates a decoder reading from in
func NewDecoder(in io.ByteReader) *Decoder {
	return &Decoder{in: in}
}

// NextKey returns one event, or Event{Key: KeyNone} when the read window closed empty
func (d *Decoder) NextKey() (Event, error) {
	b, ok, err := d.read()
	if err != nil || !ok {
		return Event{}, err
	}
	if b != byteEscape {
		return eventFromByte(b), nil
	}

	var seq [2]byte
	for i := range seq {
		b, ok, err := d.read()
		if err != nil {
			return Event{}, err
		}
		if !ok {
			return Event{Key: KeyEscape}, nil
		}
		seq[i] = b
	}

	if seq[0] == byteCSI {
		if k, found := arrowKeys[seq[1]]; found {
			return Event{Key: k}, nil
		}
	}
	return Event{Key: KeyEscape}, nil
}

// read returns ok=false for an empty window and a KindInputRead error for anything else
func (d *Decoder) read() (byte, bool, error) {
	b, err := d.in.ReadByte()
	if err == nil {
		return b, true, nil
	}
	if errors.Is(err, ErrNoInput) {
		return 0, false, nil
	}
	return 0, false, readError("read", err)
}

// Events yields decoded keys until ctx is done or a read fails.
// Empty read windows are skipped; the error, if any, is yielded last.
func (d *Decoder) Events(ctx context.Context) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		for ctx.Err() == nil {
			ev, err := d.NextKey()
			if err != nil {
				yield(Event{}, err)
				return
			}
			if ev.Key == KeyNone {
				continue
			}
			if !yield(ev, nil) {
				return
			}
		}
	}
}
