package render

import (
	"io"

	"github.com/lixenwraith/tilde/terminal"
)

// RenderBuffer accumulates one frame for a single write.
// Growth is bounded by limit; a fragment that would cross it is dropped whole
// and counted, so the flushed frame omits it instead of tearing.
type RenderBuffer struct {
	b       []byte
	limit   int
	dropped int
}

// NewRenderBuffer creates an empty buffer; limit <= 0 means unbounded
func NewRenderBuffer(sizeHint, limit int) *RenderBuffer {
	if limit > 0 && sizeHint > limit {
		sizeHint = limit
	}
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &RenderBuffer{
		b:     make([]byte, 0, sizeHint),
		limit: limit,
	}
}

// Append adds p contiguously after existing content
func (r *RenderBuffer) Append(p []byte) {
	if !r.fits(len(p)) {
		r.dropped++
		return
	}
	r.b = append(r.b, p...)
}

// AppendString adds s contiguously after existing content
func (r *RenderBuffer) AppendString(s string) {
	if !r.fits(len(s)) {
		r.dropped++
		return
	}
	r.b = append(r.b, s...)
}

// AppendCursorPos adds a CUP sequence for the 0-indexed position
func (r *RenderBuffer) AppendCursorPos(p terminal.Position) {
	var seq [16]byte
	r.Append(terminal.AppendCursorPos(seq[:0], p.X, p.Y))
}

func (r *RenderBuffer) fits(n int) bool {
	return r.limit <= 0 || len(r.b)+n <= r.limit
}

// Bytes returns the accumulated frame; valid until the buffer is discarded
func (r *RenderBuffer) Bytes() []byte {
	return r.b
}

// Len returns the number of accumulated bytes
func (r *RenderBuffer) Len() int {
	return len(r.b)
}

// Dropped returns the number of fragments rejected by the limit
func (r *RenderBuffer) Dropped() int {
	return r.dropped
}

// WriteTo flushes the whole frame with one Write call
func (r *RenderBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.b)
	return int64(n), err
}
