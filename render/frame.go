// @lixen: #focus{render[frame,output]}
package render

import (
	"io"

	"github.com/lixenwraith/tilde/terminal"
)

const (
	// fillGlyph marks rows past the end of content
	fillGlyph = "~"

	// Per-row worst case: glyph, erase, separator; banner row adds cols
	rowOverhead   = 1 + 3 + 2
	frameOverhead = 6 + 3 + 16 + 3 + 6
)

// Stats describes one flushed frame
type Stats struct {
	Bytes   int
	Dropped int
}

// FrameRenderer composes full frames and flushes each with a single write
type FrameRenderer struct {
	out    io.Writer
	banner string
	limit  int
}

// NewFrameRenderer creates a renderer writing to out.
// maxFrameBytes bounds one frame's buffer; <= 0 means unbounded.
func NewFrameRenderer(out io.Writer, banner string, maxFrameBytes int) *FrameRenderer {
	return &FrameRenderer{
		out:    out,
		banner: banner,
		limit:  maxFrameBytes,
	}
}

// BannerRow returns the row that carries the welcome banner
func BannerRow(v terminal.Viewport) int {
	return v.Rows / 3
}

// Compose builds the frame for viewport v with the real cursor at cur
func (f *FrameRenderer) Compose(v terminal.Viewport, cur terminal.Position) *RenderBuffer {
	buf := NewRenderBuffer(frameOverhead+v.Rows*rowOverhead+v.Cols, f.limit)

	buf.Append(terminal.CursorHide)
	buf.Append(terminal.CursorHome)

	f.drawRows(buf, v)

	buf.AppendCursorPos(cur)
	buf.Append(terminal.CursorHome)
	buf.Append(terminal.CursorShow)
	return buf
}

// Render composes and flushes one frame; the buffer is discarded afterwards
func (f *FrameRenderer) Render(v terminal.Viewport, cur terminal.Position) (Stats, error) {
	buf := f.Compose(v, cur)
	stats := Stats{Bytes: buf.Len(), Dropped: buf.Dropped()}
	if _, err := buf.WriteTo(f.out); err != nil {
		return stats, err
	}
	return stats, nil
}

func (f *FrameRenderer) drawRows(buf *RenderBuffer, v terminal.Viewport) {
	bannerRow := BannerRow(v)
	for y := 0; y < v.Rows; y++ {
		if y == bannerRow && f.banner != "" {
			f.drawBanner(buf, v.Cols)
		} else {
			buf.AppendString(fillGlyph)
		}

		buf.Append(terminal.EraseLineRight)
		if y < v.Rows-1 {
			buf.Append(terminal.RowSeparator)
		}
	}
}

// drawBanner centers the banner, truncated to cols, keeping the fill glyph in column 0
func (f *FrameRenderer) drawBanner(buf *RenderBuffer, cols int) {
	banner := f.banner
	if len(banner) > cols {
		banner = banner[:cols]
	}

	padding := (cols - len(banner)) / 2
	if padding > 0 {
		buf.AppendString(fillGlyph)
		padding--
	}
	for ; padding > 0; padding-- {
		buf.AppendString(" ")
	}
	buf.AppendString(banner)
}
