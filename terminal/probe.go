// @lixen: #focus{sys[term,size]}
package terminal

import (
	"bytes"
	"errors"
	"strconv"
)

// ReplyBufferSize bounds the cursor position report read
const ReplyBufferSize = 32

// ProbeMethod records which path produced the viewport
type ProbeMethod uint8

const (
	ProbeWinsize ProbeMethod = iota + 1
	ProbeCursorReport
)

func (m ProbeMethod) String() string {
	switch m {
	case ProbeWinsize:
		return "winsize"
	case ProbeCursorReport:
		return "cursor-report"
	default:
		return "none"
	}
}

// Probe determines the viewport. The winsize query is used when it reports
// columns; otherwise the cursor is pushed to the bottom-right edge and its
// position read back via DSR. forceFallback skips the winsize query.
func Probe(b Backend, forceFallback bool) (Viewport, ProbeMethod, error) {
	if !forceFallback {
		cols, rows, err := b.Size()
		if err == nil && cols > 0 {
			v := Viewport{Rows: rows, Cols: cols}
			if !v.Valid() {
				return Viewport{}, ProbeWinsize, probeError("winsize", malformed("rows %d", rows))
			}
			return v, ProbeWinsize, nil
		}
	}

	if _, err := b.Write(csiCursorToEdge); err != nil {
		return Viewport{}, ProbeCursorReport, probeError("cursor to edge", err)
	}
	v, err := CursorPosition(b)
	if err != nil {
		return Viewport{}, ProbeCursorReport, err
	}
	return Viewport{Rows: v.Y + 1, Cols: v.X + 1}, ProbeCursorReport, nil
}

// CursorPosition requests a DSR report and returns the 0-indexed cursor position
func CursorPosition(b Backend) (Position, error) {
	if _, err := b.Write(csiReportCursor); err != nil {
		return Position{}, probeError("cursor position report", err)
	}

	reply := newReplyBuffer(ReplyBufferSize)
	for {
		c, err := b.ReadByte()
		if err != nil {
			if errors.Is(err, ErrNoInput) {
				return Position{}, probeError("cursor position report", ErrReplyUnterminated)
			}
			return Position{}, probeError("cursor position report", err)
		}
		if c == byteReportR {
			break
		}
		if !reply.push(c) {
			return Position{}, probeError("cursor position report", ErrReplyOverflow)
		}
	}

	rows, cols, err := parseCursorReply(reply.bytes())
	if err != nil {
		return Position{}, probeError("cursor position report", err)
	}
	return Position{X: cols - 1, Y: rows - 1}, nil
}

// replyBuffer is a fixed-capacity accumulator; push fails once full.
// One slot stays reserved for the terminator, matching a C string buffer.
type replyBuffer struct {
	buf []byte
}

func newReplyBuffer(capacity int) *replyBuffer {
	return &replyBuffer{buf: make([]byte, 0, capacity)}
}

func (r *replyBuffer) push(c byte) bool {
	if len(r.buf) >= cap(r.buf)-1 {
		return false
	}
	r.buf = append(r.buf, c)
	return true
}

func (r *replyBuffer) bytes() []byte {
	return r.buf
}

// parseCursorReply parses "ESC [ rows ; cols" with the terminator already stripped
func parseCursorReply(reply []byte) (rows, cols int, err error) {
	if len(reply) < 2 || reply[0] != byteEscape || reply[1] != byteCSI {
		return 0, 0, malformed("missing CSI prefix in %q", reply)
	}
	body := reply[2:]
	sep := bytes.IndexByte(body, ';')
	if sep < 0 {
		return 0, 0, malformed("missing separator in %q", reply)
	}
	if rows, err = parsePositive(body[:sep]); err != nil {
		return 0, 0, err
	}
	if cols, err = parsePositive(body[sep+1:]); err != nil {
		return 0, 0, err
	}
	return rows, cols, nil
}

func parsePositive(field []byte) (int, error) {
	if len(field) == 0 {
		return 0, malformed("empty field")
	}
	for _, c := range field {
		if c < '0' || c > '9' {
			return 0, malformed("non-digit %q", c)
		}
	}
	n, err := strconv.Atoi(string(field))
	if err != nil {
		return 0, malformed("%v", err)
	}
	if n <= 0 {
		return 0, malformed("non-positive %d", n)
	}
	return n, nil
}
