// @focus: #terminal { ansi }
package terminal

import "strconv"

// Pre-allocated ANSI sequence fragments shared by the renderer and probe
var (
	csi = []byte("\x1b[")

	// ClearScreen erases the whole display (ED 2)
	ClearScreen = []byte("\x1b[2J")
	// CursorHome moves the cursor to row 1, column 1
	CursorHome = []byte("\x1b[H")
	// EraseLineRight erases from the cursor to the end of the line (EL 0)
	EraseLineRight = []byte("\x1b[K")
	// CursorHide and CursorShow toggle DECTCEM
	CursorHide = []byte("\x1b[?25l")
	CursorShow = []byte("\x1b[?25h")
	// RowSeparator ends every row but the last; OPOST is off so CR is explicit
	RowSeparator = []byte("\r\n")

	// csiCursorToEdge moves far right then far down; terminals clamp at the edge
	csiCursorToEdge = []byte("\x1b[999C\x1b[999B")
	// csiReportCursor requests a DSR cursor position report: ESC [ rows ; cols R
	csiReportCursor = []byte("\x1b[6n")
)

// Input bytes with protocol meaning
const (
	byteEscape  = 0x1b
	byteCSI     = '['
	byteDEL     = 0x7f
	byteReportR = 'R'
)

// AppendCursorPos appends a CUP sequence for the 0-indexed position
func AppendCursorPos(dst []byte, x, y int) []byte {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	dst = append(dst, csi...)
	dst = strconv.AppendInt(dst, int64(y+1), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(x+1), 10)
	return append(dst, 'H')
}
