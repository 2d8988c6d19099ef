// @focus: #sys { io } #input { keys }
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Key identifies the logical key carried by an Event
type Key uint8

const (
	KeyNone Key = iota // Empty read window, caller re-polls
	KeyRune            // Printable byte (check Event.Byte)
	KeyCtrl            // Control byte 0x00-0x1f or DEL (check Event.Byte)
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// Event is one decoded logical key
type Event struct {
	Key  Key
	Byte byte // Raw byte for KeyRune and KeyCtrl
}

// CtrlKey returns the control byte produced by Ctrl+k
func CtrlKey(k byte) byte {
	return k & 0x1f
}

// IsCtrl reports whether the event is the control byte for Ctrl+k
func (e Event) IsCtrl(k byte) bool {
	return e.Key == KeyCtrl && e.Byte == CtrlKey(k)
}

// IsArrow reports whether the event is one of the four cursor keys
func (e Event) IsArrow() bool {
	switch e.Key {
	case KeyUp, KeyDown, KeyLeft, KeyRight:
		return true
	}
	return false
}

// eventFromByte classifies a non-escape input byte
func eventFromByte(b byte) Event {
	if b < 0x20 || b == byteDEL {
		return Event{Key: KeyCtrl, Byte: b}
	}
	return Event{Key: KeyRune, Byte: b}
}

// arrowKeys maps the final byte of ESC [ X to a cursor key
var arrowKeys = map[byte]Key{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
}

// TcellKey maps the event onto tcell's key space; KeyRune carries the byte as its rune
func (e Event) TcellKey() (tcell.Key, rune) {
	switch e.Key {
	case KeyRune:
		return tcell.KeyRune, rune(e.Byte)
	case KeyCtrl:
		return ctrlTcellKey(e.Byte), 0
	case KeyEscape:
		return tcell.KeyEscape, 0
	case KeyUp:
		return tcell.KeyUp, 0
	case KeyDown:
		return tcell.KeyDown, 0
	case KeyLeft:
		return tcell.KeyLeft, 0
	case KeyRight:
		return tcell.KeyRight, 0
	}
	return tcell.KeyNUL, 0
}

// ctrlTcellKey maps a control byte onto tcell's Ctrl key range.
// BS, TAB, CR and ESC keep their named aliases, as tcell reports them.
func ctrlTcellKey(b byte) tcell.Key {
	switch b {
	case 0x08:
		return tcell.KeyBackspace
	case 0x09:
		return tcell.KeyTab
	case 0x0d:
		return tcell.KeyEnter
	case byteEscape:
		return tcell.KeyEsc
	case byteDEL:
		return tcell.KeyBackspace
	}
	if b >= 0x01 && b <= 0x1a {
		return tcell.KeyCtrlA + tcell.Key(b-1)
	}
	return tcell.Key(b)
}

// Name returns the canonical display name of the key
func (e Event) Name() string {
	if e.Key == KeyNone {
		return "None"
	}
	k, r := e.TcellKey()
	if k == tcell.KeyRune {
		if r == ' ' {
			return "Space"
		}
		return string(r)
	}
	if name, ok := tcell.KeyNames[k]; ok {
		return name
	}
	if e.Key == KeyCtrl {
		return fmt.Sprintf("Ctrl-%c", e.Byte|0x40)
	}
	return fmt.Sprintf("Key[%d]", k)
}

func (e Event) String() string {
	return e.Name()
}
