package terminal

import "io"

// ResetScreen writes the clean-exit sequence: erase display, cursor home
func ResetScreen(w io.Writer) error {
	seq := make([]byte, 0, len(ClearScreen)+len(CursorHome))
	seq = append(seq, ClearScreen...)
	seq = append(seq, CursorHome...)
	_, err := w.Write(seq)
	return err
}
