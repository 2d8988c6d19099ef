package terminal

import "fmt"

// Viewport is the visible grid extent; both fields are positive when valid
type Viewport struct {
	Rows int
	Cols int
}

// Valid reports whether both dimensions are positive
func (v Viewport) Valid() bool {
	return v.Rows > 0 && v.Cols > 0
}

func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d", v.Cols, v.Rows)
}

// Position is a 0-indexed cell coordinate
type Position struct {
	X int
	Y int
}

// Clamp returns p limited to [0, Cols-1] x [0, Rows-1]
func (v Viewport) Clamp(p Position) Position {
	p.X = clamp(p.X, 0, v.Cols-1)
	p.Y = clamp(p.Y, 0, v.Rows-1)
	return p
}

func clamp(n, lo, hi int) int {
	if n > hi {
		n = hi
	}
	if n < lo {
		n = lo
	}
	return n
}
