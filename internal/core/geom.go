// Package core provides fundamental types and utilities for the snake gym.
// It contains no external dependencies (especially no Bubble Tea) to keep
// environment logic pure and testable.
package core

import "fmt"

// Cell addresses one grid position by row and column.
type Cell struct {
	Row, Col int
}

// String returns the cell as "(row,col)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns the cell offset by (dr, dc).
func (c Cell) Add(dr, dc int) Cell {
	return Cell{Row: c.Row + dr, Col: c.Col + dc}
}

// Manhattan returns the L1 distance between two cells.
func (c Cell) Manhattan(other Cell) int {
	return Abs(c.Row-other.Row) + Abs(c.Col-other.Col)
}

// Less orders cells row-major. Used to produce stable fruit listings.
func (c Cell) Less(other Cell) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Col < other.Col
}

// Rect represents an axis-aligned region of cells, half-open on both axes.
type Rect struct {
	X, Y int // Top-left corner (X = column, Y = row)
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Inset shrinks the rectangle by margin on every side.
// A margin larger than half a dimension yields an empty rectangle.
func (r Rect) Inset(margin int) Rect {
	out := Rect{X: r.X + margin, Y: r.Y + margin, W: r.W - 2*margin, H: r.H - 2*margin}
	out.W = Max(out.W, 0)
	out.H = Max(out.H, 0)
	return out
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsCell is Contains for a grid cell.
func (r Rect) ContainsCell(c Cell) bool {
	return r.Contains(c.Col, c.Row)
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
