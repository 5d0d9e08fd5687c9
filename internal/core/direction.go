package core

// Direction is the heading of the snake's head.
// The cyclic order up, right, down, left defines turning.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// NumDirections is the size of the direction cycle.
const NumDirections = 4

// Turn applies a relative action and returns the new heading.
// TurnLeft rotates counter-clockwise, TurnRight clockwise.
func (d Direction) Turn(a Action) Direction {
	return Direction(mod(int(d)+int(a)-1, NumDirections))
}

// Delta returns the (row, col) step taken when moving in this direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirRight:
		return 0, 1
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	default:
		return 0, 0
	}
}

// Valid reports whether d is one of the four headings.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirLeft
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// mod is the non-negative remainder.
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
