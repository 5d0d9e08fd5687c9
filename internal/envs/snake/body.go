package snake

import "github.com/vovakirdan/snake-gym/internal/core"

// body is the snake as a double-ended ring buffer, head at the front.
// An occupancy set mirrors the buffer so membership checks are O(1).
type body struct {
	buf      []core.Cell
	head     int // index of the front element
	n        int
	occupied map[core.Cell]struct{}
}

func newBody(capacity int) *body {
	return &body{
		buf:      make([]core.Cell, max(capacity, 4)),
		occupied: make(map[core.Cell]struct{}, capacity),
	}
}

// Len returns the number of segments.
func (b *body) Len() int {
	return b.n
}

// At returns the i-th segment counted from the head.
func (b *body) At(i int) core.Cell {
	return b.buf[(b.head+i)%len(b.buf)]
}

// Front returns the head segment. The body must be non-empty.
func (b *body) Front() core.Cell {
	return b.buf[b.head]
}

// Contains reports whether c is occupied by a segment.
func (b *body) Contains(c core.Cell) bool {
	_, ok := b.occupied[c]
	return ok
}

// PushFront inserts a new head.
func (b *body) PushFront(c core.Cell) {
	b.grow()
	b.head = (b.head - 1 + len(b.buf)) % len(b.buf)
	b.buf[b.head] = c
	b.n++
	b.occupied[c] = struct{}{}
}

// PushBack appends a new tail.
func (b *body) PushBack(c core.Cell) {
	b.grow()
	b.buf[(b.head+b.n)%len(b.buf)] = c
	b.n++
	b.occupied[c] = struct{}{}
}

// PopBack removes and returns the tail. ok is false when empty.
func (b *body) PopBack() (core.Cell, bool) {
	if b.n == 0 {
		return core.Cell{}, false
	}
	i := (b.head + b.n - 1) % len(b.buf)
	c := b.buf[i]
	b.n--
	delete(b.occupied, c)
	return c, true
}

// Cells returns the segments head-first as a fresh slice.
func (b *body) Cells() []core.Cell {
	out := make([]core.Cell, b.n)
	for i := range out {
		out[i] = b.At(i)
	}
	return out
}

// grow doubles the ring when full, unrolling it so the head is at 0.
func (b *body) grow() {
	if b.n < len(b.buf) {
		return
	}
	next := make([]core.Cell, len(b.buf)*2)
	for i := 0; i < b.n; i++ {
		next[i] = b.At(i)
	}
	b.buf = next
	b.head = 0
}
