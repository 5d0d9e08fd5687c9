package snake

import "github.com/vovakirdan/snake-gym/internal/core"

// Snapshot captures the observable env state for determinism testing,
// agents and episode records.
type Snapshot struct {
	Seed        int64
	Tick        uint64
	Direction   core.Direction
	Snake       []core.Cell // Head first
	Fruit       []core.Cell // Row-major order
	FruitEaten  int
	TotalReward float64
	Done        bool
	EndReason   EndReason
}

// Head returns the head cell, or false when the snake is empty.
func (s Snapshot) Head() (core.Cell, bool) {
	if len(s.Snake) == 0 {
		return core.Cell{}, false
	}
	return s.Snake[0], true
}

// Snapshot returns the current env snapshot. It is zero before Reset.
func (e *Env) Snapshot() Snapshot {
	snap := Snapshot{
		Seed:        e.seed,
		Tick:        e.tick,
		Direction:   e.direction,
		FruitEaten:  e.fruitEaten,
		TotalReward: e.totalReward,
		Done:        e.done,
		EndReason:   e.endReason,
	}
	if e.snake != nil {
		snap.Snake = e.snake.Cells()
	}
	if e.fruit != nil {
		snap.Fruit = e.fruit.Sorted()
	}
	return snap
}

// Next returns the cell the head would enter moving in direction d.
func (s Snapshot) Next(d core.Direction) (core.Cell, bool) {
	head, ok := s.Head()
	if !ok {
		return core.Cell{}, false
	}
	return adjacent(head, d)
}

// Blocked reports whether moving from the head in direction d would end
// the episode, using the same rule as Step (the tail is vacated first).
func (s Snapshot) Blocked(d core.Direction) bool {
	next, inside := s.Next(d)
	if !inside {
		return true
	}
	for _, c := range s.Snake[:len(s.Snake)-1] {
		if c == next {
			return true
		}
	}
	return false
}
