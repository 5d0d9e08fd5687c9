package snake

import (
	"sort"

	"github.com/vovakirdan/snake-gym/internal/core"
)

// fruitSet holds the collectible cells. Duplicate adds collapse.
type fruitSet map[core.Cell]struct{}

func (f fruitSet) Has(c core.Cell) bool {
	_, ok := f[c]
	return ok
}

func (f fruitSet) Add(c core.Cell) {
	f[c] = struct{}{}
}

func (f fruitSet) Remove(c core.Cell) {
	delete(f, c)
}

// Sorted returns the fruit cells in row-major order.
func (f fruitSet) Sorted() []core.Cell {
	out := make([]core.Cell, 0, len(f))
	for c := range f {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Less(out[j])
	})
	return out
}

// seedFruit fills the set with StartNumFruit uniformly random cells.
func (e *Env) seedFruit() {
	e.fruit = make(fruitSet, StartNumFruit)
	for range StartNumFruit {
		e.fruit.Add(e.randomCell())
	}
}

// maybeSpawnFruit adds at most one fruit. The draw succeeds with
// probability FruitSpawnProb; a cell landing on the snake is dropped
// for this tick rather than retried.
func (e *Env) maybeSpawnFruit() {
	if e.rng.Float64() > FruitSpawnProb {
		return
	}

	c := e.randomCell()
	if e.snake.Contains(c) {
		return
	}
	e.fruit.Add(c)
}

// randomCell draws a cell uniformly over the full grid.
func (e *Env) randomCell() core.Cell {
	return core.Cell{
		Row: e.rng.Intn(GridH),
		Col: e.rng.Intn(GridW),
	}
}
