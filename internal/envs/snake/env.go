// Package snake implements the grid Snake environment.
//
// The agent steers with relative turns; each Step moves the snake one
// cell, resolves wall/self collisions and fruit, and returns a pixel
// observation with a scalar reward.
package snake

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/snake-gym/internal/core"
	"github.com/vovakirdan/snake-gym/internal/registry"
)

// EnvID is the registry identifier.
const EnvID = "Snake-v0"

// Grid and frame geometry.
const (
	GridW = 40
	GridH = 40
	CellW = 5
	CellH = 5

	FrameW = GridW * CellW
	FrameH = GridH * CellH

	// SpawnMargin keeps the generated head away from the walls.
	SpawnMargin = 2
)

// Fruit and reward constants.
const (
	StartNumFruit  = 20
	FruitSpawnProb = 0.1

	DyingReward = -100.0
	FruitReward = 1.0
	NormReward  = 0.0
)

var (
	// ErrInvalidAction is returned by Step for actions outside {0, 1, 2}.
	ErrInvalidAction = errors.New("snake: invalid action")

	// ErrNotReset is returned when Step or RenderFrame precede Reset.
	ErrNotReset = errors.New("snake: env not reset")

	// ErrEpisodeDone is returned by Step after a terminal step.
	ErrEpisodeDone = errors.New("snake: episode is done, call Reset")

	// ErrSnakeGeneration means the initial body left the grid.
	ErrSnakeGeneration = errors.New("snake: generated snake out of bounds")

	// ErrNoViewer is returned by RenderFrame when running headless.
	ErrNoViewer = errors.New("snake: no viewer configured")
)

// EndReason says why an episode terminated.
type EndReason string

const (
	EndNone EndReason = ""
	EndWall EndReason = "wall"
	EndSelf EndReason = "self"
)

// Env is the Snake environment. It is not safe for concurrent use.
type Env struct {
	rng  *rand.Rand
	seed int64

	snake     *body
	fruit     fruitSet
	direction core.Direction
	frame     *core.Frame

	// Episode bookkeeping
	tick        uint64
	fruitEaten  int
	totalReward float64
	done        bool
	endReason   EndReason

	viewerFactory core.ViewerFactory
	viewer        core.Viewer
}

// Option configures an Env at construction.
type Option func(*Env)

// WithSeed seeds the random source with a fixed value.
func WithSeed(seed int64) Option {
	return func(e *Env) {
		e.Seed(seed)
	}
}

// WithViewer installs the display sink factory used by RenderFrame.
func WithViewer(f core.ViewerFactory) Option {
	return func(e *Env) {
		e.viewerFactory = f
	}
}

// New creates a Snake environment. No options are required; by default
// it is seeded from the clock and headless.
func New(opts ...Option) *Env {
	e := &Env{}
	e.SeedRandom()
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func init() {
	registry.Register(EnvID, func() registry.Env {
		return New()
	})
}

// ID returns the environment identifier.
func (e *Env) ID() string {
	return EnvID
}

// Title returns the display name.
func (e *Env) Title() string {
	return "Snake"
}

// ObservationShape returns the frame dimensions.
func (e *Env) ObservationShape() [3]int {
	return [3]int{FrameH, FrameW, 3}
}

// ActionSpace returns Discrete(3).
func (e *Env) ActionSpace() core.ActionSpace {
	return core.DiscreteActions()
}

// SetViewerFactory installs the display sink used by RenderFrame.
// An already acquired viewer is kept until Close.
func (e *Env) SetViewerFactory(f core.ViewerFactory) {
	e.viewerFactory = f
}

// Seed reseeds the random source. Every value, zero included, replays
// the same episodes. Returns seed.
func (e *Env) Seed(seed int64) int64 {
	e.seed = seed
	e.rng = rand.New(rand.NewSource(seed))
	return seed
}

// SeedRandom reseeds from the clock and returns the chosen seed so the
// run can still be replayed.
func (e *Env) SeedRandom() int64 {
	return e.Seed(core.RandomSeed())
}

// Reset starts a new episode: scatters the starting fruit, generates a
// two-segment snake and returns the first frame.
func (e *Env) Reset() (*core.Frame, error) {
	e.tick = 0
	e.fruitEaten = 0
	e.totalReward = 0
	e.done = false
	e.endReason = EndNone

	e.seedFruit()
	if err := e.generateSnake(); err != nil {
		return nil, err
	}

	e.frame = rasterize(e.snake, e.fruit)
	return e.frame, nil
}

// generateSnake picks a head inside the spawn margin and a random heading.
// The cell one step ahead becomes the front of the body.
func (e *Env) generateSnake() error {
	area := core.NewRect(0, 0, GridW, GridH).Inset(SpawnMargin)
	start := core.Cell{
		Row: area.Y + e.rng.Intn(area.H),
		Col: area.X + e.rng.Intn(area.W),
	}
	dir := core.Direction(e.rng.Intn(core.NumDirections))

	front, ok := adjacent(start, dir)
	if !ok {
		return fmt.Errorf("%w: %v heading %s", ErrSnakeGeneration, start, dir)
	}

	e.snake = newBody(GridW * GridH)
	e.snake.PushBack(front)
	e.snake.PushBack(start)
	e.direction = dir

	for i := 0; i < e.snake.Len(); i++ {
		e.fruit.Remove(e.snake.At(i))
	}
	return nil
}

// Step applies a relative turn and advances the snake by one cell.
func (e *Env) Step(a core.Action) (core.StepResult, error) {
	if !a.Valid() {
		return core.StepResult{}, fmt.Errorf("%w: %d", ErrInvalidAction, int(a))
	}
	if e.snake == nil {
		return core.StepResult{}, ErrNotReset
	}
	if e.done {
		return core.StepResult{}, ErrEpisodeDone
	}

	e.tick++

	newDir := e.direction.Turn(a)
	newHead, inside := adjacent(e.snake.Front(), newDir)

	tail, _ := e.snake.PopBack()

	var reward float64
	switch {
	case !inside || e.snake.Contains(newHead):
		reward = DyingReward
		e.done = true
		e.endReason = EndSelf
		if !inside {
			e.endReason = EndWall
		}

	case e.fruit.Has(newHead):
		e.fruit.Remove(newHead)
		e.snake.PushFront(newHead)
		e.snake.PushBack(tail)
		e.fruitEaten++
		e.maybeSpawnFruit()
		reward = FruitReward

	default:
		e.snake.PushFront(newHead)
		e.maybeSpawnFruit()
		reward = NormReward
	}

	e.direction = newDir
	e.totalReward += reward
	e.frame = rasterize(e.snake, e.fruit)

	return core.StepResult{
		Frame:  e.frame,
		Reward: reward,
		Done:   e.done,
		Info:   core.Info{},
	}, nil
}

// RenderFrame shows the latest frame, acquiring the viewer on first use.
func (e *Env) RenderFrame() (bool, error) {
	if e.frame == nil {
		return false, ErrNotReset
	}
	if e.viewer == nil {
		if e.viewerFactory == nil {
			return false, ErrNoViewer
		}
		v, err := e.viewerFactory()
		if err != nil {
			return false, fmt.Errorf("snake: acquire viewer: %w", err)
		}
		e.viewer = v
	}

	if err := e.viewer.Show(e.frame); err != nil {
		return e.viewer.IsOpen(), fmt.Errorf("snake: show frame: %w", err)
	}
	return e.viewer.IsOpen(), nil
}

// Close releases the viewer if one was acquired.
func (e *Env) Close() error {
	if e.viewer == nil {
		return nil
	}
	v := e.viewer
	e.viewer = nil
	return v.Close()
}

// Frame returns the most recent observation, or nil before Reset.
func (e *Env) Frame() *core.Frame {
	return e.frame
}

// adjacent returns the neighbour of c in direction d, or false when it
// falls outside the grid.
func adjacent(c core.Cell, d core.Direction) (core.Cell, bool) {
	dr, dc := d.Delta()
	next := c.Add(dr, dc)
	if !core.NewRect(0, 0, GridW, GridH).ContainsCell(next) {
		return core.Cell{}, false
	}
	return next, true
}
