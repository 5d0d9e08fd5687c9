package rollout

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/snake-gym/internal/config"
	"github.com/vovakirdan/snake-gym/internal/core"
	"github.com/vovakirdan/snake-gym/internal/envs/snake"
	"github.com/vovakirdan/snake-gym/internal/registry"
)

// Agent chooses the next action for an environment.
type Agent interface {
	Name() string
	Act(env registry.Env) core.Action
}

// Snapshotter is implemented by envs that expose their state to agents.
type Snapshotter interface {
	Snapshot() snake.Snapshot
}

// Seeder is implemented by agents with their own random source. Runner
// and the TUI model reseed them from the env's seed so a run replays
// as a whole.
type Seeder interface {
	Seed(seed int64)
}

// RandomAgent samples uniformly from the action space.
type RandomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent creates a random agent with its own seeded source.
func NewRandomAgent(seed int64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

// Seed reseeds the action source.
func (a *RandomAgent) Seed(seed int64) {
	a.rng = rand.New(rand.NewSource(seed))
}

// Name returns "random".
func (a *RandomAgent) Name() string {
	return string(config.AgentRandom)
}

// Act samples an action.
func (a *RandomAgent) Act(env registry.Env) core.Action {
	return env.ActionSpace().Sample(a.rng)
}

// GreedyAgent steers toward the nearest fruit and never picks an
// immediately fatal move while a safe one exists.
type GreedyAgent struct{}

// NewGreedyAgent creates a greedy agent.
func NewGreedyAgent() *GreedyAgent {
	return &GreedyAgent{}
}

// Name returns "greedy".
func (a *GreedyAgent) Name() string {
	return string(config.AgentGreedy)
}

// Act picks the safe action minimising distance to the closest fruit.
// Ties keep going straight. Envs without snapshots always go straight.
func (a *GreedyAgent) Act(env registry.Env) core.Action {
	s, ok := env.(Snapshotter)
	if !ok {
		return core.ActionStraight
	}
	snap := s.Snapshot()

	best := core.ActionStraight
	bestScore := math.MaxInt
	for _, act := range []core.Action{core.ActionStraight, core.ActionTurnLeft, core.ActionTurnRight} {
		dir := snap.Direction.Turn(act)
		if snap.Blocked(dir) {
			continue
		}
		next, _ := snap.Next(dir)
		score := nearestFruit(next, snap.Fruit)
		if score < bestScore {
			best = act
			bestScore = score
		}
	}
	return best
}

// nearestFruit returns the Manhattan distance to the closest fruit, or 0
// when there is none.
func nearestFruit(from core.Cell, fruit []core.Cell) int {
	if len(fruit) == 0 {
		return 0
	}
	best := math.MaxInt
	for _, f := range fruit {
		best = min(best, from.Manhattan(f))
	}
	return best
}

// NewAgent builds the agent named by kind. A random agent starts from a
// clock seed until SeedAgent ties it to an env.
func NewAgent(kind config.AgentKind) Agent {
	if kind == config.AgentGreedy {
		return NewGreedyAgent()
	}
	return NewRandomAgent(core.RandomSeed())
}

// SeedAgent reseeds agent when it implements Seeder.
func SeedAgent(agent Agent, seed int64) {
	if s, ok := agent.(Seeder); ok {
		s.Seed(seed)
	}
}
