package core

import "math/rand"

// Action is a relative turn issued by the agent each step.
type Action int

const (
	ActionTurnLeft  Action = iota // direction - 1
	ActionStraight                // keep heading
	ActionTurnRight               // direction + 1
)

// NumActions is the size of the discrete action space.
const NumActions = 3

// Valid reports whether a is inside the action space.
func (a Action) Valid() bool {
	return a >= ActionTurnLeft && a <= ActionTurnRight
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionTurnLeft:
		return "TurnLeft"
	case ActionStraight:
		return "Straight"
	case ActionTurnRight:
		return "TurnRight"
	default:
		return "Unknown"
	}
}

// ActionSpace is a discrete space {0, ..., N-1}.
type ActionSpace struct {
	N int
}

// DiscreteActions returns the three-action space used by the snake env.
func DiscreteActions() ActionSpace {
	return ActionSpace{N: NumActions}
}

// Contains reports whether a is a member of the space.
func (s ActionSpace) Contains(a Action) bool {
	return a >= 0 && int(a) < s.N
}

// Sample draws a uniformly random action from the space.
func (s ActionSpace) Sample(rng *rand.Rand) Action {
	return Action(rng.Intn(s.N))
}
