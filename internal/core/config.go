package core

import "time"

// RuntimeConfig contains configuration passed to the platform layer.
// Environments only read Seed; the rest sizes the terminal views.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Steps per second for interactive views
	Seed     *int64 // RNG seed; nil picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 10,
	}
}

// RandomSeed returns a clock-derived seed.
func RandomSeed() int64 {
	return time.Now().UnixNano()
}

// ResolveSeed returns *seed, or a RandomSeed when seed is nil.
func ResolveSeed(seed *int64) int64 {
	if seed == nil {
		return RandomSeed()
	}
	return *seed
}

// SeedOf returns a pointer to v, for filling optional seed fields.
func SeedOf(v int64) *int64 {
	return &v
}

// Info carries auxiliary per-step diagnostics. The snake env leaves it empty.
type Info map[string]any

// StepResult is returned by Env.Step after each transition.
type StepResult struct {
	Frame  *Frame
	Reward float64
	Done   bool
	Info   Info
}
