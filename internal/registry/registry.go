// Package registry provides a global registry for environment factories.
// Environments register themselves in init() functions under a symbolic
// "<Name>-v<version>" identifier, allowing drivers to look them up
// without hardcoded dependencies.
package registry

import (
	"fmt"
	"regexp"
	"sort"
	"sync"

	"github.com/vovakirdan/snake-gym/internal/core"
)

// Env is the interface every environment implements.
// Environments contain pure simulation logic; display is delegated to a
// Viewer acquired lazily by RenderFrame.
type Env interface {
	// ID returns the registered identifier (e.g., "Snake-v0").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Seed reseeds the environment's random source and returns the
	// seed. Every value, zero included, is replayable.
	Seed(seed int64) int64

	// Reset starts a new episode and returns the first observation.
	Reset() (*core.Frame, error)

	// Step applies one action. Episode termination is reported through
	// StepResult.Done, never through the error.
	Step(a core.Action) (core.StepResult, error)

	// RenderFrame shows the latest observation on the display sink and
	// reports whether the sink is still open.
	RenderFrame() (bool, error)

	// Close releases the display sink. Safe to call repeatedly.
	Close() error

	// SetViewerFactory installs the display sink used by RenderFrame.
	// Environments without one run headless.
	SetViewerFactory(f core.ViewerFactory)

	// ObservationShape returns (height, width, channels).
	ObservationShape() [3]int

	// ActionSpace returns the discrete action space.
	ActionSpace() core.ActionSpace
}

// EnvInfo contains metadata about a registered environment.
type EnvInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of an environment.
type Factory func() Env

var idPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*-v[0-9]+$`)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds an environment factory to the registry.
// Typically called from an environment package's init() function.
// Panics if the ID is malformed or already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if !idPattern.MatchString(id) {
		panic(fmt.Sprintf("registry: malformed env id %q (want Name-vN)", id))
	}
	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: env %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	e := f()
	titles[id] = e.Title()
	_ = e.Close()
}

// List returns information about all registered environments, sorted by ID.
func List() []EnvInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]EnvInfo, 0, len(factories))
	for id := range factories {
		result = append(result, EnvInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new environment by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Env, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown env %q", id)
	}

	return f(), nil
}

// Exists checks if an environment with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
