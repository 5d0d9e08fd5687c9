// Package rollout drives agents through environment episodes: reset,
// act, step, optionally render, and record each episode's outcome.
package rollout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/snake-gym/internal/core"
	"github.com/vovakirdan/snake-gym/internal/envs/snake"
	"github.com/vovakirdan/snake-gym/internal/registry"
	"github.com/vovakirdan/snake-gym/internal/storage"
)

// End reasons recorded beside the env's own wall/self causes.
const (
	EndTruncated = "truncated" // hit MaxSteps
	EndClosed    = "closed"    // display sink was closed
	EndDone      = "done"      // terminal step on an env without snapshots
)

// Recorder persists finished episodes.
type Recorder interface {
	SaveEpisode(rec storage.EpisodeRecord) (int64, error)
}

// Ensure Store implements Recorder
var _ Recorder = (*storage.Store)(nil)

// Config holds the runner settings.
type Config struct {
	Episodes  int
	MaxSteps  int
	StepDelay time.Duration
	Seed      *int64 // nil picks a clock seed
	Render    bool
}

// EpisodeResult summarises one episode.
type EpisodeResult struct {
	Episode     int
	Seed        int64
	Steps       int
	TotalReward float64
	FruitEaten  int
	SnakeLen    int
	EndReason   string
}

// Runner runs episodes of one env with one agent.
type Runner struct {
	env      registry.Env
	agent    Agent
	cfg      Config
	recorder Recorder
	logger   *log.Logger
	runID    string
}

// NewRunner creates a runner. recorder and logger may be nil.
func NewRunner(env registry.Env, agent Agent, cfg Config, recorder Recorder, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		env:      env,
		agent:    agent,
		cfg:      cfg,
		recorder: recorder,
		logger:   logger,
		runID:    uuid.NewString(),
	}
}

// RunID identifies this runner's episodes in the recorder.
func (r *Runner) RunID() string {
	return r.runID
}

// Run seeds the env and the agent, then plays cfg.Episodes episodes. It
// stops early when the display sink closes or ctx is cancelled,
// returning what finished.
func (r *Runner) Run(ctx context.Context) ([]EpisodeResult, error) {
	seed := r.env.Seed(core.ResolveSeed(r.cfg.Seed))
	SeedAgent(r.agent, seed)
	r.logger.Info("starting run",
		"run", r.runID,
		"env", r.env.ID(),
		"agent", r.agent.Name(),
		"episodes", r.cfg.Episodes,
		"seed", seed,
	)

	var results []EpisodeResult
	for ep := 1; ep <= r.cfg.Episodes; ep++ {
		res, err := r.runEpisode(ctx, ep, seed)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		r.record(res)

		if res.EndReason == EndClosed {
			r.logger.Info("viewer closed, stopping run")
			break
		}
	}
	return results, nil
}

// runEpisode plays a single episode.
func (r *Runner) runEpisode(ctx context.Context, ep int, seed int64) (EpisodeResult, error) {
	res := EpisodeResult{Episode: ep, Seed: seed}

	frame, err := r.env.Reset()
	if err != nil {
		return res, fmt.Errorf("rollout: reset episode %d: %w", ep, err)
	}
	if shape := frame.Shape(); shape != r.env.ObservationShape() {
		return res, fmt.Errorf("rollout: %s observation is %v, declared %v", r.env.ID(), shape, r.env.ObservationShape())
	}
	if open, err := r.render(); err != nil {
		return res, err
	} else if !open {
		res.EndReason = EndClosed
		return res, nil
	}

	for res.Steps < r.cfg.MaxSteps {
		if err := r.wait(ctx); err != nil {
			return res, err
		}

		step, err := r.env.Step(r.agent.Act(r.env))
		if err != nil {
			return res, fmt.Errorf("rollout: step %d of episode %d: %w", res.Steps+1, ep, err)
		}
		res.Steps++
		res.TotalReward += step.Reward

		open, err := r.render()
		if err != nil {
			return res, err
		}

		if step.Done {
			res.EndReason = EndDone
			break
		}
		if !open {
			res.EndReason = EndClosed
			break
		}
	}
	if res.EndReason == "" {
		res.EndReason = EndTruncated
	}

	if s, ok := r.env.(Snapshotter); ok {
		snap := s.Snapshot()
		res.FruitEaten = snap.FruitEaten
		res.SnakeLen = len(snap.Snake)
		if snap.EndReason != snake.EndNone {
			res.EndReason = string(snap.EndReason)
		}
	}

	r.logger.Info(fmt.Sprintf("episode finished after %d timesteps", res.Steps),
		"episode", ep,
		"return", res.TotalReward,
		"fruit", res.FruitEaten,
		"end", res.EndReason,
	)
	return res, nil
}

// render shows the current frame when rendering is enabled.
func (r *Runner) render() (bool, error) {
	if !r.cfg.Render {
		return true, nil
	}
	open, err := r.env.RenderFrame()
	if err != nil {
		return false, fmt.Errorf("rollout: render: %w", err)
	}
	return open, nil
}

// wait sleeps for the step delay, returning early on cancellation.
func (r *Runner) wait(ctx context.Context) error {
	if r.cfg.StepDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(r.cfg.StepDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// record saves the episode, logging rather than failing on errors.
func (r *Runner) record(res EpisodeResult) {
	if r.recorder == nil {
		return
	}
	_, err := r.recorder.SaveEpisode(storage.EpisodeRecord{
		RunID:       r.runID,
		EnvID:       r.env.ID(),
		Agent:       r.agent.Name(),
		Seed:        res.Seed,
		Steps:       res.Steps,
		TotalReward: res.TotalReward,
		FruitEaten:  res.FruitEaten,
		SnakeLen:    res.SnakeLen,
		EndReason:   res.EndReason,
	})
	if err != nil {
		r.logger.Warn("could not save episode", "episode", res.Episode, "error", err)
	}
}

// IsCancelled reports whether err came from context cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
