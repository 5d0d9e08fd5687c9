package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/vovakirdan/snake-gym/internal/core"
	"github.com/vovakirdan/snake-gym/internal/envs/snake"
	"github.com/vovakirdan/snake-gym/internal/rollout"
	"github.com/vovakirdan/snake-gym/internal/storage"
)

// humanAgent names episodes played from the keyboard.
const humanAgent = "human"

var (
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model is the Bubble Tea model for playing or watching the Snake env.
// With no agent the keyboard steers; otherwise the agent acts every tick.
type Model struct {
	env      *snake.Env
	agent    rollout.Agent
	recorder rollout.Recorder
	runID    string
	seed     int64
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model

	frame    *core.Frame
	next     core.Action
	steps    int
	episode  int
	maxSteps int // 0 = unlimited

	autoRestart bool
	paused      bool
	saved       bool
	quitting    bool
	err         error
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithRecorder saves every finished episode.
func WithRecorder(r rollout.Recorder) ModelOption {
	return func(m *Model) {
		m.recorder = r
	}
}

// WithMaxSteps truncates episodes after n steps.
func WithMaxSteps(n int) ModelOption {
	return func(m *Model) {
		m.maxSteps = n
	}
}

// WithAutoRestart starts a new episode as soon as one ends.
func WithAutoRestart() ModelOption {
	return func(m *Model) {
		m.autoRestart = true
	}
}

// NewModel seeds env and agent, resets env and returns a model ready to
// run. A nil agent means a human plays from the keyboard.
func NewModel(env *snake.Env, agent rollout.Agent, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	m := Model{
		env:    env,
		agent:  agent,
		runID:  uuid.NewString(),
		config: cfg,
		keys:   DefaultKeyMap(agent == nil),
		help:   help.New(),
		next:   core.ActionStraight,
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.seed = env.Seed(core.ResolveSeed(cfg.Seed))
	rollout.SeedAgent(agent, m.seed)
	m.reset()
	return m
}

// Seed returns the seed the env and agent were given.
func (m Model) Seed() int64 {
	return m.seed
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		m.reset()
		return m, nil
	}

	if a, ok := m.keys.SteeringAction(msg); ok {
		m.next = a
	}
	return m, nil
}

// handleTick advances the env by one step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.paused || m.err != nil {
		return m, tickCmd(m.config.TickRate)
	}

	if m.Done() {
		if m.autoRestart {
			m.reset()
		}
		return m, tickCmd(m.config.TickRate)
	}

	action := m.next
	if m.agent != nil {
		action = m.agent.Act(m.env)
	}
	m.next = core.ActionStraight

	res, err := m.env.Step(action)
	if err != nil {
		m.err = err
		return m, tickCmd(m.config.TickRate)
	}
	m.steps++
	m.frame = res.Frame

	switch {
	case res.Done:
		m.save("")
	case m.maxSteps > 0 && m.steps >= m.maxSteps:
		m.save(rollout.EndTruncated)
	}

	return m, tickCmd(m.config.TickRate)
}

// reset starts a new episode on the same random stream.
func (m *Model) reset() {
	frame, err := m.env.Reset()
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.frame = frame
	m.steps = 0
	m.episode++
	m.saved = false
	m.next = core.ActionStraight
}

// save records the current episode once. An empty reason takes the env's.
func (m *Model) save(reason string) {
	if m.saved {
		return
	}
	m.saved = true

	snap := m.env.Snapshot()
	if reason == "" {
		reason = string(snap.EndReason)
	}
	if m.recorder == nil {
		return
	}

	//nolint:errcheck // Best-effort save, play continues regardless
	m.recorder.SaveEpisode(storage.EpisodeRecord{
		RunID:       m.runID,
		EnvID:       m.env.ID(),
		Agent:       m.AgentName(),
		Seed:        snap.Seed,
		Steps:       m.steps,
		TotalReward: snap.TotalReward,
		FruitEaten:  snap.FruitEaten,
		SnakeLen:    len(snap.Snake),
		EndReason:   reason,
	})
}

// Done reports whether the current episode has ended, either by the env
// or by truncation.
func (m Model) Done() bool {
	return m.saved
}

// Steps returns the number of steps in the current episode.
func (m Model) Steps() int {
	return m.steps
}

// Episode returns the 1-based episode counter.
func (m Model) Episode() int {
	return m.episode
}

// Paused reports whether stepping is suspended.
func (m Model) Paused() bool {
	return m.paused
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Err returns the last env error, if any.
func (m Model) Err() error {
	return m.err
}

// AgentName returns the agent's name, or "human".
func (m Model) AgentName() string {
	if m.agent == nil {
		return humanAgent
	}
	return m.agent.Name()
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	snap := m.env.Snapshot()
	title := fmt.Sprintf("%s  episode %d  [%s]", m.env.ID(), m.episode, m.AgentName())
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	stats := fmt.Sprintf("steps %d  return %.0f  fruit %d  length %d",
		m.steps, snap.TotalReward, snap.FruitEaten, len(snap.Snake))
	b.WriteString(statusStyle.Render(stats))
	b.WriteString("\n")

	if m.frame != nil {
		b.WriteString(boardStyle.Render(RenderHalfBlocks(m.frame)))
	}
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(alertStyle.Render("error: " + m.err.Error()))
	case m.Done() && !m.autoRestart:
		reason := string(snap.EndReason)
		if reason == "" {
			reason = rollout.EndTruncated
		}
		b.WriteString(alertStyle.Render(fmt.Sprintf("GAME OVER (%s)  press r to restart", reason)))
	case m.paused:
		b.WriteString(alertStyle.Render("PAUSED"))
	}
	b.WriteString("\n")

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Run starts the Bubble Tea program with the given model.
func Run(m Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
