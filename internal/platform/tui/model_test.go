package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/snake-gym/internal/config"
	"github.com/vovakirdan/snake-gym/internal/core"
	"github.com/vovakirdan/snake-gym/internal/envs/snake"
	"github.com/vovakirdan/snake-gym/internal/rollout"
	"github.com/vovakirdan/snake-gym/internal/storage"
)

type memRecorder struct {
	records []storage.EpisodeRecord
}

func (m *memRecorder) SaveEpisode(rec storage.EpisodeRecord) (int64, error) {
	m.records = append(m.records, rec)
	return int64(len(m.records)), nil
}

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = core.SeedOf(42)
	return cfg
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated
}

func tick(t *testing.T, m Model) Model {
	return update(t, m, TickMsg{})
}

func TestModelHumanSteering(t *testing.T) {
	env := snake.New()
	m := NewModel(env, nil, testConfig())
	require.Equal(t, 1, m.Episode())
	require.Equal(t, "human", m.AgentName())

	dir := env.Snapshot().Direction

	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = tick(t, m)
	require.NoError(t, m.Err())
	assert.Equal(t, 1, m.Steps())
	assert.Equal(t, dir.Turn(core.ActionTurnLeft), env.Snapshot().Direction)

	// Without a key the snake keeps its heading
	dir = env.Snapshot().Direction
	if !m.Done() {
		m = tick(t, m)
		assert.Equal(t, dir, env.Snapshot().Direction)
	}
}

func TestModelPause(t *testing.T) {
	m := NewModel(snake.New(), nil, testConfig())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	require.True(t, m.Paused())

	m = tick(t, m)
	assert.Equal(t, 0, m.Steps())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = tick(t, m)
	assert.Equal(t, 1, m.Steps())
}

func TestModelRecordsFinishedEpisode(t *testing.T) {
	rec := &memRecorder{}
	env := snake.New()
	m := NewModel(env, nil, testConfig(), WithRecorder(rec))

	// Going straight always ends at a wall within the grid width
	for i := 0; i < snake.GridW && !m.Done(); i++ {
		m = tick(t, m)
	}
	require.True(t, m.Done())
	require.Len(t, rec.records, 1)

	got := rec.records[0]
	assert.Equal(t, snake.EnvID, got.EnvID)
	assert.Equal(t, "human", got.Agent)
	assert.Equal(t, "wall", got.EndReason)
	assert.Equal(t, m.Steps(), got.Steps)
	assert.Equal(t, int64(42), got.Seed)

	// Further ticks neither step nor record again
	steps := m.Steps()
	m = tick(t, m)
	assert.Equal(t, steps, m.Steps())
	assert.Len(t, rec.records, 1)
	assert.Contains(t, m.View(), "GAME OVER")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.False(t, m.Done())
	assert.Equal(t, 0, m.Steps())
	assert.Equal(t, 2, m.Episode())
}

func TestModelWatchTruncatesAndRestarts(t *testing.T) {
	rec := &memRecorder{}
	m := NewModel(snake.New(), rollout.NewGreedyAgent(), testConfig(),
		WithRecorder(rec), WithMaxSteps(5), WithAutoRestart())
	require.Equal(t, "greedy", m.AgentName())

	for range 5 {
		m = tick(t, m)
	}
	require.True(t, m.Done())
	require.Len(t, rec.records, 1)
	assert.Equal(t, rollout.EndTruncated, rec.records[0].EndReason)
	assert.Equal(t, "greedy", rec.records[0].Agent)

	m = tick(t, m)
	assert.Equal(t, 2, m.Episode())
	assert.Equal(t, 0, m.Steps())
}

func TestModelWatchIgnoresSteering(t *testing.T) {
	m := NewModel(snake.New(), rollout.NewGreedyAgent(), testConfig())
	_, ok := m.keys.SteeringAction(tea.KeyMsg{Type: tea.KeyLeft})
	assert.False(t, ok)
}

func TestModelQuit(t *testing.T) {
	m := NewModel(snake.New(), nil, testConfig())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).IsQuitting())
	assert.Empty(t, next.(Model).View())
}

func TestKeyMapSteering(t *testing.T) {
	keys := DefaultKeyMap(true)

	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
		ok   bool
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionTurnLeft, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, core.ActionTurnLeft, true},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionTurnRight, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}}, core.ActionTurnRight, true},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionStraight, true},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionStraight, false},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			got, ok := keys.SteeringAction(tt.msg)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTickRateFor(t *testing.T) {
	assert.Equal(t, 10, TickRateFor(100*time.Millisecond))
	assert.Equal(t, 1, TickRateFor(5*time.Second))
	assert.Equal(t, core.DefaultConfig().TickRate, TickRateFor(0))
}

func TestModelSeedsAgentFromEnv(t *testing.T) {
	watch := func(agentSeed int64) snake.Snapshot {
		env := snake.New()
		m := NewModel(env, rollout.NewRandomAgent(agentSeed), testConfig(), WithMaxSteps(40))
		require.Equal(t, int64(42), m.Seed())
		for range 40 {
			m = tick(t, m)
			require.NoError(t, m.Err())
		}
		return env.Snapshot()
	}

	assert.Equal(t, watch(1), watch(2))
}

func TestModelUnseededReportsSeed(t *testing.T) {
	env := snake.New()
	m := NewModel(env, rollout.NewRandomAgent(0), core.DefaultConfig())
	assert.Equal(t, env.Snapshot().Seed, m.Seed())
}

func TestSessionModelSeeds(t *testing.T) {
	s := &SSHServer{config: SSHServerConfig{
		Agent:    config.AgentRandom,
		TickRate: 10,
		Seed:     core.SeedOf(100),
	}}
	assert.Equal(t, int64(103), s.newSessionModel(3, 80, 24).Seed())
	assert.Equal(t, int64(100), s.newSessionModel(0, 80, 24).Seed())

	s.config.Seed = nil
	m := s.newSessionModel(3, 80, 24)
	assert.Equal(t, "random", m.AgentName())
}
