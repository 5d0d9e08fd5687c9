package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/snake-gym/internal/storage"
)

func testStore(t *testing.T, episodes ...storage.EpisodeRecord) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "episodes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	for _, e := range episodes {
		_, err := store.SaveEpisode(e)
		require.NoError(t, err)
	}
	return store
}

func scoreboardEpisode(reward float64, seed int64) storage.EpisodeRecord {
	return storage.EpisodeRecord{
		RunID:       "run-1",
		EnvID:       "Snake-v0",
		Agent:       "greedy",
		Seed:        seed,
		Steps:       120,
		TotalReward: reward,
		FruitEaten:  int(reward) + 100,
		SnakeLen:    int(reward) + 102,
		EndReason:   "wall",
	}
}

func updateScoreboard(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	updated, ok := next.(ScoreboardModel)
	require.True(t, ok)
	return updated
}

func TestScoreboardShowsOneEnv(t *testing.T) {
	store := testStore(t,
		scoreboardEpisode(-95, 11),
		scoreboardEpisode(-90, 22),
		storage.EpisodeRecord{EnvID: "Other-v0", Agent: "random", TotalReward: 50, EndReason: "self"},
	)

	m := NewScoreboardModel(store, "Snake-v0", 120, 40)
	m = updateScoreboard(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	assert.Contains(t, view, "BEST EPISODES - Snake-v0")
	assert.Contains(t, view, "2 episodes")
	assert.Contains(t, view, "-90")
	assert.Contains(t, view, "-95")
	assert.NotContains(t, view, "Other-v0")

	// Best episode is selected first
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, int64(22), sel.Seed)
	assert.Contains(t, view, "seed 22")
	assert.Contains(t, view, "run run-1")

	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyDown})
	sel, ok = m.Selected()
	require.True(t, ok)
	assert.Equal(t, int64(11), sel.Seed)
	assert.Contains(t, m.View(), "seed 11")
}

func TestScoreboardReload(t *testing.T) {
	store := testStore(t, scoreboardEpisode(-99, 1))
	m := NewScoreboardModel(store, "Snake-v0", 80, 24)
	assert.Contains(t, m.View(), "1 episodes")

	_, err := store.SaveEpisode(scoreboardEpisode(-80, 2))
	require.NoError(t, err)

	m = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Contains(t, m.View(), "2 episodes")
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, int64(2), sel.Seed)
}

func TestScoreboardEmpty(t *testing.T) {
	for name, store := range map[string]*storage.Store{
		"empty store": testStore(t),
		"no store":    nil,
	} {
		t.Run(name, func(t *testing.T) {
			m := NewScoreboardModel(store, "Snake-v0", 80, 24)
			view := m.View()
			assert.Contains(t, view, "BEST EPISODES - Snake-v0")
			assert.Contains(t, view, "No episodes recorded yet.")
			assert.NotContains(t, view, "seed ")

			_, ok := m.Selected()
			assert.False(t, ok)
		})
	}
}

func TestScoreboardQuit(t *testing.T) {
	m := NewScoreboardModel(nil, "Snake-v0", 80, 24)

	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
	} {
		next, cmd := m.Update(msg)
		require.NotNil(t, cmd, msg.String())
		sb := next.(ScoreboardModel)
		assert.True(t, sb.IsQuitting(), msg.String())
		assert.Empty(t, sb.View())
	}
}
