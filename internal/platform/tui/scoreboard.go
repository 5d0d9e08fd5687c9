package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-gym/internal/storage"
)

// maxEpisodes caps how many episodes the scoreboard loads.
const maxEpisodes = 100

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Reload, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Reload, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the best episodes of one env.
type ScoreboardModel struct {
	envID    string
	store    *storage.Store
	episodes []storage.EpisodeRecord
	stats    *storage.EnvStats
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a scoreboard for envID. store may be nil.
func NewScoreboardModel(store *storage.Store, envID string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		envID:  envID,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadEpisodes()
	return m
}

// createTable creates a table sized for the current window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Return", Width: 8},
		{Title: "Fruit", Width: 6},
		{Title: "Steps", Width: 6},
		{Title: "Agent", Width: 8},
		{Title: "End", Width: 9},
		{Title: "Date", Width: 12},
	}

	// Drop the date column when the terminal is narrow
	if m.width-4 < 70 {
		columns = columns[:len(columns)-1]
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-11, 3)), // title, stats, detail and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadEpisodes reads the best episodes and stats from the store.
func (m *ScoreboardModel) loadEpisodes() {
	m.episodes = nil
	m.stats = nil
	if m.store != nil {
		if episodes, err := m.store.TopEpisodes(m.envID, maxEpisodes); err == nil {
			m.episodes = episodes
		}
		if stats, err := m.store.Stats(m.envID); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows refills the table and moves the cursor to the top.
func (m *ScoreboardModel) updateTableRows() {
	cols := len(m.table.Columns())
	rows := make([]table.Row, len(m.episodes))
	for i, e := range m.episodes {
		row := table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%.0f", e.TotalReward),
			fmt.Sprintf("%d", e.FruitEaten),
			fmt.Sprintf("%d", e.Steps),
			e.Agent,
			e.EndReason,
			e.CreatedAt.Format("Jan 02 15:04"),
		}
		rows[i] = row[:cols]
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Reload):
			m.loadEpisodes()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Selected returns the episode under the cursor.
func (m ScoreboardModel) Selected() (storage.EpisodeRecord, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.episodes) {
		return storage.EpisodeRecord{}, false
	}
	return m.episodes[i], true
}

// IsQuitting reports whether the user left the scoreboard.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("BEST EPISODES - "+m.envID, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")

	if line := m.detailLine(); line != "" {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.episodes) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No episodes recorded yet.\nRun 'snakegym run' or 'snakegym play' first!")
	}
	return m.table.View()
}

// statsLine summarises the env.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.Episodes == 0 {
		return ""
	}
	return statusStyle.Render(fmt.Sprintf("%d episodes  best %.0f  avg %.1f  avg steps %.0f  most fruit %d",
		m.stats.Episodes, m.stats.BestReturn, m.stats.AvgReturn, m.stats.AvgSteps, m.stats.MostFruit))
}

// detailLine shows how to replay the selected episode.
func (m ScoreboardModel) detailLine() string {
	e, ok := m.Selected()
	if !ok {
		return ""
	}
	line := fmt.Sprintf("seed %d  length %d", e.Seed, e.SnakeLen)
	if e.RunID != "" {
		line += "  run " + e.RunID
	}
	return statusStyle.Render(line)
}

// RunScoreboard runs the scoreboard for envID until the user quits.
func RunScoreboard(store *storage.Store, envID string, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(store, envID, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
