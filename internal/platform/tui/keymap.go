package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-gym/internal/core"
)

// KeyMap defines the key bindings for the play and watch screens.
type KeyMap struct {
	TurnLeft  key.Binding
	TurnRight key.Binding
	Straight  key.Binding
	Pause     key.Binding
	Restart   key.Binding
	Quit      key.Binding

	// human is false while an agent drives; steering keys are hidden.
	human bool
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	if !k.human {
		return []key.Binding{k.Pause, k.Restart, k.Quit}
	}
	return []key.Binding{k.TurnLeft, k.TurnRight, k.Straight, k.Pause, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	if !k.human {
		return [][]key.Binding{{k.Pause, k.Restart, k.Quit}}
	}
	return [][]key.Binding{
		{k.TurnLeft, k.TurnRight, k.Straight},
		{k.Pause, k.Restart, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings. human enables steering.
func DefaultKeyMap(human bool) KeyMap {
	return KeyMap{
		TurnLeft: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "turn left"),
		),
		TurnRight: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "turn right"),
		),
		Straight: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "straight"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		human: human,
	}
}

// SteeringAction translates a key message to a relative turn.
// ok is false for keys that do not steer.
func (k KeyMap) SteeringAction(msg tea.KeyMsg) (a core.Action, ok bool) {
	if !k.human {
		return core.ActionStraight, false
	}
	switch {
	case key.Matches(msg, k.TurnLeft):
		return core.ActionTurnLeft, true
	case key.Matches(msg, k.TurnRight):
		return core.ActionTurnRight, true
	case key.Matches(msg, k.Straight):
		return core.ActionStraight, true
	}
	return core.ActionStraight, false
}
