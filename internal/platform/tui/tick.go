// Package tui provides the terminal front ends for snakegym: frame
// viewers, the Bubble Tea play/watch loop, the episode board and the
// SSH spectator server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-gym/internal/core"
)

// TickMsg is sent to trigger an environment step.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 1
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// TickRateFor converts a step delay to a tick rate, falling back to the
// default rate for non-positive delays.
func TickRateFor(delay time.Duration) int {
	if delay <= 0 {
		return core.DefaultConfig().TickRate
	}
	return max(int(time.Second/delay), 1)
}
