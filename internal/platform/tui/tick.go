// Package tui provides the Bubble Tea integration for the snake game.
// It handles the terminal UI loop, input mapping and tick scheduling.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one game step. Gen identifies the arm that
// produced it; ticks from an older generation are dropped.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// tickCmd returns a Bubble Tea command that delivers one tick after interval.
// The model re-arms it after every accepted tick.
func tickCmd(interval time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
