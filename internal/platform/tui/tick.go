// Package tui runs the platformer in a terminal with Bubble Tea: the fixed
// tick loop, key and mouse mapping, name entry, the scoreboard and the SSH
// front-end.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a session step.
type TickMsg time.Time

// defaultTickRate is used when no positive rate is configured.
const defaultTickRate = 60

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = defaultTickRate
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
