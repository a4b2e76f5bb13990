// Package tui hosts flapgap sessions in Bubble Tea. The simulation ticks on
// its own scheduler; the program only redraws the latest snapshot and
// forwards keys.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg asks the model to redraw.
type TickMsg time.Time

// tickCmd returns a command that sends a TickMsg after one frame at rate.
func tickCmd(rate int) tea.Cmd {
	if rate <= 0 {
		rate = 60
	}
	interval := time.Second / time.Duration(rate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
