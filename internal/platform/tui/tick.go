// Package tui runs the game in the terminal with Bubble Tea. It drives the
// session loop from tick messages, maps keys to actions and rasterizes the
// scene with half blocks.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameStep caps how much game time a single tick may advance, so a
// stalled terminal doesn't fast-forward the bird into the floor.
const maxFrameStep = 250 * time.Millisecond

// TickMsg is sent to trigger a frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameStep returns the game time between two ticks, clamped to
// [0, maxFrameStep]. The first tick (zero last) advances nothing.
func frameStep(last, now time.Time) time.Duration {
	if last.IsZero() {
		return 0
	}
	dt := now.Sub(last)
	if dt < 0 {
		return 0
	}
	if dt > maxFrameStep {
		return maxFrameStep
	}
	return dt
}
