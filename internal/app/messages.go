package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg is the one-second heartbeat. gen ties the message to the chain
// that armed it: pausing or restarting bumps the model's generation, so a
// tick left in flight by a superseded chain is dropped instead of running
// a second countdown alongside the live one.
type tickMsg struct {
	gen int
}

// indicatorExpiredMsg clears the action indicator set at setAt. A newer
// indicator ignores the expiry of an older one.
type indicatorExpiredMsg struct {
	setAt time.Time
}

// toastSweepMsg expires old toasts while the timer is not ticking.
type toastSweepMsg struct{}

func tickEvery(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}
